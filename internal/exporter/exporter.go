// Package exporter compiles a host scene into an I3D document: it
// flattens the object/group hierarchy into a node table, emits one
// scene element per node and deduplicates mesh, material and file
// resources behind stable integer ids.
package exporter

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fieldworks/i3dgo/internal/config"
	"github.com/fieldworks/i3dgo/pkg/i3d"
	"github.com/fieldworks/i3dgo/pkg/math"
	"github.com/fieldworks/i3dgo/pkg/scene"
)

// Producer stamp written into Asset/Export.
const (
	Program        = "i3dgo Exporter"
	ProgramVersion = "1.0.0"
)

// defaultMaterialName is assigned to meshes that carry no material.
const defaultMaterialName = "i3d_default_material"

// Exporter compiles one scene per Export call. All shared mutable
// state of a run (the document, the id counters, the resource caches)
// lives here; the traversal is single-threaded and depth-first.
type Exporter struct {
	cfg config.ExportConfig
	log *zap.SugaredLogger

	global    math.Mat4 // change-of-basis into the engine convention
	globalInv math.Mat4

	exportKinds map[scene.Kind]bool

	// Per-run state, reset by Export.
	doc    *i3d.Document
	scn    *scene.Scene
	outDir string
	graph  *sceneGraph

	nextShapeID    int
	nextMaterialID int
	nextFileID     int

	shapeIDs       map[string]int // mesh name -> shapeId
	shapeMaterials map[int]string // shapeId -> comma-joined material ids
	materialIDs    map[string]int // material name -> materialId
	fileIDs        map[string]int // resolved path -> fileId

	defaultMaterial *scene.Material
}

// New creates an exporter for the given options.
func New(cfg config.ExportConfig, log *zap.SugaredLogger) (*Exporter, error) {
	forward, err := math.ParseAxis(cfg.AxisForward)
	if err != nil {
		return nil, errors.Wrap(err, "axis_forward")
	}
	up, err := math.ParseAxis(cfg.AxisUp)
	if err != nil {
		return nil, errors.Wrap(err, "axis_up")
	}
	global, err := math.AxisConversion(forward, up)
	if err != nil {
		return nil, err
	}

	kinds := make(map[scene.Kind]bool, len(cfg.ObjectTypes))
	for _, name := range cfg.ObjectTypes {
		for _, k := range scene.AllKinds() {
			if k.String() == name {
				kinds[k] = true
			}
		}
	}

	return &Exporter{
		cfg:         cfg,
		log:         log,
		global:      global,
		globalInv:   global.Inverse(),
		exportKinds: kinds,
	}, nil
}

// Compile builds the I3D document for scn. The output path only
// determines the document name and where copied assets land; nothing
// is written to disk except asset copies.
func (ex *Exporter) Compile(scn *scene.Scene, path string) *i3d.Document {
	ex.doc = i3d.NewDocument(displayName(path))
	ex.doc.SetProducer(Program, ProgramVersion)
	ex.scn = scn
	ex.outDir = filepath.Dir(path)

	ex.nextShapeID = 1
	ex.nextMaterialID = 1
	ex.nextFileID = 1
	ex.shapeIDs = make(map[string]int)
	ex.shapeMaterials = make(map[int]string)
	ex.materialIDs = make(map[string]int)
	ex.fileIDs = make(map[string]int)
	ex.defaultMaterial = nil

	ex.graph = ex.buildGraph(scn)
	ex.compileScene()
	return ex.doc
}

// Export compiles scn and writes the I3D document to path. Everything
// except the final serialization degrades with a diagnostic; only a
// failed write aborts the export.
func (ex *Exporter) Export(scn *scene.Scene, path string) error {
	doc := ex.Compile(scn, path)
	doc.Indent()
	if err := doc.WriteFile(path); err != nil {
		ex.log.Errorw("export failed", "path", path, "error", err)
		return err
	}
	ex.log.Infow("exported scene", "path", path, "nodes", ex.graph.nextID-1)
	return nil
}

// Document returns the document compiled by the last Export call.
func (ex *Exporter) Document() *i3d.Document {
	return ex.doc
}

// displayName derives the document name from the output file path.
func displayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
