package exporter

import (
	"github.com/fieldworks/i3dgo/internal/config"
	"github.com/fieldworks/i3dgo/pkg/scene"
)

// graphNode is one entry of the flattened scene graph. The synthetic
// root carries no entity and has id 0.
type graphNode struct {
	id       int
	entity   scene.Entity
	parent   *graphNode
	children []*graphNode
}

// sceneGraph is the flat node table produced before document
// compilation. Node ids are assigned monotonically in traversal order,
// so re-running a build on the same scene yields identical ids.
type sceneGraph struct {
	root   *graphNode
	nextID int
}

func newSceneGraph() *sceneGraph {
	g := &sceneGraph{}
	g.root = g.addNode(nil, nil)
	return g
}

func (g *sceneGraph) addNode(e scene.Entity, parent *graphNode) *graphNode {
	n := &graphNode{id: g.nextID, entity: e, parent: parent}
	g.nextID++
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// buildGraph expands the host hierarchy into the flat node table,
// honoring the configured root selection.
func (ex *Exporter) buildGraph(scn *scene.Scene) *sceneGraph {
	g := newSceneGraph()
	visiting := make(map[*scene.Group]bool)

	switch ex.cfg.Selection {
	case config.SelectionActiveGroup:
		group := scn.Active
		if group == nil {
			ex.log.Warnw("no active group, exporting whole scene")
			group = scn.Root
		}
		ex.addEntity(g, group, g.root, false, visiting)
	case config.SelectionSelected:
		// Objects with any selected ancestor arrive through that
		// ancestor's unfiltered descent; adding them again would
		// duplicate them.
		selected := make(map[*scene.Object]bool, len(scn.Selected))
		for _, o := range scn.Selected {
			selected[o] = true
		}
		for _, o := range scn.Selected {
			if !hasSelectedAncestor(o, selected) {
				ex.addEntity(g, o, g.root, false, visiting)
			}
		}
	default:
		ex.addEntity(g, scn.Root, g.root, false, visiting)
	}

	return g
}

// hasSelectedAncestor reports whether any ancestor of o, direct or
// transitive, is in the selected set.
func hasSelectedAncestor(o *scene.Object, selected map[*scene.Object]bool) bool {
	for p := o.Parent; p != nil; p = p.Parent {
		if selected[p] {
			return true
		}
	}
	return false
}

// addEntity recursively allocates graph nodes for an entity and its
// subtree. unpack is set when splicing an instanced group's members
// into the instancing node instead of allocating a new level.
func (ex *Exporter) addEntity(g *sceneGraph, e scene.Entity, parent *graphNode, unpack bool, visiting map[*scene.Group]bool) {
	switch v := e.(type) {
	case *scene.Object:
		if !ex.exportKinds[v.Kind] {
			return
		}

		node := g.addNode(v, parent)
		ex.log.Debugw("added node", "id", node.id, "name", v.Name, "kind", v.Kind.String())

		// Group instancing is transparent: the instanced group's
		// members attach to this node without an extra level.
		if v.Kind == scene.KindEmpty && v.Instance != nil {
			ex.addEntity(g, v.Instance, node, true, visiting)
		}

		for _, child := range v.Children {
			ex.addEntity(g, child, node, false, visiting)
		}

	case *scene.Group:
		if visiting[v] {
			ex.log.Warnw("group instancing cycle detected, skipping", "group", v.Name)
			return
		}
		visiting[v] = true
		defer delete(visiting, v)

		node := parent
		if !unpack {
			node = g.addNode(v, parent)
			ex.log.Debugw("added node", "id", node.id, "name", v.Name, "kind", "group")
		}

		for _, child := range v.Children {
			ex.addEntity(g, child, node, false, visiting)
		}
		// Member objects with a direct parent link are reached through
		// that parent; including them here would duplicate them.
		for _, obj := range v.Objects {
			if obj.Parent == nil {
				ex.addEntity(g, obj, node, false, visiting)
			}
		}
	}
}
