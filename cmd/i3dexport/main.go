// i3dexport converts an authored scene description into an I3D file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fieldworks/i3dgo/internal/config"
	"github.com/fieldworks/i3dgo/internal/exporter"
	"github.com/fieldworks/i3dgo/internal/logger"
	"github.com/fieldworks/i3dgo/pkg/scene"
)

func main() {
	config.ParseFlags()

	args := flag.Args()
	if len(args) != 2 {
		printUsage()
		os.Exit(1)
	}
	scenePath, outputPath := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	scn, err := scene.LoadFile(scenePath)
	if err != nil {
		logger.Sugar.Errorw("loading scene failed", "path", scenePath, "error", err)
		os.Exit(1)
	}

	ex, err := exporter.New(cfg.Export, logger.Sugar)
	if err != nil {
		logger.Sugar.Errorw("invalid export options", "error", err)
		os.Exit(1)
	}

	if err := ex.Export(scn, outputPath); err != nil {
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`i3dexport - scene to I3D converter

Usage:
  i3dexport [options] <scene.yaml> <output.i3d>

Options:
  -config <path>        Path to config file
  -selection <mode>     all, active_group or selected
  -copy                 Copy referenced asset files next to the output
  -overwrite            Overwrite already copied asset files
  -layout <mode>        Copied file layout: flat, modhub or relative
  -axis-forward <axis>  Target forward axis (default -Z)
  -axis-up <axis>       Target up axis (default Y)
  -debug                Enable debug logging

Examples:
  i3dexport barn.yaml barn.i3d
  i3dexport -selection active_group -copy -layout modhub farm.yaml farm.i3d`)
}
