package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSelection = flag.String("selection", "", "Export selection: all, active_group or selected")
	flagLayout    = flag.String("layout", "", "Copied file layout: flat, modhub or relative")
	flagCopy      = flag.Bool("copy", false, "Copy referenced asset files next to the output")
	flagOverwrite = flag.Bool("overwrite", false, "Overwrite already copied asset files")
	flagForward   = flag.String("axis-forward", "", "Target forward axis (X, Y, Z, -X, -Y, -Z)")
	flagUp        = flag.String("axis-up", "", "Target up axis (X, Y, Z, -X, -Y, -Z)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSelection != "" {
		cfg.Export.Selection = *flagSelection
	}
	if *flagLayout != "" {
		cfg.Export.FileStructure = *flagLayout
	}
	if *flagCopy {
		cfg.Export.CopyFiles = true
	}
	if *flagOverwrite {
		cfg.Export.OverwriteFiles = true
	}
	if *flagForward != "" {
		cfg.Export.AxisForward = *flagForward
	}
	if *flagUp != "" {
		cfg.Export.AxisUp = *flagUp
	}
}
