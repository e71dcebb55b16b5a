// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// Selection values.
const (
	SelectionAll         = "all"
	SelectionActiveGroup = "active_group"
	SelectionSelected    = "selected"
)

// File layout values for copied assets.
const (
	LayoutFlat     = "flat"
	LayoutModHub   = "modhub"
	LayoutRelative = "relative"
)

// ExportConfig holds the export options recognized by the compiler.
type ExportConfig struct {
	Selection      string   `yaml:"selection"`       // all, active_group or selected
	ObjectTypes    []string `yaml:"object_types"`    // exportable object kinds
	ApplyModifiers bool     `yaml:"apply_modifiers"` // evaluate procedural modifiers
	ApplyUnitScale bool     `yaml:"apply_unit_scale"`
	CopyFiles      bool     `yaml:"copy_files"`
	OverwriteFiles bool     `yaml:"overwrite_files"`
	FileStructure  string   `yaml:"file_structure"` // flat, modhub or relative
	TextureFolder  string   `yaml:"texture_folder"` // modhub layout subfolder
	SharedFolder   string   `yaml:"shared_folder"`  // marker for engine-shared assets
	AxisForward    string   `yaml:"axis_forward"`
	AxisUp         string   `yaml:"axis_up"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Selection:      SelectionAll,
			ObjectTypes:    []string{"mesh", "curve", "empty", "camera", "light"},
			ApplyModifiers: true,
			ApplyUnitScale: true,
			CopyFiles:      false,
			OverwriteFiles: false,
			FileStructure:  LayoutFlat,
			TextureFolder:  "textures",
			SharedFolder:   "data/shared",
			AxisForward:    "-Z",
			AxisUp:         "Y",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
