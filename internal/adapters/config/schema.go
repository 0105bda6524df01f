package config

// File represents the structure of the esmbridge.yaml configuration file.
type File struct {
	Root        string       `yaml:"root"`
	Conditions  []string     `yaml:"conditions"`
	Extensions  []string     `yaml:"extensions"`
	JSONModules bool         `yaml:"jsonModules"`
	Format      FormatDTO    `yaml:"format"`
	Synthesis   SynthesisDTO `yaml:"synthesis"`
	Cache       CacheDTO     `yaml:"cache"`
	Log         LogDTO       `yaml:"log"`
}

// FormatDTO configures module classification.
type FormatDTO struct {
	AbsentType string `yaml:"absentType"`
	WrapLegacy bool   `yaml:"wrapLegacy"`
}

// SynthesisDTO configures the generated wrapper source.
type SynthesisDTO struct {
	RequireModule string `yaml:"requireModule"`
}

// CacheDTO configures cache bounds.
type CacheDTO struct {
	Resolvers *int `yaml:"resolvers"`
}

// LogDTO configures logging.
type LogDTO struct {
	JSON    bool `yaml:"json"`
	Verbose bool `yaml:"verbose"`
}
