package config

// Cascadefile represents the structure of the cascade.yaml configuration file.
type Cascadefile struct {
	Version string    `yaml:"version"`
	Types   []TypeDTO `yaml:"types"`
}

// TypeDTO represents one declared type in the configuration.
type TypeDTO struct {
	Name       string        `yaml:"name"`
	Properties []PropertyDTO `yaml:"properties"`
}

// PropertyDTO represents one property of a declared type and its markers.
type PropertyDTO struct {
	Name       string   `yaml:"name"`
	Notifies   []string `yaml:"notifies"`
	NotifiedBy []string `yaml:"notifiedBy"`
}
