package config

// forgeFile represents the structure of the forge.yaml configuration file.
type forgeFile struct {
	Version  string      `yaml:"version"`
	Compiler compilerDTO `yaml:"compiler"`
	Flags    []string    `yaml:"flags"`
	Ignore   []string    `yaml:"ignore"`
}

// compilerDTO selects the C and C++ compiler binaries.
type compilerDTO struct {
	C   string `yaml:"c"`
	Cxx string `yaml:"cxx"`
}
