package scan

// Config holds configuration for directory scanning.
type Config struct {
	// Workers is the number of concurrent hashing workers.
	Workers int `mapstructure:"workers" default:"4"`
	// DatDir is the directory reference lists are loaded from.
	DatDir string `mapstructure:"dat_dir" default:"./dats"`
}
