package cli

// Config stores CLI options for a single catalog run.
type Config struct {
	Packages    []string
	Types       []string
	Output      string
	Dump        bool
	ShowVersion bool
}

// OutputFilename returns the destination file path for the writer layer.
func (c *Config) OutputFilename() string {
	return c.Output
}
