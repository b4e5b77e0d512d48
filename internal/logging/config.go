package logging

// Config defines the logging section of the worktracker config file.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the WORKTRACKER_LOG_LEVEL environment variable.
	Level string `yaml:"level" toml:"level"`

	// File is an optional path logs are appended to.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`

	// Format can be "text" (default), "simple", or "json".
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`

	// Stderr controls when logs are also written to stderr.
	// Can be "auto" (default), "always", or "never".
	Stderr string `yaml:"stderr,omitempty" toml:"stderr,omitempty"`
}

// Formats lists the accepted values of Config.Format.
var Formats = []string{"", "text", "simple", "json"}
