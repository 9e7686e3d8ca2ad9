package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Export     ExportConfig     `mapstructure:"export"     validate:"required"`
	Generation GenerationConfig `mapstructure:"generation"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL may be empty when the server runs with the in-memory task store.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,uri"`
}

// ExportConfig contains settings for the export pipeline.
type ExportConfig struct {
	// Root is the base directory under which all export files are written.
	Root string `mapstructure:"root" validate:"required"`
}

// GenerationConfig contains settings for the content generation boundary.
type GenerationConfig struct {
	// PromptTemplate is an opaque template string handed to clients verbatim.
	// When empty, the built-in default template is served.
	PromptTemplate string `mapstructure:"prompt_template"`
}
