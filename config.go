package ecs

// Config holds process-wide configuration for the ecs package.
var Config config = config{
	DefaultMaxEntities: 4096,
	LogLevel:           LogLevelWarn,
}

type config struct {
	// DefaultMaxEntities is used by NewWorld when the caller passes 0.
	DefaultMaxEntities int
	// LogLevel filters lifecycle diagnostics emitted through log.go.
	LogLevel LogLevel
}

// SetDefaultMaxEntities configures the fallback entity cap for worlds
// created with NewWorld(0).
func (c *config) SetDefaultMaxEntities(n int) {
	c.DefaultMaxEntities = n
}

// SetLogLevel configures the minimum level logged by the package-level
// logger.
func (c *config) SetLogLevel(l LogLevel) {
	c.LogLevel = l
}
