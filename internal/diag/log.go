package diag

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// NewLogger builds a named, leveled logger writing to stderr at the level
// named by SPIDER_LOG (default WARN), for injection through
// config.RunConfig.Logger rather than use as a package-global logger.
func NewLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.LevelFromString(envOr("SPIDER_LOG", "WARN")),
		Output: os.Stderr,
	})
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Discard is a logger that drops everything, used as the zero-value
// default for configurations that don't care about diagnostics output
// (primarily tests).
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
