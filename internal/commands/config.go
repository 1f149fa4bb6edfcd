package commands

import (
	"os"

	"github.com/charmbracelet/log"
)

// CommonConfig contains configuration common to all commands
type CommonConfig struct {
	// LogLevel is the logging level to use
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
}

// Logger builds the command's logger at the configured level, writing to
// stderr so statement output can go to stdout.
func (c CommonConfig) Logger() (*log.Logger, error) {
	logger := log.New(os.Stderr)
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	return logger, nil
}
