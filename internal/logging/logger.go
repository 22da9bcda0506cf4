// Package logging builds the structured logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = "info"

// ParseLevel accepts the zerolog level names (trace, debug, info, warn,
// error, fatal, panic, disabled). Empty means DefaultLevel.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// New returns a logger writing to w, as JSON lines when jsonOutput is set
// and as console text otherwise.
func New(w io.Writer, level string, jsonOutput bool) (log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.LevelOption(lvl)}
	if jsonOutput {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...).With("module", "sofia-scene"), nil
}
