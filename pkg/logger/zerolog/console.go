package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the root logger.
type Options struct {
	Level      string    // zerolog level name, e.g. "debug"
	TimeLayout string    // layout used by the console writer
	Colored    bool      // ANSI colours on the console writer
	JSON       bool      // raw JSON lines instead of the console writer
	Out        io.Writer // defaults to os.Stdout
}

// New builds a zerolog logger from opts and wraps it in an Adapter.
func New(opts Options) (*Adapter, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var base zerolog.Logger
	if opts.JSON {
		base = zerolog.New(out)
	} else {
		base = zerolog.New(consoleWriter(out, opts.TimeLayout, opts.Colored))
	}

	logger := base.Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return NewAdapter(&logger), nil
}

// Nop returns an adapter that discards everything, handy in tests.
func Nop() *Adapter {
	logger := zerolog.Nop()
	return NewAdapter(&logger)
}

func consoleWriter(out io.Writer, layout string, colored bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       !colored,
		TimeFormat:    layout,
		FormatLevel:   formatLevel,
		FormatMessage: formatMessage,
		FormatCaller:  formatCaller,
		FormatTimestamp: func(i interface{}) string {
			return formatTimestamp(i, layout)
		},
	}
}

func formatLevel(i interface{}) string {
	level, ok := i.(string)
	if !ok {
		return "[UNK]"
	}

	switch level {
	case zerolog.LevelTraceValue, zerolog.LevelDebugValue:
		return term.Cyanf("[%s]", strings.ToUpper(level[:3]))
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return term.Redf("[%s]", strings.ToUpper(level[:3]))
	default:
		return term.Whitef("[UNK]")
	}
}

func formatMessage(i interface{}) string {
	const width = 60

	msg, ok := i.(string)
	if !ok || msg == "" {
		return ">"
	}

	if len(msg) < width {
		msg += strings.Repeat(" ", width-len(msg))
	}

	return term.Whitef("> %s", msg)
}

func formatCaller(i interface{}) string {
	const fileWidth = 16

	fname, ok := i.(string)
	if !ok || fname == "" {
		return ""
	}

	file, line, found := strings.Cut(filepath.Base(fname), ":")
	if !found {
		return term.Yellowf("[%s]", file)
	}

	if len(file) > fileWidth {
		file = file[:fileWidth]
	}

	return term.Yellowf("[%-*s:%4s]", fileWidth, file, line)
}

func formatTimestamp(i interface{}, layout string) string {
	raw, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	if ts, err := time.Parse(zerolog.TimeFieldFormat, raw); err == nil && layout != "" {
		raw = ts.In(time.Local).Format(layout)
	}

	return term.Cyanf("[%s]", raw)
}
