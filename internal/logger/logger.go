package logger

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type palette struct {
	reset, red, green, yellow, blue, purple, cyan, gray, bold string
}

var (
	ansi = palette{
		reset:  "\033[0m",
		red:    "\033[31m",
		green:  "\033[32m",
		yellow: "\033[33m",
		blue:   "\033[34m",
		purple: "\033[35m",
		cyan:   "\033[36m",
		gray:   "\033[37m",
		bold:   "\033[1m",
	}

	plain = palette{}

	// exactly three digits between 200 and 599
	statusCodeRegex = regexp.MustCompile(`^[2-5]\d{2}$`)
)

// Init configures the global zerolog logger.
// Production writes JSON lines, every other environment a coloured console format.
// level, when non-empty, overrides the environment's default level.
func Init(env, level string) {
	var out io.Writer = os.Stdout
	if env != "production" {
		out = consoleWriter(os.Stdout)
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("env", env).
		Logger()

	zerolog.SetGlobalLevel(defaultLevel(env))
	if level == "" {
		return
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warn().Str("log_level", level).Msg("unknown log level, keeping default")
		return
	}
	zerolog.SetGlobalLevel(parsed)
}

func defaultLevel(env string) zerolog.Level {
	if env == "production" {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

func consoleWriter(f *os.File) zerolog.ConsoleWriter {
	scheme := plain
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		scheme = ansi
	}

	return zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: "02.01.2006 15:04:05",
		NoColor:    scheme == plain,
		FormatLevel: func(i interface{}) string {
			level := strings.ToUpper(fmt.Sprintf("%s", i))
			switch level {
			case "DEBUG":
				return fmt.Sprintf("%s●%s", scheme.gray, scheme.reset)
			case "INFO":
				return fmt.Sprintf("%s●%s", scheme.blue, scheme.reset)
			case "WARN":
				return fmt.Sprintf("%s●%s", scheme.yellow, scheme.reset)
			case "ERROR", "FATAL":
				return fmt.Sprintf("%s●%s", scheme.red, scheme.reset)
			default:
				return level
			}
		},
		FormatMessage: func(i interface{}) string {
			msg := fmt.Sprintf("%-35s", i)
			switch {
			case strings.Contains(msg, "Request completed"):
				return scheme.gray + msg + scheme.reset
			case strings.Contains(msg, "Request started"):
				return scheme.bold + msg + scheme.reset
			}
			return msg
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s%s%s=", scheme.cyan, i, scheme.reset)
		},
		FormatFieldValue: func(i interface{}) string {
			val := fmt.Sprintf("%s", i)

			switch val {
			case "GET", "POST", "PUT", "DELETE", "PATCH":
				return scheme.purple + val + scheme.reset
			}

			if statusCodeRegex.MatchString(val) {
				switch val[0] {
				case '2':
					return scheme.green + val + scheme.reset
				case '3':
					return scheme.yellow + val + scheme.reset
				default:
					return scheme.red + val + scheme.reset
				}
			}

			return val
		},
	}
}
