package config

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"junqi/meta"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrUsage = errors.New("invalid arguments")

// timeRegex matches a time per move such as "500ms", "1s" or ".5s".
var timeRegex = regexp.MustCompile(`^(\d*\.?\d+)m?s$`)

type Config struct {
	Turn        int           // 1 moves first
	Time        time.Duration // per move
	LogsDir     string
	LogLevel    string
	Template    string // setup file, empty for the built-in one
	MetricsDir  string // empty disables metrics
	Seed        uint64 // 0 seeds from the clock
	Goroutines  int
	Temperature float64
	SelfPlay    int // games to play locally instead of talking to a referee
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("junqi", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringP("go", "g", "", "which player this is: 1 moves first, 2 second")
	fs.StringP("time", "t", "", "time per move, e.g. 500ms or 1.5s")
	fs.String("config", "", "optional YAML or JSON config file")
	fs.String("logs-dir", "logs", "log directory; logs go to stderr if it does not exist")
	fs.String("log-level", "debug", "trace, debug, info, warn or error")
	fs.String("template", "", "initial placement file; the built-in one by default")
	fs.String("metrics-dir", "", "directory for per-move metrics; disabled when empty")
	fs.Uint64("seed", 0, "random seed; 0 uses the clock")
	fs.Int("goroutines", meta.GO_ROUTINES, "goroutines scoring candidate moves")
	fs.Float64("temperature", 0, "sample moves instead of playing the best one")
	fs.Int("selfplay", 0, "play this many local games against itself and exit")
	return fs
}

func usage(fs *pflag.FlagSet, format string, args ...any) error {
	return fmt.Errorf("%w: %s\nusage: junqi -g 1|2 -t <time>[ms|s] [options]\n%s",
		ErrUsage, fmt.Sprintf(format, args...), fs.FlagUsages())
}

// ParseTime converts a time per move to a duration. Values without the "m"
// are seconds; sub-millisecond parts are dropped.
func ParseTime(s string) (time.Duration, error) {
	match := timeRegex.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if !strings.HasSuffix(s, "ms") {
		value *= 1000
	}
	return time.Duration(int64(value)) * time.Millisecond, nil
}

// Load reads the configuration from command line arguments (without the
// program name), JUNQI_* environment variables and an optional config file,
// in that order of precedence.
func Load(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, usage(fs, "%v", err)
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	v.SetEnvPrefix("JUNQI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		LogsDir:     v.GetString("logs-dir"),
		LogLevel:    v.GetString("log-level"),
		Template:    v.GetString("template"),
		MetricsDir:  v.GetString("metrics-dir"),
		Seed:        v.GetUint64("seed"),
		Goroutines:  v.GetInt("goroutines"),
		Temperature: v.GetFloat64("temperature"),
		SelfPlay:    v.GetInt("selfplay"),
	}

	if cfg.Goroutines <= 0 {
		return nil, usage(fs, "goroutines must be positive")
	}
	if cfg.SelfPlay < 0 {
		return nil, usage(fs, "selfplay must not be negative")
	}

	timeArg := v.GetString("time")
	switch {
	case timeArg != "":
		d, err := ParseTime(timeArg)
		if err != nil {
			return nil, usage(fs, "%v", err)
		}
		cfg.Time = d
	case cfg.SelfPlay > 0:
		cfg.Time = meta.THINK_TIME
	default:
		return nil, usage(fs, "missing time per move")
	}

	switch turn := v.GetString("go"); {
	case turn == "1" || turn == "2":
		cfg.Turn = int(turn[0] - '0')
	case turn == "" && cfg.SelfPlay > 0:
		cfg.Turn = 1
	default:
		return nil, usage(fs, "player must be 1 or 2, got %q", turn)
	}

	return cfg, nil
}
