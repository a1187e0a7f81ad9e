package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kaelstrom/wavegraph/pkg/renderer"
)

// Config holds the settings parsed from command line arguments and
// environment variables for the songrender CLI.
type Config struct {
	SongPath      string        // path to the song blob (positional arg)
	SoundFontPath string        // path to a SoundFont (.sf2) used by synth devices
	OutPath       string        // output WAV file path
	TracePath     string        // output chrome-trace JSON path; empty disables tracing
	WorkerThreads int           // number of scheduler worker goroutines
	BlockSize     int           // float samples per channel rendered per block
	Duration      time.Duration // total render duration; 0 renders the song's own length
	LogLevel      string        // debug, info, warn, error
	ShowHelp      bool
}

// ParseArgs parses command line arguments into a Config, applying
// environment variable fallbacks for any setting whose flag is left at
// its default value ("", 0, or "info" for the log level). A flag set to
// a non-default value takes precedence over the environment; a flag set
// explicitly to its default value does not.
func ParseArgs(args []string) (*Config, error) {
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("songrender", flag.ContinueOnError)

	config := &Config{}

	var durationSec int
	fs.StringVar(&config.SoundFontPath, "soundfont", "", "path to a SoundFont (.sf2) file")
	fs.StringVar(&config.SoundFontPath, "s", "", "path to a SoundFont (.sf2) file (shorthand)")
	fs.StringVar(&config.OutPath, "out", "out.wav", "output WAV file path")
	fs.StringVar(&config.OutPath, "o", "out.wav", "output WAV file path (shorthand)")
	fs.StringVar(&config.TracePath, "trace", "", "output chrome-trace JSON path (empty disables tracing)")
	fs.IntVar(&config.WorkerThreads, "workers", 0, "number of worker threads (0 uses the renderer default)")
	fs.IntVar(&config.WorkerThreads, "w", 0, "number of worker threads (shorthand)")
	fs.IntVar(&config.BlockSize, "block-size", 512, "float samples per channel rendered per block")
	fs.IntVar(&durationSec, "duration", 0, "render duration in seconds (0 renders the song's own length)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	if config.SoundFontPath == "" {
		config.SoundFontPath = os.Getenv("SOUNDFONT")
	}

	if config.WorkerThreads == 0 {
		if workersEnv := os.Getenv("WORKERS"); workersEnv != "" {
			if w, err := strconv.Atoi(workersEnv); err == nil && w > 0 {
				config.WorkerThreads = w
			}
		}
	}
	if config.WorkerThreads == 0 {
		config.WorkerThreads = renderer.DefaultWorkerThreads
	}

	if durationSec == 0 {
		if durationEnv := os.Getenv("DURATION"); durationEnv != "" {
			if d, err := strconv.Atoi(durationEnv); err == nil && d > 0 {
				durationSec = d
			}
		}
	}

	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if durationSec < 0 {
		return nil, fmt.Errorf("duration must be non-negative, got %d", durationSec)
	}
	config.Duration = time.Duration(durationSec) * time.Second

	if config.BlockSize <= 0 {
		return nil, fmt.Errorf("block-size must be positive, got %d", config.BlockSize)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if fs.NArg() > 0 {
		config.SongPath = fs.Arg(0)
	}
	if config.SongPath == "" {
		config.SongPath = os.Getenv("SONG")
	}

	return config, nil
}

// reorderArgs moves flags before positional arguments so flag.FlagSet,
// which stops parsing at the first positional argument, can still see
// flags that come after the song path on the command line.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if arg != "-h" && arg != "--help" {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// PrintHelp prints usage information to stdout.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `songrender - renders a song blob to a WAV file

Usage:
  songrender [options] <song-path>

Arguments:
  song-path                    path to the song blob to render

Options:
  -s, --soundfont <path>       path to a SoundFont (.sf2) file for synth devices
  -o, --out <path>             output WAV file path (default: out.wav)
  --trace <path>               output chrome-trace JSON path (default: disabled)
  -w, --workers <n>            number of worker threads (default: renderer default)
  --block-size <n>             float samples per channel per block (default: 512)
  --duration <seconds>         render duration in seconds (default: song's own length)
  -l, --log-level <level>      log level: debug, info, warn, error (default: info)
  -h, --help                   show this help

Environment Variables:
  SONG=<path>                  song blob path
  SOUNDFONT=<path>             SoundFont path
  WORKERS=<n>                  number of worker threads
  DURATION=<seconds>           render duration in seconds
  LOG_LEVEL=<level>            log level

Examples:
  songrender song.bin
  songrender --soundfont gm.sf2 --out render.wav song.bin
  songrender --trace trace.json --duration 30 song.bin
`)
}
