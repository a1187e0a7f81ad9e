package cli

import (
	"os"
	"testing"
	"time"
)

func TestParseArgs_ValidArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "defaults",
			args: []string{},
			expected: Config{
				SongPath:      "",
				OutPath:       "out.wav",
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "info",
			},
		},
		{
			name: "song path only",
			args: []string{"/path/to/song.bin"},
			expected: Config{
				SongPath:      "/path/to/song.bin",
				OutPath:       "out.wav",
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "info",
			},
		},
		{
			name: "duration",
			args: []string{"--duration", "10"},
			expected: Config{
				Duration:      10 * time.Second,
				OutPath:       "out.wav",
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "info",
			},
		},
		{
			name: "worker threads shorthand",
			args: []string{"-w", "5"},
			expected: Config{
				OutPath:       "out.wav",
				BlockSize:     512,
				WorkerThreads: 5,
				LogLevel:      "info",
			},
		},
		{
			name: "log level",
			args: []string{"--log-level", "debug"},
			expected: Config{
				OutPath:       "out.wav",
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "debug",
			},
		},
		{
			name: "log level shorthand",
			args: []string{"-l", "error"},
			expected: Config{
				OutPath:       "out.wav",
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "error",
			},
		},
		{
			name: "help",
			args: []string{"--help"},
			expected: Config{
				OutPath:       "out.wav",
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "info",
				ShowHelp:      true,
			},
		},
		{
			name: "help shorthand",
			args: []string{"-h"},
			expected: Config{
				OutPath:       "out.wav",
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "info",
				ShowHelp:      true,
			},
		},
		{
			name: "multiple options",
			args: []string{"--duration", "30", "--log-level", "warn", "--out", "render.wav", "/path/to/song.bin"},
			expected: Config{
				SongPath:      "/path/to/song.bin",
				OutPath:       "render.wav",
				Duration:      30 * time.Second,
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "warn",
			},
		},
		{
			name: "flags after positional arg",
			args: []string{"-log-level", "debug", "./samples/song.bin", "--duration", "5"},
			expected: Config{
				SongPath:      "./samples/song.bin",
				OutPath:       "out.wav",
				Duration:      5 * time.Second,
				BlockSize:     512,
				WorkerThreads: 3,
				LogLevel:      "debug",
			},
		},
		{
			name: "positional arg first",
			args: []string{"/path/to/song.bin", "--duration", "10", "--workers", "2"},
			expected: Config{
				SongPath:      "/path/to/song.bin",
				OutPath:       "out.wav",
				Duration:      10 * time.Second,
				BlockSize:     512,
				WorkerThreads: 2,
				LogLevel:      "info",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if config.SongPath != tt.expected.SongPath {
				t.Errorf("SongPath = %q, want %q", config.SongPath, tt.expected.SongPath)
			}
			if config.OutPath != tt.expected.OutPath {
				t.Errorf("OutPath = %q, want %q", config.OutPath, tt.expected.OutPath)
			}
			if config.Duration != tt.expected.Duration {
				t.Errorf("Duration = %v, want %v", config.Duration, tt.expected.Duration)
			}
			if config.BlockSize != tt.expected.BlockSize {
				t.Errorf("BlockSize = %v, want %v", config.BlockSize, tt.expected.BlockSize)
			}
			if config.WorkerThreads != tt.expected.WorkerThreads {
				t.Errorf("WorkerThreads = %v, want %v", config.WorkerThreads, tt.expected.WorkerThreads)
			}
			if config.LogLevel != tt.expected.LogLevel {
				t.Errorf("LogLevel = %q, want %q", config.LogLevel, tt.expected.LogLevel)
			}
			if config.ShowHelp != tt.expected.ShowHelp {
				t.Errorf("ShowHelp = %v, want %v", config.ShowHelp, tt.expected.ShowHelp)
			}
		})
	}
}

func TestParseArgs_InvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "negative duration",
			args: []string{"--duration", "-10"},
		},
		{
			name: "invalid log level",
			args: []string{"--log-level", "invalid"},
		},
		{
			name: "invalid log level shorthand",
			args: []string{"-l", "trace"},
		},
		{
			name: "zero block size",
			args: []string{"--block-size", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseArgs_EnvironmentVariables(t *testing.T) {
	origSong := os.Getenv("SONG")
	origSoundfont := os.Getenv("SOUNDFONT")
	origWorkers := os.Getenv("WORKERS")
	origDuration := os.Getenv("DURATION")
	origLogLevel := os.Getenv("LOG_LEVEL")

	defer func() {
		os.Setenv("SONG", origSong)
		os.Setenv("SOUNDFONT", origSoundfont)
		os.Setenv("WORKERS", origWorkers)
		os.Setenv("DURATION", origDuration)
		os.Setenv("LOG_LEVEL", origLogLevel)
	}()

	tests := []struct {
		name     string
		args     []string
		envVars  map[string]string
		expected Config
	}{
		{
			name: "SONG sets song path",
			args: []string{},
			envVars: map[string]string{
				"SONG": "/env/song.bin",
			},
			expected: Config{SongPath: "/env/song.bin", WorkerThreads: 3, LogLevel: "info"},
		},
		{
			name: "SOUNDFONT sets soundfont path",
			args: []string{},
			envVars: map[string]string{
				"SOUNDFONT": "/env/gm.sf2",
			},
			expected: Config{SoundFontPath: "/env/gm.sf2", WorkerThreads: 3, LogLevel: "info"},
		},
		{
			name: "WORKERS sets worker threads",
			args: []string{},
			envVars: map[string]string{
				"WORKERS": "7",
			},
			expected: Config{WorkerThreads: 7, LogLevel: "info"},
		},
		{
			name: "DURATION sets duration",
			args: []string{},
			envVars: map[string]string{
				"DURATION": "30",
			},
			expected: Config{Duration: 30 * time.Second, WorkerThreads: 3, LogLevel: "info"},
		},
		{
			name: "LOG_LEVEL sets log level",
			args: []string{},
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			expected: Config{WorkerThreads: 3, LogLevel: "debug"},
		},
		{
			name: "command line flag overrides WORKERS env var",
			args: []string{"--workers", "2"},
			envVars: map[string]string{
				"WORKERS": "9",
			},
			expected: Config{WorkerThreads: 2, LogLevel: "info"},
		},
		{
			name: "command line flag overrides LOG_LEVEL env var",
			args: []string{"--log-level", "error"},
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			expected: Config{WorkerThreads: 3, LogLevel: "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("SONG")
			os.Unsetenv("SOUNDFONT")
			os.Unsetenv("WORKERS")
			os.Unsetenv("DURATION")
			os.Unsetenv("LOG_LEVEL")

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			config, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if config.SongPath != tt.expected.SongPath {
				t.Errorf("SongPath = %q, want %q", config.SongPath, tt.expected.SongPath)
			}
			if config.SoundFontPath != tt.expected.SoundFontPath {
				t.Errorf("SoundFontPath = %q, want %q", config.SoundFontPath, tt.expected.SoundFontPath)
			}
			if config.WorkerThreads != tt.expected.WorkerThreads {
				t.Errorf("WorkerThreads = %v, want %v", config.WorkerThreads, tt.expected.WorkerThreads)
			}
			if config.Duration != tt.expected.Duration {
				t.Errorf("Duration = %v, want %v", config.Duration, tt.expected.Duration)
			}
			if config.LogLevel != tt.expected.LogLevel {
				t.Errorf("LogLevel = %q, want %q", config.LogLevel, tt.expected.LogLevel)
			}
		})
	}
}
