// Command songrender renders a song blob to a WAV file, optionally
// dumping the render's scheduler trace as a chrome://tracing JSON file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kaelstrom/wavegraph/pkg/cli"
	"github.com/kaelstrom/wavegraph/pkg/devices"
	"github.com/kaelstrom/wavegraph/pkg/fileutil"
	"github.com/kaelstrom/wavegraph/pkg/logger"
	"github.com/kaelstrom/wavegraph/pkg/renderer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "songrender:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	if config.ShowHelp {
		cli.PrintHelp()
		return nil
	}
	if config.SongPath == "" {
		cli.PrintHelp()
		return fmt.Errorf("song path is required")
	}

	if err := logger.InitLogger(config.LogLevel); err != nil {
		return err
	}
	log := logger.GetLogger()

	songBlob, err := os.ReadFile(config.SongPath)
	if err != nil {
		return fmt.Errorf("read song: %w", err)
	}

	soundFontPath, err := resolveSoundFontPath(config.SoundFontPath)
	if err != nil {
		return err
	}

	registry := devices.NewRegistry(soundFontPath, log)
	rend, err := renderer.NewWithOptions(songBlob, registry.Factory(), config.WorkerThreads, renderer.DefaultMaxTraceEvents, log)
	if err != nil {
		return fmt.Errorf("construct renderer: %w", err)
	}
	defer rend.Close()

	duration := config.Duration
	if duration == 0 {
		duration = time.Duration(rend.GetLength() * float64(time.Second))
	}
	totalSamples := int(duration.Seconds() * float64(rend.GetSampleRate()) * 2)
	totalSamples -= totalSamples % 2

	blockSamples := config.BlockSize * 2
	out := make([]int16, 0, totalSamples)
	buf := make([]int16, blockSamples)

	for len(out) < totalSamples {
		n := blockSamples
		if remaining := totalSamples - len(out); remaining < n {
			n = remaining
		}
		if err := renderer.CheckEvenSampleCount(n); err != nil {
			return fmt.Errorf("render block: %w", err)
		}
		rend.RenderSamples(buf[:n], n)
		out = append(out, buf[:n]...)
	}

	if err := writeWAV(config.OutPath, out, rend.GetSampleRate()); err != nil {
		return err
	}
	log.Info("rendered song", "out", config.OutPath, "samples", len(out)/2, "sample_rate", rend.GetSampleRate())

	if config.TracePath != "" {
		if err := writeTrace(config.TracePath, rend.TraceEvents()); err != nil {
			return err
		}
		log.Info("wrote trace", "path", config.TracePath)
	}

	return nil
}

// resolveSoundFontPath tolerates a SoundFontPath whose case doesn't match
// the file on disk, the way SoundFont distributions on different
// platforms tend to disagree about ".sf2" vs ".SF2". If the exact path
// doesn't exist, it falls back to a case-insensitive search of the same
// directory before giving up.
func resolveSoundFontPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	found, err := fileutil.FindFileCaseInsensitive(dir, name)
	if err != nil {
		return "", fmt.Errorf("resolve soundfont path %q: %w", path, err)
	}
	return found, nil
}
