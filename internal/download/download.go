// Package download remuxes resolved streams into local files with ffmpeg.
// ffmpeg is invoked with an explicit argument slice and output paths are
// validated against directory traversal.
package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"ashdl/internal/httputil"
	"ashdl/internal/media"
)

// ErrNoName is returned when no file name can be derived from a stream URL.
var ErrNoName = errors.New("cannot derive file name from stream URL")

// Downloader copies streams into containers without re-encoding.
type Downloader struct {
	FFmpeg    string // binary name or path
	OutputDir string
	Format    string // container extension, e.g. "mp4"
}

// New creates a Downloader.
func New(ffmpeg, outputDir, format string) *Downloader {
	return &Downloader{FFmpeg: ffmpeg, OutputDir: outputDir, Format: format}
}

// OutputName returns "{name}.{format}" where name is the fourth "/"-separated
// segment from the end of streamURL, e.g. ".../show_s01e03/hls/720/index.m3u8".
func OutputName(streamURL, format string) (string, error) {
	parts := strings.Split(streamURL, "/")
	if len(parts) < 5 {
		return "", fmt.Errorf("%q: %w", streamURL, ErrNoName)
	}
	name := parts[len(parts)-4]
	if name == "" {
		return "", fmt.Errorf("%q: %w", streamURL, ErrNoName)
	}
	return name + "." + format, nil
}

// Download remuxes stream into the output directory, overwriting any
// existing file of the same name. Returns the written path.
func (d *Downloader) Download(ctx context.Context, stream *media.Stream) (string, error) {
	if err := httputil.ValidateURL(stream.URL); err != nil {
		return "", fmt.Errorf("invalid stream URL: %w", err)
	}

	name, err := OutputName(stream.URL, d.Format)
	if err != nil {
		return "", err
	}

	ffmpegPath, err := exec.LookPath(d.FFmpeg)
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	absDir, err := filepath.Abs(d.OutputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	args := []string{
		"-nostdin",
		"-loglevel", "error",
		"-y", // Overwrite output
		"-i", stream.URL,
		"-c", "copy", // Copy every stream, no re-encoding
		outputPath,
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("ffmpeg failed for %s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("ffmpeg failed for %s: %w", name, err)
	}

	return outputPath, nil
}
