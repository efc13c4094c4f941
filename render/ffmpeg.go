package render

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"fact-shorts-pipeline/config"
)

// FFmpeg drives the external media tool. Each operation is one out-of-process
// invocation with an explicit argument list; stderr is captured and carried
// in the returned error so the failing stage stays diagnosable.
type FFmpeg struct {
	cfg    *config.Config
	binary string
}

// NewFFmpeg creates an FFmpeg runner using the ffmpeg binary on PATH.
func NewFFmpeg(cfg *config.Config) *FFmpeg {
	return &FFmpeg{cfg: cfg, binary: "ffmpeg"}
}

// Trim cuts a clip to at most maxSec seconds from its start (stream copy,
// no re-encode) and writes a uniquely named trimmed asset.
func (f *FFmpeg) Trim(ctx context.Context, clip string, maxSec float64) (string, error) {
	outFile := filepath.Join(f.cfg.Paths.Clips, "trim_"+uuid.NewString()+".mp4")
	err := f.run(ctx,
		"-y",
		"-i", clip,
		"-t", fmt.Sprintf("%.3f", maxSec),
		"-c", "copy",
		outFile,
	)
	if err != nil {
		return "", err
	}
	return outFile, nil
}

// Concat joins the clips in order via the concat demuxer (stream copy),
// driven by a manifest of file lines.
func (f *FFmpeg) Concat(ctx context.Context, clips []string) (string, error) {
	listFile := filepath.Join(f.cfg.Paths.Clips, "concat_"+uuid.NewString()+".txt")
	if err := WriteConcatManifest(listFile, clips); err != nil {
		return "", err
	}

	outFile := filepath.Join(f.cfg.Paths.Clips, "concat_"+uuid.NewString()+".mp4")
	err := f.run(ctx,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		outFile,
	)
	if err != nil {
		return "", err
	}
	return outFile, nil
}

// Mux combines the concatenated video with the narration audio into the
// final output under the public videos directory. Video is stream-copied,
// audio is re-encoded to AAC, and the output is clamped to the shorter
// input.
func (f *FFmpeg) Mux(ctx context.Context, video, audio string) (string, error) {
	outFile := filepath.Join(f.cfg.Paths.Videos, uuid.NewString()+".mp4")
	err := f.run(ctx,
		"-y",
		"-i", video,
		"-i", audio,
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		outFile,
	)
	if err != nil {
		return "", err
	}
	log.Printf("[render] ✅ Final video ready: %s", outFile)
	return outFile, nil
}

func (f *FFmpeg) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, f.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", f.binary, err, lastLines(stderr.String(), 5))
	}
	return nil
}

// WriteConcatManifest writes a concat-demuxer list: one literal
// file '<path>' line per clip, in order.
func WriteConcatManifest(path string, clips []string) error {
	var lines []string
	for _, c := range clips {
		lines = append(lines, fmt.Sprintf("file '%s'", c))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

// lastLines keeps error messages readable: ffmpeg prints its banner and
// progress to stderr, but the cause is almost always at the tail.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
