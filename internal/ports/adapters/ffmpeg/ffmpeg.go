// Package ffmpeg adapts the ffmpeg and ffprobe binaries to the pipeline's
// ports. All transformations shell out; nothing here decodes media in
// process.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/olegsv/revoice/internal/config"
)

// minOutputBytes is the smallest plausible clip; anything below it is
// treated as a failed write even when ffmpeg exited zero.
const minOutputBytes = 1024

// Options configures an Adapter. Zero values fall back to binaries on PATH,
// the default profile, the fast preset and a no-op logger.
type Options struct {
	FFmpegPath  string
	FFprobePath string
	Profile     config.Profile
	Preset      string // x264 preset for retime and join-fallback encodes
	Accel       Accel
	Logf        func(format string, args ...any)
}

type Adapter struct {
	ffmpeg  string
	ffprobe string
	prof    config.Profile
	preset  string
	accel   Accel
	logf    func(format string, args ...any)
}

func New(opts Options) *Adapter {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.FFprobePath == "" {
		opts.FFprobePath = "ffprobe"
	}
	if opts.Profile.Video.Codec == "" {
		opts.Profile = config.DefaultProfile()
	}
	if opts.Preset == "" {
		opts.Preset = "fast"
	}
	if opts.Accel.Type == "" {
		opts.Accel = cpuAccel("no acceleration configured")
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	return &Adapter{
		ffmpeg:  opts.FFmpegPath,
		ffprobe: opts.FFprobePath,
		prof:    opts.Profile,
		preset:  opts.Preset,
		accel:   opts.Accel,
		logf:    opts.Logf,
	}
}

// CheckAvailable verifies both binaries respond before a run starts.
func (a *Adapter) CheckAvailable(ctx context.Context) error {
	for _, bin := range []string{a.ffmpeg, a.ffprobe} {
		cmd := exec.CommandContext(ctx, bin, "-version")
		if b, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("%s not available: %w\n%s", bin, err, string(b))
		}
	}
	return nil
}

func (a *Adapter) run(ctx context.Context, op string, args ...string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg %s: %w\n%s", op, err, string(b))
	}
	return nil
}

// requireOutput guards against ffmpeg runs that exit zero but leave a
// missing or implausibly small file behind.
func (a *Adapter) requireOutput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("output %s missing: %w", path, err)
	}
	if fi.Size() < minOutputBytes {
		return fmt.Errorf("output %s implausibly small (%d bytes)", path, fi.Size())
	}
	return nil
}

// attempt runs strategies in order and returns nil on the first success, or
// the last error when all fail.
func attempt(strategies ...func() error) error {
	var err error
	for _, s := range strategies {
		if err = s(); err == nil {
			return nil
		}
	}
	return err
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func itoa(n int) string { return strconv.Itoa(n) }

// silenceSource is the lavfi source matching the profile's audio layout.
func (a *Adapter) silenceSource() string {
	layout := "stereo"
	if a.prof.Audio.Channels == 1 {
		layout = "mono"
	}
	return fmt.Sprintf("anullsrc=channel_layout=%s:sample_rate=%d", layout, a.prof.Audio.SampleRate)
}
