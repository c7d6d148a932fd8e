package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olegsv/revoice/internal/types"
)

// Normalize re-encodes one segment to the target profile. Concatenation by
// stream copy requires byte-exact profile alignment across every joined
// file; skipping this pass is a classic source of corrupt joins.
func (a *Adapter) Normalize(ctx context.Context, src, out string) error {
	p := a.prof
	args := []string{
		"-y", "-i", src,
		"-c:v", p.Video.Codec,
		"-preset", p.Video.Preset,
		"-crf", itoa(p.Video.CRF),
		"-r", itoa(p.Video.FrameRate),
		"-c:a", p.Audio.Codec,
		"-ar", itoa(p.Audio.SampleRate),
		"-ac", itoa(p.Audio.Channels),
		"-b:a", p.Audio.Bitrate,
		"-pix_fmt", p.Video.PixelFormat,
		"-avoid_negative_ts", "1",
		out,
	}
	if err := a.run(ctx, "normalize", args...); err != nil {
		return fmt.Errorf("normalize %s: %w: %v", filepath.Base(src), types.ErrNormalize, err)
	}
	return nil
}

// Concat joins the segments with the concat demuxer: stream copy first, one
// full re-encode as the fallback. The list file is retained alongside the
// other scratch artifacts.
func (a *Adapter) Concat(ctx context.Context, segments []string, listFile, out string) error {
	if len(segments) == 0 {
		return fmt.Errorf("concat: no segments: %w", types.ErrConcat)
	}

	list, err := concatList(segments)
	if err != nil {
		return fmt.Errorf("concat: %w: %v", types.ErrConcat, err)
	}
	if err := os.WriteFile(listFile, []byte(list), 0o644); err != nil {
		return fmt.Errorf("concat: write list file: %w: %v", types.ErrConcat, err)
	}

	copyArgs := []string{
		"-y", "-f", "concat", "-safe", "0",
		"-i", listFile,
		"-c", "copy",
		"-movflags", "+faststart",
		out,
	}
	encodeArgs := []string{
		"-y", "-f", "concat", "-safe", "0",
		"-i", listFile,
		"-c:v", "libx264",
		"-preset", a.preset,
		"-crf", "23",
		"-c:a", a.prof.Audio.Codec,
		"-ar", itoa(a.prof.Audio.SampleRate),
		"-ac", itoa(a.prof.Audio.Channels),
		"-b:a", a.prof.Audio.Bitrate,
		"-movflags", "+faststart",
		"-pix_fmt", a.prof.Video.PixelFormat,
		out,
	}

	err = attempt(
		func() error {
			if err := a.run(ctx, "concat (stream copy)", copyArgs...); err != nil {
				return err
			}
			return a.requireOutput(out)
		},
		func() error {
			a.logf("concat: stream copy failed, re-encoding join")
			if err := a.run(ctx, "concat (re-encode)", encodeArgs...); err != nil {
				return err
			}
			return a.requireOutput(out)
		},
	)
	if err != nil {
		return fmt.Errorf("concat %d segments: %w: %v", len(segments), types.ErrConcat, err)
	}
	return nil
}

// concatList renders the demuxer list file. Paths are made absolute and
// single quotes escaped so the demuxer never misreads a filename.
func concatList(paths []string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("absolute path for %s: %w", p, err)
		}
		escaped := strings.ReplaceAll(abs, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", escaped)
	}
	return b.String(), nil
}
