package ffmpeg

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	"github.com/olegsv/revoice/internal/domain/timeline"
	"github.com/olegsv/revoice/internal/types"
)

// Extract cuts [start, end) out of src. Stream copy first; if the result is
// missing or implausibly small, the same range is re-encoded at a fast
// preset. Spans under the extractable minimum get a placeholder clip instead.
func (a *Adapter) Extract(ctx context.Context, src string, start, end float64, keepAudio bool, out string) error {
	span := end - start
	if span < timeline.MinExtractSeconds {
		a.logf("extract: span %.3fs under %.1fs minimum, writing placeholder", span, timeline.MinExtractSeconds)
		return a.placeholder(ctx, out)
	}

	copyArgs := []string{
		"-y", "-i", src,
		"-ss", fmtSeconds(start),
		"-t", fmtSeconds(span),
		"-c:v", "copy",
	}
	if keepAudio {
		copyArgs = append(copyArgs, "-c:a", "copy")
	} else {
		copyArgs = append(copyArgs, "-an")
	}
	copyArgs = append(copyArgs, "-avoid_negative_ts", "1", out)

	encodeArgs := []string{
		"-y", "-i", src,
		"-ss", fmtSeconds(start),
		"-t", fmtSeconds(math.Max(span, timeline.MinExtractSeconds)),
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "23",
	}
	if keepAudio {
		encodeArgs = append(encodeArgs, "-c:a", a.prof.Audio.Codec)
	} else {
		encodeArgs = append(encodeArgs, "-an")
	}
	encodeArgs = append(encodeArgs, "-avoid_negative_ts", "1", "-pix_fmt", a.prof.Video.PixelFormat, out)

	err := attempt(
		func() error {
			if err := a.run(ctx, "extract (stream copy)", copyArgs...); err != nil {
				return err
			}
			return a.requireOutput(out)
		},
		func() error {
			a.logf("extract: stream copy failed for %.2f-%.2fs, re-encoding", start, end)
			if err := a.run(ctx, "extract (re-encode)", encodeArgs...); err != nil {
				return err
			}
			return a.requireOutput(out)
		},
	)
	if err != nil {
		return fmt.Errorf("extract %.2f-%.2fs from %s: %w: %v", start, end, filepath.Base(src), types.ErrExtract, err)
	}
	return nil
}

// placeholder writes a short black clip with silent audio so degenerate
// spans never produce zero-frame files.
func (a *Adapter) placeholder(ctx context.Context, out string) error {
	args := []string{
		"-y",
		"-f", "lavfi", "-i", "color=c=black:s=1920x1080:d=0.1:rate=30",
		"-f", "lavfi", "-i", a.silenceSource(),
		"-t", "0.1",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "23",
		"-c:a", a.prof.Audio.Codec,
		"-b:a", a.prof.Audio.Bitrate,
		"-pix_fmt", a.prof.Video.PixelFormat,
		"-shortest",
		out,
	}
	if err := a.run(ctx, "extract (placeholder)", args...); err != nil {
		return fmt.Errorf("placeholder clip: %w: %v", types.ErrExtract, err)
	}
	return nil
}
