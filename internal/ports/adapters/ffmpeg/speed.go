package ffmpeg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olegsv/revoice/internal/types"
)

// AdjustSpeed rewrites the playback rate of video and audio together. The
// hardware decode path is tried first when available; the software path uses
// identical filter semantics, so quality does not depend on which one wins.
func (a *Adapter) AdjustSpeed(ctx context.Context, src string, factor float64, out string) error {
	if factor <= 0 {
		return fmt.Errorf("adjust speed: non-positive factor %.3f: %w", factor, types.ErrSpeedAdjust)
	}

	filter := fmt.Sprintf("[0:v]setpts=%s*PTS[v];[0:a]%s[a]",
		formatFactor(1/factor), atempoChain(factor))
	tail := []string{
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", "libx264", // filter graphs need the software encoder
		"-preset", a.preset,
		"-crf", "23",
		"-c:a", a.prof.Audio.Codec,
		"-pix_fmt", a.prof.Video.PixelFormat,
		out,
	}

	var strategies []func() error
	hw := a.accel.DecodeArgs()
	if len(hw) > 0 {
		hwArgs := append([]string{"-y"}, hw...)
		hwArgs = append(hwArgs, "-i", src)
		hwArgs = append(hwArgs, tail...)
		strategies = append(strategies, func() error {
			return a.run(ctx, "adjust speed (hw decode)", hwArgs...)
		})
	}
	swArgs := append([]string{"-y", "-i", src}, tail...)
	strategies = append(strategies, func() error {
		if len(hw) > 0 {
			a.logf("adjust speed: hardware decode failed, falling back to software")
		}
		return a.run(ctx, "adjust speed", swArgs...)
	})

	if err := attempt(strategies...); err != nil {
		return fmt.Errorf("adjust speed %.3fx: %w: %v", factor, types.ErrSpeedAdjust, err)
	}
	return a.requireOutput(out)
}

// atempoChain decomposes factor into a chain of atempo filters. A single
// atempo instance only accepts 0.5-2.0, so factors outside that range are
// applied in legal hops.
func atempoChain(factor float64) string {
	var parts []string
	f := factor
	for f > 2.0 {
		parts = append(parts, "atempo=2.0")
		f /= 2.0
	}
	for f < 0.5 {
		parts = append(parts, "atempo=0.5")
		f /= 0.5
	}
	parts = append(parts, "atempo="+formatFactor(f))
	return strings.Join(parts, ",")
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
