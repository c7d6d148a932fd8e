package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/olegsv/revoice/internal/types"
)

func (a *Adapter) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("probe duration of %s: %w: %s", path, types.ErrProbe, strings.TrimSpace(string(b)))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("probe duration of %s: parse %q: %w", path, s, types.ErrProbe)
	}
	return sec, nil
}

func (a *Adapter) Streams(ctx context.Context, path string) ([]types.Stream, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("probe streams of %s: %w: %s", path, types.ErrProbe, strings.TrimSpace(string(b)))
	}
	var parsed struct {
		Streams []types.Stream `json:"streams"`
	}
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, fmt.Errorf("probe streams of %s: parse json: %w", path, types.ErrProbe)
	}
	return parsed.Streams, nil
}
