package ports

import (
	"context"

	"github.com/olegsv/revoice/internal/types"
)

// Prober answers media metadata questions via an external analysis tool.
type Prober interface {
	// Duration returns the container duration in seconds.
	Duration(ctx context.Context, path string) (float64, error)
	// Streams returns the stream layout of the file.
	Streams(ctx context.Context, path string) ([]types.Stream, error)
}

// MediaTool performs the per-segment transformations via an external
// transcode/mux tool. Every operation writes exactly one output file on
// success.
type MediaTool interface {
	// Extract cuts [start, end) out of src. keepAudio controls whether the
	// source audio track is carried over. Spans under the minimum extractable
	// length produce a placeholder clip.
	Extract(ctx context.Context, src string, start, end float64, keepAudio bool, out string) error

	// AdjustSpeed rewrites the playback rate of video and audio together by
	// factor. Callers skip the call entirely for factor == 1.0.
	AdjustSpeed(ctx context.Context, src string, factor float64, out string) error

	// ReplaceAudio strips the video's own audio, fits newAudio to the video
	// duration and muxes exactly one video and one audio stream.
	ReplaceAudio(ctx context.Context, video, newAudio, out string) error

	// SilenceAudio replaces the video's audio track with synthetic silence of
	// the given duration at the profile sample rate.
	SilenceAudio(ctx context.Context, video string, seconds float64, out string) error

	// Normalize re-encodes one segment to the target profile.
	Normalize(ctx context.Context, src, out string) error

	// Concat joins the segments in order. The list file is written at
	// listFile and retained with the other scratch artifacts.
	Concat(ctx context.Context, segments []string, listFile, out string) error
}
