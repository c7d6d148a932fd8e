package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/olegsv/revoice/internal/domain/reconcile"
	"github.com/olegsv/revoice/internal/types"
)

// ReplaceAudio substitutes newAudio for the video's own track. Stripping and
// muxing are separate passes: overlaying a new audio input onto a file that
// still carries its own track produces ambiguous multi-audio outputs.
func (a *Adapter) ReplaceAudio(ctx context.Context, video, newAudio, out string) error {
	videoDur, err := a.Duration(ctx, video)
	if err != nil {
		return err
	}
	audioDur, err := a.Duration(ctx, newAudio)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(out, filepath.Ext(out))
	stripped := base + "_video.mp4"
	if err := a.run(ctx, "strip audio",
		"-y", "-i", video, "-c:v", "copy", "-an", stripped,
	); err != nil {
		return fmt.Errorf("replace audio: %w: %v", types.ErrAudioReplace, err)
	}

	d := reconcile.Decide(videoDur, audioDur)
	fitted := newAudio
	copyAtMux := false
	switch d.Action {
	case reconcile.Truncate:
		a.logf("replace audio: tts track %.2fs over video %.2fs, truncating", audioDur, videoDur)
		fitted = base + "_audio.aac"
		if err := a.run(ctx, "truncate audio",
			"-y", "-i", newAudio,
			"-c:a", a.prof.Audio.Codec,
			"-ac", itoa(a.prof.Audio.Channels),
			"-ar", itoa(a.prof.Audio.SampleRate),
			"-b:a", a.prof.Audio.Bitrate,
			"-t", fmtSeconds(d.TargetSeconds),
			fitted,
		); err != nil {
			return fmt.Errorf("replace audio: %w: %v", types.ErrAudioReplace, err)
		}
		copyAtMux = true
	case reconcile.Pad:
		a.logf("replace audio: tts track %.2fs under video %.2fs, padding %.2fs of silence",
			audioDur, videoDur, d.PadSeconds)
		fitted = base + "_audio.aac"
		if err := a.run(ctx, "pad audio",
			"-y", "-i", newAudio,
			"-filter_complex", "apad=pad_dur="+fmtSeconds(d.PadSeconds),
			"-c:a", a.prof.Audio.Codec,
			"-ac", itoa(a.prof.Audio.Channels),
			"-ar", itoa(a.prof.Audio.SampleRate),
			"-b:a", a.prof.Audio.Bitrate,
			"-t", fmtSeconds(d.TargetSeconds),
			fitted,
		); err != nil {
			return fmt.Errorf("replace audio: %w: %v", types.ErrAudioReplace, err)
		}
		copyAtMux = true
	default:
		a.logf("replace audio: tts track %.2fs matches video %.2fs, using as-is", audioDur, videoDur)
	}

	muxArgs := []string{"-y", "-i", stripped, "-i", fitted, "-c:v", "copy"}
	if copyAtMux {
		muxArgs = append(muxArgs, "-c:a", "copy")
	} else {
		// The as-is track is still the producer's WAV; encode it on the way in.
		muxArgs = append(muxArgs,
			"-c:a", a.prof.Audio.Codec,
			"-ac", itoa(a.prof.Audio.Channels),
			"-b:a", a.prof.Audio.Bitrate,
		)
	}
	muxArgs = append(muxArgs,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-t", fmtSeconds(videoDur),
		out,
	)
	if err := a.run(ctx, "mux audio", muxArgs...); err != nil {
		return fmt.Errorf("replace audio: %w: %v", types.ErrAudioReplace, err)
	}
	if err := a.requireOutput(out); err != nil {
		return fmt.Errorf("replace audio: %w: %v", types.ErrAudioReplace, err)
	}

	streams, err := a.Streams(ctx, out)
	if err != nil {
		return err
	}
	videoStreams, audioStreams := 0, 0
	for _, s := range streams {
		switch s.CodecType {
		case "video":
			videoStreams++
		case "audio":
			audioStreams++
		}
	}
	if videoStreams != 1 || audioStreams != 1 {
		return fmt.Errorf("replace audio: output has %d video and %d audio streams, want 1+1: %w",
			videoStreams, audioStreams, types.ErrStreamIntegrity)
	}
	return nil
}

// SilenceAudio swaps the video's audio for synthetic silence at the profile
// sample rate, giving gap and tail segments uniform audio characteristics
// regardless of the source codec.
func (a *Adapter) SilenceAudio(ctx context.Context, video string, seconds float64, out string) error {
	args := []string{
		"-y",
		"-i", video,
		"-f", "lavfi", "-i", a.silenceSource(),
		"-c:v", "copy",
		"-c:a", a.prof.Audio.Codec,
		"-ar", itoa(a.prof.Audio.SampleRate),
		"-ac", itoa(a.prof.Audio.Channels),
		"-b:a", a.prof.Audio.Bitrate,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-t", fmtSeconds(seconds),
		"-shortest",
		out,
	}
	if err := a.run(ctx, "silence audio", args...); err != nil {
		return fmt.Errorf("silence audio: %w", err)
	}
	return a.requireOutput(out)
}
