// Package usecase sequences the segment-retiming and re-assembly run: plan
// the timeline, run the four-step pipeline per segment, normalize the
// collected clips and join them into the final output.
package usecase

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olegsv/revoice/internal/domain/timeline"
	"github.com/olegsv/revoice/internal/domain/ttsdir"
	"github.com/olegsv/revoice/internal/ports"
	"github.com/olegsv/revoice/internal/types"
)

// joinToleranceSeconds is the per-segment rounding slack allowed between the
// joined output duration and the sum of its parts.
const joinToleranceSeconds = 0.05

type Deps struct {
	Probe ports.Prober
	Media ports.MediaTool
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	VideoPath  string
	TTSDir     string
	OutputPath string
	ScratchDir string
	Logf       func(format string, args ...any)
}

type Result struct {
	Manifest types.Manifest
}

// collected is one processed segment waiting for normalization, in original
// chronological order.
type collected struct {
	path   string
	seg    types.Segment
	factor float64
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	videoDur, err := u.d.Probe.Duration(ctx, in.VideoPath)
	if err != nil {
		return Result{}, err
	}
	logf("video: %s (%.2fs)", filepath.Base(in.VideoPath), videoDur)

	units, err := ttsdir.Scan(ctx, in.TTSDir, u.d.Probe.Duration, logf)
	if err != nil {
		return Result{}, err
	}
	if len(units) == 0 {
		return Result{}, fmt.Errorf("no usable tts audio units in %s", in.TTSDir)
	}
	logf("tts: %d units from %s", len(units), in.TTSDir)

	plan := timeline.Build(units, videoDur)
	for _, su := range plan.Skipped {
		logf("plan: unit %d-%dms lies outside the %.2fs video, skipped", su.StartMS, su.EndMS, videoDur)
	}
	for _, d := range plan.Dropped {
		logf("plan: %s span %.2f-%.2fs under %.1fs threshold, dropped", d.Kind, d.StartSec, d.EndSec, timeline.MinKeepSeconds)
	}
	if len(plan.Segments) == 0 {
		return Result{}, fmt.Errorf("timeline plan produced no segments for %s", in.VideoPath)
	}
	logf("plan: %d segments", len(plan.Segments))

	coll, err := u.processSegments(ctx, in, plan.Segments, logf)
	if err != nil {
		return Result{}, err
	}

	normalized, err := u.normalizeAll(ctx, in.ScratchDir, coll, logf)
	if err != nil {
		return Result{}, err
	}

	listFile := filepath.Join(in.ScratchDir, "step4_final_file_list.txt")
	if err := u.d.Media.Concat(ctx, normalized, listFile, in.OutputPath); err != nil {
		return Result{}, err
	}

	finalDur, err := u.validateOutput(ctx, in.OutputPath, normalized, logf)
	if err != nil {
		return Result{}, err
	}
	logf("assembled %s (%.2fs)", in.OutputPath, finalDur)

	m := types.Manifest{
		Input:       in.VideoPath,
		Output:      in.OutputPath,
		DurationSec: finalDur,
		Dropped:     plan.Dropped,
	}
	for i, c := range coll {
		ms := types.ManifestSegment{
			Kind:        string(c.seg.Kind),
			StartSec:    c.seg.StartSeconds,
			EndSec:      c.seg.EndSeconds,
			SpeedFactor: c.factor,
			Artifact:    normalized[i],
		}
		if c.seg.Unit != nil {
			ms.AudioFile = c.seg.Unit.AudioPath
		}
		m.Segments = append(m.Segments, ms)
	}
	return Result{Manifest: m}, nil
}

// processSegments runs cut, retime and re-audio for every planned segment,
// preserving chronological order in the returned list.
func (u Usecase) processSegments(ctx context.Context, in Input, segments []types.Segment, logf func(string, ...any)) ([]collected, error) {
	var coll []collected
	for i, seg := range segments {
		logf("segment %d/%d: %s %.2f-%.2fs", i+1, len(segments), seg.Kind, seg.StartSeconds, seg.EndSeconds)

		switch seg.Kind {
		case types.KindSpeech:
			c, err := u.processSpeech(ctx, in, i, seg, logf)
			if err != nil {
				return nil, err
			}
			coll = append(coll, c)
		default:
			c, err := u.processFiller(ctx, in, i, seg, logf)
			if err != nil {
				return nil, err
			}
			coll = append(coll, c)
		}
	}
	return coll, nil
}

func (u Usecase) processSpeech(ctx context.Context, in Input, i int, seg types.Segment, logf func(string, ...any)) (collected, error) {
	cut := filepath.Join(in.ScratchDir, fmt.Sprintf("step1_speech_%d.mp4", i))
	if err := u.d.Media.Extract(ctx, in.VideoPath, seg.StartSeconds, seg.EndSeconds, true, cut); err != nil {
		return collected{}, err
	}

	current := cut
	applied := 1.0
	factor := timeline.SpeedFactor(seg.Duration(), seg.Unit.SynthesizedSeconds)
	if timeline.NeedsAdjust(factor) {
		logf("segment %d: retime %.3fx (%.2fs -> %.2fs)", i+1, factor, seg.Duration(), seg.Unit.SynthesizedSeconds)
		adjusted := filepath.Join(in.ScratchDir, fmt.Sprintf("step2_speech_speed_%d.mp4", i))
		if err := u.d.Media.AdjustSpeed(ctx, cut, factor, adjusted); err != nil {
			// Degrade to original speed; one bad retime must not sink the run.
			logf("segment %d: retime failed, keeping original speed: %v", i+1, err)
		} else {
			current = adjusted
			applied = factor
		}
	} else {
		logf("segment %d: retime skipped, factor %.3f within tolerance", i+1, factor)
	}

	dubbed := filepath.Join(in.ScratchDir, fmt.Sprintf("step3_speech_with_tts_%d.mp4", i))
	if err := u.d.Media.ReplaceAudio(ctx, current, seg.Unit.AudioPath, dubbed); err != nil {
		return collected{}, err
	}
	return collected{path: dubbed, seg: seg, factor: applied}, nil
}

func (u Usecase) processFiller(ctx context.Context, in Input, i int, seg types.Segment, logf func(string, ...any)) (collected, error) {
	name := fmt.Sprintf("step1_gap_%d.mp4", i)
	if seg.Kind == types.KindTail {
		name = "step1_tail.mp4"
	}
	cut := filepath.Join(in.ScratchDir, name)
	if err := u.d.Media.Extract(ctx, in.VideoPath, seg.StartSeconds, seg.EndSeconds, true, cut); err != nil {
		return collected{}, err
	}

	silent := strings.TrimSuffix(cut, ".mp4") + "_silent.mp4"
	path := silent
	if err := u.d.Media.SilenceAudio(ctx, cut, seg.Duration(), silent); err != nil {
		// Fall back to the source audio track rather than aborting.
		logf("segment %d: silence normalization failed, keeping original audio: %v", i+1, err)
		path = cut
	}
	return collected{path: path, seg: seg, factor: 1.0}, nil
}

func (u Usecase) normalizeAll(ctx context.Context, scratchDir string, coll []collected, logf func(string, ...any)) ([]string, error) {
	normDir := filepath.Join(scratchDir, "normalized")
	if err := os.MkdirAll(normDir, 0o755); err != nil {
		return nil, fmt.Errorf("create normalized dir: %w", err)
	}

	normalized := make([]string, 0, len(coll))
	for i, c := range coll {
		base := strings.TrimSuffix(filepath.Base(c.path), filepath.Ext(c.path))
		out := filepath.Join(normDir, base+"_normalized.mp4")
		if err := u.d.Media.Normalize(ctx, c.path, out); err != nil {
			return nil, err
		}
		normalized = append(normalized, out)
		logf("normalize %d/%d: %s", i+1, len(coll), filepath.Base(out))
	}
	return normalized, nil
}

// validateOutput enforces the final post-conditions: the joined duration must
// match the sum of the normalized parts within cumulative rounding slack, and
// the output must carry exactly one video and one audio stream. Audio
// characteristics are logged as diagnostics only.
func (u Usecase) validateOutput(ctx context.Context, output string, normalized []string, logf func(string, ...any)) (float64, error) {
	expected := 0.0
	for _, p := range normalized {
		d, err := u.d.Probe.Duration(ctx, p)
		if err != nil {
			return 0, err
		}
		expected += d
	}

	finalDur, err := u.d.Probe.Duration(ctx, output)
	if err != nil {
		return 0, err
	}
	tolerance := joinToleranceSeconds * float64(len(normalized))
	if math.Abs(finalDur-expected) > tolerance {
		return 0, fmt.Errorf("joined output is %.2fs, expected %.2fs (tolerance %.2fs): %w",
			finalDur, expected, tolerance, types.ErrConcat)
	}

	streams, err := u.d.Probe.Streams(ctx, output)
	if err != nil {
		return 0, err
	}
	videoStreams, audioStreams := 0, 0
	var videoDur, audioDur float64
	for _, s := range streams {
		switch s.CodecType {
		case "video":
			videoStreams++
			videoDur = parseStreamDuration(s.Duration)
		case "audio":
			audioStreams++
			audioDur = parseStreamDuration(s.Duration)
			logf("output audio: %s, %s Hz, %d channel(s)", s.CodecName, s.SampleRate, s.Channels)
		}
	}
	if videoStreams != 1 || audioStreams != 1 {
		return 0, fmt.Errorf("output has %d video and %d audio streams, want 1+1: %w",
			videoStreams, audioStreams, types.ErrStreamIntegrity)
	}
	if videoDur > 0 && audioDur > 0 && math.Abs(videoDur-audioDur) > 0.5 {
		logf("output: video %.2fs and audio %.2fs differ by %.2fs", videoDur, audioDur, math.Abs(videoDur-audioDur))
	}
	return finalDur, nil
}

func parseStreamDuration(s string) float64 {
	if s == "" {
		return 0
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return d
}
