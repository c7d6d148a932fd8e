// Package timeline partitions the original video timeline into gap, speech
// and tail segments from a set of timed synthesized-audio units.
package timeline

import (
	"math"
	"sort"

	"github.com/olegsv/revoice/internal/types"
)

const (
	// MinKeepSeconds is the shortest gap or tail span worth keeping. Shorter
	// spans are dropped from the output timeline entirely, not merged into a
	// neighbor. This shortens the result relative to the source; the plan
	// records every dropped span so the loss stays visible.
	MinKeepSeconds = 1.0

	// SpeedTolerance is the |factor-1| band inside which retiming is a no-op.
	SpeedTolerance = 0.01

	// MinExtractSeconds is the shortest span that extraction produces real
	// frames for; shorter spans get a placeholder clip.
	MinExtractSeconds = 0.1
)

// Plan is the result of walking the timeline.
type Plan struct {
	// Segments are contiguous, chronologically ordered and exhaustive over
	// [0, videoDuration] except for the dropped spans.
	Segments []types.Segment

	// Dropped holds gap/tail spans under MinKeepSeconds.
	Dropped []types.DroppedSpan

	// Skipped holds units whose span falls outside the video duration.
	Skipped []types.TimedAudioUnit
}

// Build walks the units in start order and emits the segment list. Units are
// sorted by start internally; overlapping units are an upstream
// data-integrity violation and are not repaired here. Units that start at or
// after the end of the video, or end past it, are skipped.
func Build(units []types.TimedAudioUnit, videoDuration float64) Plan {
	sorted := make([]types.TimedAudioUnit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartMS < sorted[j].StartMS })

	var plan Plan
	cursor := 0.0

	for i := range sorted {
		u := sorted[i]
		if u.StartSeconds() >= videoDuration || u.EndSeconds() > videoDuration {
			plan.Skipped = append(plan.Skipped, u)
			continue
		}

		if u.StartSeconds() > cursor {
			emitFiller(&plan, types.KindGap, cursor, u.StartSeconds())
		}

		plan.Segments = append(plan.Segments, types.Segment{
			Kind:         types.KindSpeech,
			StartSeconds: u.StartSeconds(),
			EndSeconds:   u.EndSeconds(),
			Unit:         &sorted[i],
		})
		cursor = u.EndSeconds()
	}

	if cursor < videoDuration {
		emitFiller(&plan, types.KindTail, cursor, videoDuration)
	}

	return plan
}

func emitFiller(plan *Plan, kind types.SegmentKind, start, end float64) {
	if end-start < MinKeepSeconds {
		plan.Dropped = append(plan.Dropped, types.DroppedSpan{
			Kind:     string(kind),
			StartSec: start,
			EndSec:   end,
		})
		return
	}
	plan.Segments = append(plan.Segments, types.Segment{
		Kind:         kind,
		StartSeconds: start,
		EndSeconds:   end,
	})
}

// SpeedFactor derives the retiming factor for a speech segment: the ratio of
// the original span to the synthesized audio duration. >1 speeds the video
// up, <1 slows it down. A non-positive audio duration yields the no-op 1.0.
func SpeedFactor(segmentSeconds, audioSeconds float64) float64 {
	if audioSeconds <= 0 {
		return 1.0
	}
	return segmentSeconds / audioSeconds
}

// NeedsAdjust reports whether the factor is far enough from 1.0 to justify a
// re-encode.
func NeedsAdjust(factor float64) bool {
	return math.Abs(factor-1.0) >= SpeedTolerance
}
