// Package reconcile decides how a synthesized audio track is fitted to a
// fixed-length video segment before muxing.
package reconcile

// ToleranceSeconds is the duration mismatch accepted without touching the
// audio. The mux step clips to the video duration anyway, so small excess on
// either side is harmless.
const ToleranceSeconds = 0.1

// Action is the fitting strategy for one audio track.
type Action int

const (
	// UseAsIs keeps the audio unchanged; the mismatch is within tolerance.
	UseAsIs Action = iota
	// Truncate cuts the audio down to the video duration.
	Truncate
	// Pad appends trailing silence until the audio reaches the video duration.
	Pad
)

func (a Action) String() string {
	switch a {
	case Truncate:
		return "truncate"
	case Pad:
		return "pad"
	default:
		return "as-is"
	}
}

// Decision is the outcome of Decide. TargetSeconds is the duration the audio
// must end up with; PadSeconds is the silence to append (Pad only).
type Decision struct {
	Action        Action
	TargetSeconds float64
	PadSeconds    float64
}

// Decide compares the two durations and picks the fitting strategy.
func Decide(videoSeconds, audioSeconds float64) Decision {
	switch {
	case audioSeconds > videoSeconds+ToleranceSeconds:
		return Decision{Action: Truncate, TargetSeconds: videoSeconds}
	case audioSeconds < videoSeconds-ToleranceSeconds:
		return Decision{
			Action:        Pad,
			TargetSeconds: videoSeconds,
			PadSeconds:    videoSeconds - audioSeconds,
		}
	default:
		return Decision{Action: UseAsIs, TargetSeconds: videoSeconds}
	}
}
