package types

import "errors"

// Sentinel errors for the assembly pipeline.
//
// Call sites wrap these with context using fmt.Errorf and %w, preserving
// errors.Is() checks:
//
//	return fmt.Errorf("extract %.2f-%.2fs: %w", start, end, types.ErrExtract)

var (
	// ErrProbe indicates ffprobe could not read or parse a media file.
	// Fatal to the enclosing operation; never retried.
	ErrProbe = errors.New("media probe failed")

	// ErrExtract indicates both the stream-copy and the re-encode extraction
	// attempts failed. Fatal to the run.
	ErrExtract = errors.New("segment extraction failed")

	// ErrSpeedAdjust indicates both the hardware and the software retiming
	// paths failed. The planner degrades the segment to its original speed
	// and continues.
	ErrSpeedAdjust = errors.New("speed adjustment failed")

	// ErrAudioReplace indicates the dubbed audio could not be attached to a
	// speech segment. Fatal to the run: a speech segment without its dubbed
	// audio has no sensible fallback.
	ErrAudioReplace = errors.New("audio replacement failed")

	// ErrStreamIntegrity indicates an output did not contain exactly one
	// video and one audio stream. Fatal.
	ErrStreamIntegrity = errors.New("unexpected stream layout")

	// ErrNormalize indicates a collected segment could not be re-encoded to
	// the target profile. Fatal.
	ErrNormalize = errors.New("segment normalization failed")

	// ErrConcat indicates the final join failed in both the stream-copy and
	// the re-encode mode. Fatal; there is no further fallback.
	ErrConcat = errors.New("concatenation failed")
)
