package types

// SegmentKind classifies a span of the original video timeline.
type SegmentKind string

const (
	KindGap    SegmentKind = "gap"
	KindSpeech SegmentKind = "speech"
	KindTail   SegmentKind = "tail"
)

// TimedAudioUnit is one synthesized speech clip produced by the upstream TTS
// stage. Start/End are positions in the ORIGINAL video timeline, in integer
// milliseconds; SynthesizedSeconds is the measured duration of the audio file,
// never assumed from the span.
type TimedAudioUnit struct {
	StartMS            int64
	EndMS              int64
	AudioPath          string
	SynthesizedSeconds float64
}

func (u TimedAudioUnit) StartSeconds() float64 { return float64(u.StartMS) / 1000.0 }
func (u TimedAudioUnit) EndSeconds() float64   { return float64(u.EndMS) / 1000.0 }

// SpanSeconds is the duration the unit occupies on the original timeline.
func (u TimedAudioUnit) SpanSeconds() float64 {
	return float64(u.EndMS-u.StartMS) / 1000.0
}

// Segment is a contiguous span of the original video tagged by kind.
// Speech segments carry a back-reference to their audio unit; gap and tail
// segments do not.
type Segment struct {
	Kind         SegmentKind
	StartSeconds float64
	EndSeconds   float64
	Unit         *TimedAudioUnit
}

func (s Segment) Duration() float64 { return s.EndSeconds - s.StartSeconds }

// Stream describes one stream of a probed media file. String fields mirror
// ffprobe's JSON output, which reports numerics as strings.
type Stream struct {
	Index      int    `json:"index"`
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate string `json:"sample_rate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// Manifest is the run report written into the scratch directory.
type Manifest struct {
	Input       string            `json:"input"`
	Output      string            `json:"output"`
	DurationSec float64           `json:"duration_sec"`
	Segments    []ManifestSegment `json:"segments"`
	Dropped     []DroppedSpan     `json:"dropped,omitempty"`
}

// ManifestSegment records one assembled segment. SpeedFactor is the factor
// actually applied: 1.0 for gap/tail segments and for speech segments whose
// retiming was skipped or degraded.
type ManifestSegment struct {
	Kind        string  `json:"kind"`
	StartSec    float64 `json:"start_sec"`
	EndSec      float64 `json:"end_sec"`
	SpeedFactor float64 `json:"speed_factor"`
	Artifact    string  `json:"artifact"`
	AudioFile   string  `json:"audio_file,omitempty"`
}

// DroppedSpan records a gap or tail span that fell under the keep threshold
// and was removed from the output timeline.
type DroppedSpan struct {
	Kind     string  `json:"kind"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}
