package reconcile

import (
	"math"
	"testing"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		video      float64
		audio      float64
		wantAction Action
		wantPad    float64
	}{
		{name: "audio longer is truncated", video: 10.0, audio: 12.0, wantAction: Truncate},
		{name: "audio shorter is padded", video: 10.0, audio: 7.0, wantAction: Pad, wantPad: 3.0},
		{name: "slightly long audio kept", video: 10.0, audio: 10.05, wantAction: UseAsIs},
		{name: "slightly short audio kept", video: 10.0, audio: 9.95, wantAction: UseAsIs},
		{name: "exact match kept", video: 10.0, audio: 10.0, wantAction: UseAsIs},
		{name: "just past tolerance padded", video: 10.0, audio: 9.8, wantAction: Pad, wantPad: 0.2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := Decide(tc.video, tc.audio)
			if d.Action != tc.wantAction {
				t.Fatalf("Decide(%v, %v).Action = %v, want %v", tc.video, tc.audio, d.Action, tc.wantAction)
			}
			if d.TargetSeconds != tc.video {
				t.Fatalf("TargetSeconds = %v, want %v", d.TargetSeconds, tc.video)
			}
			if math.Abs(d.PadSeconds-tc.wantPad) > 1e-9 {
				t.Fatalf("PadSeconds = %v, want %v", d.PadSeconds, tc.wantPad)
			}
		})
	}
}
