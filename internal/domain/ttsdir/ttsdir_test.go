package ttsdir

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		wantStart int64
		wantEnd   int64
		wantOK    bool
	}{
		{"tts_10000_20000_a1b2c3d4.wav", 10000, 20000, true},
		{"tts_0_500_deadbeef.wav", 0, 500, true},
		{"tts_10000_20000_a1b2c3d4.mp3", 0, 0, false},
		{"tts_20000_10000_a1b2c3d4.wav", 0, 0, false}, // end before start
		{"tts_10000_10000_a1b2c3d4.wav", 0, 0, false}, // empty span
		{"speech_10000_20000_a1b2c3d4.wav", 0, 0, false},
		{"tts_10000_20000.wav", 0, 0, false},
		{"notes.txt", 0, 0, false},
	}
	for _, tc := range cases {
		start, end, ok := ParseName(tc.name)
		if ok != tc.wantOK || start != tc.wantStart || end != tc.wantEnd {
			t.Fatalf("ParseName(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tc.name, start, end, ok, tc.wantStart, tc.wantEnd, tc.wantOK)
		}
	}
}

func TestScan_SortsAndSkips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"tts_30000_35000_aa11.wav",
		"tts_5000_12000_bb22.wav",
		"cover.png",
		"tts_broken.wav",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	var warnings []string
	logf := func(format string, args ...any) {
		warnings = append(warnings, format)
	}
	measure := func(_ context.Context, path string) (float64, error) {
		if strings.Contains(path, "bb22") {
			return 6.5, nil
		}
		return 4.0, nil
	}

	units, err := Scan(context.Background(), dir, measure, logf)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("got %d units, want 2: %+v", len(units), units)
	}
	if units[0].StartMS != 5000 || units[1].StartMS != 30000 {
		t.Fatalf("units not sorted by start: %+v", units)
	}
	if units[0].SynthesizedSeconds != 6.5 {
		t.Fatalf("unit duration = %v, want 6.5", units[0].SynthesizedSeconds)
	}
	if len(warnings) != 2 {
		t.Fatalf("got %d skip warnings, want 2: %v", len(warnings), warnings)
	}
}

func TestScan_ProbeFailureIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tts_0_1000_cc33.wav"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	probeErr := errors.New("boom")
	measure := func(_ context.Context, _ string) (float64, error) { return 0, probeErr }

	_, err := Scan(context.Background(), dir, measure, func(string, ...any) {})
	if !errors.Is(err, probeErr) {
		t.Fatalf("expected probe error to propagate, got %v", err)
	}
}

func TestScan_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"),
		func(context.Context, string) (float64, error) { return 1, nil },
		func(string, ...any) {})
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
