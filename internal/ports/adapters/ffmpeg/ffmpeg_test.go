package ffmpeg

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtempoChain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		factor float64
		want   string
	}{
		{1.25, "atempo=1.250000"},
		{0.5, "atempo=0.500000"},
		{2.0, "atempo=2.000000"},
		{3.0, "atempo=2.0,atempo=1.500000"},
		{5.0, "atempo=2.0,atempo=2.0,atempo=1.250000"},
		{0.25, "atempo=0.5,atempo=0.500000"},
		{0.4, "atempo=0.5,atempo=0.800000"},
	}
	for _, tc := range cases {
		if got := atempoChain(tc.factor); got != tc.want {
			t.Fatalf("atempoChain(%v) = %q, want %q", tc.factor, got, tc.want)
		}
	}
}

func TestFmtSeconds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sec  float64
		want string
	}{
		{0, "0.000"},
		{10.0, "10.000"},
		{1.25, "1.250"},
		{59.999, "59.999"},
	}
	for _, tc := range cases {
		if got := fmtSeconds(tc.sec); got != tc.want {
			t.Fatalf("fmtSeconds(%v) = %q, want %q", tc.sec, got, tc.want)
		}
	}
}

func TestConcatList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "a.mp4")
	quoted := filepath.Join(dir, "it's.mp4")

	list, err := concatList([]string{plain, quoted})
	if err != nil {
		t.Fatalf("concatList: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(list), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), list)
	}
	if lines[0] != "file '"+plain+"'" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], `it'\''s.mp4`) {
		t.Fatalf("single quote not escaped: %q", lines[1])
	}
}

func TestResolveAccel(t *testing.T) {
	t.Parallel()

	nvencBuild := "V..... h264_nvenc  NVIDIA NVENC H.264 encoder\nV..... libx264"
	cpuBuild := "V..... libx264  H.264\nV..... libx265"

	cases := []struct {
		name     string
		encoders string
		mode     string
		wantType string
	}{
		{"auto picks nvidia", nvencBuild, "auto", "nvidia"},
		{"auto without hw is cpu", cpuBuild, "auto", "cpu"},
		{"explicit nvidia present", nvencBuild, "nvidia", "nvidia"},
		{"explicit amd absent degrades", nvencBuild, "amd", "cpu"},
		{"empty mode treated as auto", nvencBuild, "", "nvidia"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := resolveAccel(tc.encoders, tc.mode)
			if got.Type != tc.wantType {
				t.Fatalf("resolveAccel(mode=%q).Type = %q, want %q", tc.mode, got.Type, tc.wantType)
			}
		})
	}
}

func TestAccelDecodeArgs(t *testing.T) {
	t.Parallel()

	if args := (Accel{Type: "nvidia"}).DecodeArgs(); len(args) != 4 {
		t.Fatalf("nvidia decode args = %v", args)
	}
	if args := (Accel{Type: "cpu"}).DecodeArgs(); args != nil {
		t.Fatalf("cpu decode args = %v, want nil", args)
	}
	if args := (Accel{Type: "amd"}).DecodeArgs(); args != nil {
		t.Fatalf("amd decode args = %v, want nil", args)
	}
}

func TestAttempt(t *testing.T) {
	t.Parallel()

	e1 := errors.New("first")
	e2 := errors.New("second")

	if err := attempt(func() error { return e1 }, func() error { return nil }); err != nil {
		t.Fatalf("expected second strategy to win, got %v", err)
	}
	if err := attempt(func() error { return e1 }, func() error { return e2 }); !errors.Is(err, e2) {
		t.Fatalf("expected last error, got %v", err)
	}
	calls := 0
	if err := attempt(func() error { calls++; return nil }, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Fatalf("expected first success to short-circuit, calls=%d err=%v", calls, err)
	}
}
