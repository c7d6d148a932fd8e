//go:build integration

package itest

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 60 * time.Second

type robustCase struct {
	name         string
	args         func(t *testing.T, repoRoot string) []string
	wantContains []string
}

func TestRobustness_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	sample := sampleVideo(t)

	cases := []robustCase{
		{
			name: "no args",
			args: staticArgs(),
			wantContains: []string{
				"accepts 1 arg(s), received 0",
			},
		},
		{
			name: "too many args",
			args: staticArgs(sample, "extra"),
			wantContains: []string{
				"accepts 1 arg(s), received 2",
			},
		},
		{
			name: "unknown flag",
			args: staticArgs(sample, "--wat"),
			wantContains: []string{
				"unknown flag: --wat",
			},
		},
		{
			name: "missing input",
			args: staticArgs(filepath.Join(t.TempDir(), "does-not-exist.mp4")),
			wantContains: []string{
				"config: video path",
			},
		},
		{
			name: "bad gpu mode",
			args: staticArgs(sample, "--gpu", "metal"),
			wantContains: []string{
				`config: gpu mode "metal"`,
			},
		},
		{
			name: "bad preset",
			args: staticArgs(sample, "--preset", "placebo"),
			wantContains: []string{
				`config: preset "placebo"`,
			},
		},
		{
			name: "empty tts dir",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				return []string{sample, "--tts-dir", t.TempDir(), "--gpu", "cpu"}
			},
			wantContains: []string{
				"no usable tts audio units",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, code := runCLI(t, repoRoot, tc.args(t, repoRoot))
			if code == 0 {
				t.Fatalf("expected non-zero exit code, got 0\noutput:\n%s", out)
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(out, want) {
					t.Fatalf("expected output to contain %q\noutput:\n%s", want, out)
				}
			}
		})
	}
}

func runCLI(t *testing.T, repoRoot string, args []string) (string, int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmdArgs := append([]string{"run", "./cmd/revoice"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	cmd.Dir = repoRoot
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "TERM=dumb")

	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("command timed out after %s: go %s", cliTimeout, strings.Join(cmdArgs, " "))
	}
	if err == nil {
		return string(out), 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode()
	}
	t.Fatalf("run command: %v\noutput:\n%s", err, string(out))
	return "", 0
}

// sampleVideo builds a tiny silent mp4 so validation-stage cases have a real
// file to point at.
func sampleVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.mp4")
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "color=c=black:s=320x240:d=2",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		path,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg sample fixture failed: %v\n%s", err, string(b))
	}
	return path
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()
	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return repoRoot
}

func staticArgs(args ...string) func(t *testing.T, _ string) []string {
	clone := append([]string(nil), args...)
	return func(t *testing.T, _ string) []string {
		t.Helper()
		return append([]string(nil), clone...)
	}
}
