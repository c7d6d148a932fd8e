package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Accel is the hardware-decode strategy for a run, resolved once up front
// rather than re-probed per segment. The software path is always the
// terminal fallback.
type Accel struct {
	Type    string // nvidia, amd, intel or cpu
	Details string
}

func (ac Accel) Available() bool { return ac.Type != "" && ac.Type != "cpu" }

// DecodeArgs returns the hwaccel input flags for the accelerated decode
// attempt. AMD has no decode-side flags here; it still benefits from the
// detection for diagnostics.
func (ac Accel) DecodeArgs() []string {
	switch ac.Type {
	case "nvidia":
		return []string{"-hwaccel", "cuda", "-hwaccel_output_format", "cuda"}
	case "intel":
		return []string{"-hwaccel", "qsv"}
	default:
		return nil
	}
}

// DetectAccel inspects the ffmpeg build's encoder list once and resolves the
// requested mode. Any probe trouble degrades to cpu; detection never fails a
// run.
func DetectAccel(ctx context.Context, ffmpegPath, mode string) Accel {
	if mode == "cpu" {
		return cpuAccel("hardware acceleration disabled")
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	out, err := exec.CommandContext(ctx, ffmpegPath, "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return cpuAccel("encoder probe failed")
	}
	return resolveAccel(string(out), mode)
}

func resolveAccel(encoders, mode string) Accel {
	available := map[string]bool{
		"nvidia": strings.Contains(encoders, "h264_nvenc"),
		"amd":    strings.Contains(encoders, "h264_amf"),
		"intel":  strings.Contains(encoders, "h264_qsv"),
	}

	if mode == "auto" || mode == "" {
		for _, t := range []string{"nvidia", "amd", "intel"} {
			if available[t] {
				return Accel{Type: t, Details: t + " hardware acceleration detected"}
			}
		}
		return cpuAccel("no hardware acceleration detected")
	}

	if available[mode] {
		return Accel{Type: mode, Details: mode + " hardware acceleration requested and present"}
	}
	return cpuAccel(fmt.Sprintf("requested %s acceleration not present in this ffmpeg build", mode))
}

func cpuAccel(details string) Accel {
	return Accel{Type: "cpu", Details: details}
}
