// Package pipeline wires the ffmpeg adapter into the dubbing usecase and
// owns run-level concerns: config validation, scratch lifecycle and the
// run manifest.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olegsv/revoice/internal/config"
	"github.com/olegsv/revoice/internal/ports"
	"github.com/olegsv/revoice/internal/ports/adapters/ffmpeg"
	"github.com/olegsv/revoice/internal/usecase"
)

var (
	_ ports.Prober    = (*ffmpeg.Adapter)(nil)
	_ ports.MediaTool = (*ffmpeg.Adapter)(nil)
)

var validGPUModes = map[string]bool{
	"auto": true, "nvidia": true, "amd": true, "intel": true, "cpu": true,
}

var validPresets = map[string]bool{
	"fast": true, "medium": true, "slow": true,
}

type Config struct {
	VideoPath  string
	TTSDir     string
	OutputPath string
	ScratchDir string

	GPUMode     string
	Preset      string
	ProfilePath string

	FFmpegPath  string
	FFprobePath string

	Logf func(format string, args ...any)
}

func (c Config) Validate() error {
	if c.VideoPath == "" {
		return fmt.Errorf("video path is required")
	}
	info, err := os.Stat(c.VideoPath)
	if err != nil {
		return fmt.Errorf("video path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("video path %s is a directory", c.VideoPath)
	}
	if c.TTSDir == "" {
		return fmt.Errorf("tts dir is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if !validGPUModes[c.GPUMode] {
		return fmt.Errorf("gpu mode %q: want auto, nvidia, amd, intel or cpu", c.GPUMode)
	}
	if !validPresets[c.Preset] {
		return fmt.Errorf("preset %q: want fast, medium or slow", c.Preset)
	}
	return nil
}

func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	profile := config.DefaultProfile()
	if cfg.ProfilePath != "" {
		p, err := config.LoadProfile(cfg.ProfilePath)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		profile = p
	}

	accel := ffmpeg.DetectAccel(ctx, cfg.FFmpegPath, cfg.GPUMode)
	logf("acceleration: %s (%s)", accel.Type, accel.Details)

	tool := ffmpeg.New(ffmpeg.Options{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
		Profile:     profile,
		Preset:      cfg.Preset,
		Accel:       accel,
		Logf:        logf,
	})
	if err := tool.CheckAvailable(ctx); err != nil {
		return err
	}

	scratch := cfg.ScratchDir
	if scratch == "" {
		scratch = filepath.Join(filepath.Dir(cfg.OutputPath), "tmp")
	}
	if err := resetScratch(scratch); err != nil {
		return err
	}

	uc := usecase.New(usecase.Deps{Probe: tool, Media: tool})
	res, err := uc.Run(ctx, usecase.Input{
		VideoPath:  cfg.VideoPath,
		TTSDir:     cfg.TTSDir,
		OutputPath: cfg.OutputPath,
		ScratchDir: scratch,
		Logf:       logf,
	})
	if err != nil {
		logf("run failed, scratch retained at %s", scratch)
		return err
	}

	if err := writeManifest(filepath.Join(scratch, "manifest.json"), res.Manifest); err != nil {
		return err
	}
	logf("scratch retained at %s", scratch)
	return nil
}

// resetScratch guarantees a clean scratch dir: stale artifacts from a prior
// run must never leak into the concat list.
func resetScratch(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear scratch dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	return nil
}

func writeManifest(path string, m any) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
