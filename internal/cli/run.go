package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olegsv/revoice/internal/pipeline"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command, video string) error {
	ttsDir, _ := cmd.Flags().GetString("tts-dir")
	output, _ := cmd.Flags().GetString("output")
	gpu, _ := cmd.Flags().GetString("gpu")
	preset, _ := cmd.Flags().GetString("preset")
	profile, _ := cmd.Flags().GetString("profile")
	scratch, _ := cmd.Flags().GetString("scratch")
	ffmpegPath, _ := cmd.Flags().GetString("ffmpeg")
	ffprobePath, _ := cmd.Flags().GetString("ffprobe")

	absVideo, err := filepath.Abs(video)
	if err != nil {
		return err
	}
	if ttsDir == "" {
		ttsDir = filepath.Join(filepath.Dir(absVideo), "tts_output")
	}
	if output == "" {
		base := strings.TrimSuffix(absVideo, filepath.Ext(absVideo))
		output = base + "_translated.mp4"
	}

	cfg := pipeline.Config{
		VideoPath:  absVideo,
		TTSDir:     ttsDir,
		OutputPath: output,
		ScratchDir: scratch,

		GPUMode:     gpu,
		Preset:      preset,
		ProfilePath: profile,

		FFmpegPath:  ffmpegPath,
		FFprobePath: ffprobePath,

		Logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// Runs are unbounded: a long video with many segments is legitimate.
	return pipeline.Run(context.Background(), cfg)
}
