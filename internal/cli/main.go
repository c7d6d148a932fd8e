package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "revoice <video>",
		Short:        "Replace a video's spoken audio with synthesized speech, retiming each segment to fit",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("tts-dir", "", "Directory of synthesized tts_<start>_<end>_<hash>.wav files (default: tts_output next to the video)")
	root.Flags().StringP("output", "o", "", "Output video path (default: <video>_translated.mp4)")
	root.Flags().String("gpu", "auto", "Hardware decode: auto, nvidia, amd, intel or cpu")
	root.Flags().String("preset", "fast", "Retime encode preset: fast, medium or slow")
	root.Flags().String("profile", "", "YAML encoding profile path")
	root.Flags().String("scratch", "", "Scratch directory (default: tmp next to the output)")

	// Hidden tool overrides (internal)
	root.Flags().String("ffmpeg", "ffmpeg", "ffmpeg binary path")
	root.Flags().String("ffprobe", "ffprobe", "ffprobe binary path")
	_ = root.Flags().MarkHidden("ffmpeg")
	_ = root.Flags().MarkHidden("ffprobe")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
