// Package config holds the normalization target profile. Every collected
// segment is re-encoded to this one profile before the final join, so the
// concat step can stream-copy.
package config

import "fmt"

// Profile is the uniform codec/sample-rate/frame-rate target.
type Profile struct {
	Video VideoProfile `yaml:"video"`
	Audio AudioProfile `yaml:"audio"`
}

// VideoProfile holds the video half of the target profile.
type VideoProfile struct {
	Codec       string `yaml:"codec"`        // e.g. "libx264"
	CRF         int    `yaml:"crf"`          // 0-51, lower = better quality
	Preset      string `yaml:"preset"`       // x264 preset used for normalization passes
	FrameRate   int    `yaml:"frame_rate"`   // output frames per second
	PixelFormat string `yaml:"pixel_format"` // e.g. "yuv420p"
}

// AudioProfile holds the audio half. The sample rate defaults to the rate
// the TTS stage synthesizes at, so speech segments avoid a resample.
type AudioProfile struct {
	Codec      string `yaml:"codec"`       // e.g. "aac"
	SampleRate int    `yaml:"sample_rate"` // e.g. 22050
	Channels   int    `yaml:"channels"`    // 1 = mono
	Bitrate    string `yaml:"bitrate"`     // e.g. "128k"
}

// DefaultProfile returns the built-in target profile.
func DefaultProfile() Profile {
	return Profile{
		Video: VideoProfile{
			Codec:       "libx264",
			CRF:         30,
			Preset:      "ultrafast",
			FrameRate:   30,
			PixelFormat: "yuv420p",
		},
		Audio: AudioProfile{
			Codec:      "aac",
			SampleRate: 22050,
			Channels:   1,
			Bitrate:    "128k",
		},
	}
}

// Validate checks the profile for values ffmpeg would reject.
func (p Profile) Validate() error {
	if p.Video.Codec == "" {
		return fmt.Errorf("video codec is required")
	}
	if p.Video.CRF < 0 || p.Video.CRF > 51 {
		return fmt.Errorf("video crf %d out of range 0-51", p.Video.CRF)
	}
	if p.Video.FrameRate <= 0 {
		return fmt.Errorf("video frame rate must be > 0")
	}
	if p.Video.PixelFormat == "" {
		return fmt.Errorf("video pixel format is required")
	}
	if p.Audio.Codec == "" {
		return fmt.Errorf("audio codec is required")
	}
	if p.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be > 0")
	}
	if p.Audio.Channels <= 0 {
		return fmt.Errorf("audio channels must be > 0")
	}
	if p.Audio.Bitrate == "" {
		return fmt.Errorf("audio bitrate is required")
	}
	return nil
}
