// Package ttsdir discovers synthesized speech units from the directory the
// upstream TTS stage writes into. File names encode the unit's position on
// the original timeline: tts_{start_ms}_{end_ms}_{content_hash}.wav.
package ttsdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/olegsv/revoice/internal/types"
)

var namePattern = regexp.MustCompile(`^tts_(\d+)_(\d+)_([0-9a-fA-F]+)\.wav$`)

// ParseName extracts the millisecond span from a TTS file name. ok is false
// when the name does not follow the producer's convention.
func ParseName(name string) (startMS, endMS int64, ok bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	startMS, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	endMS, err = strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	if endMS <= startMS {
		return 0, 0, false
	}
	return startMS, endMS, true
}

// DurationFunc measures the duration of an audio file in seconds.
type DurationFunc func(ctx context.Context, path string) (float64, error)

// Scan lists dir, parses every conforming file name and measures each unit's
// synthesized duration. Files that do not match the naming convention are
// skipped with a warning; a probe failure is fatal. Units come back sorted by
// start time.
func Scan(ctx context.Context, dir string, measure DurationFunc, logf func(string, ...any)) ([]types.TimedAudioUnit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read tts dir %s: %w", dir, err)
	}

	var units []types.TimedAudioUnit
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		startMS, endMS, ok := ParseName(e.Name())
		if !ok {
			logf("tts: skipping %s: name does not match tts_{start}_{end}_{hash}.wav", e.Name())
			continue
		}
		path := filepath.Join(dir, e.Name())
		synth, err := measure(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("measure %s: %w", e.Name(), err)
		}
		if synth <= 0 {
			logf("tts: skipping %s: measured duration %.3fs", e.Name(), synth)
			continue
		}
		units = append(units, types.TimedAudioUnit{
			StartMS:            startMS,
			EndMS:              endMS,
			AudioPath:          path,
			SynthesizedSeconds: synth,
		})
	}

	sort.Slice(units, func(i, j int) bool { return units[i].StartMS < units[j].StartMS })
	return units, nil
}
