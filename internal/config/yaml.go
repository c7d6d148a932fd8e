package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfile reads a YAML profile file over the defaults, so a file only
// needs the fields it wants to change.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile file: %w", err)
	}

	prof := DefaultProfile()
	if err := yaml.Unmarshal(data, &prof); err != nil {
		return Profile{}, fmt.Errorf("parse profile file: %w", err)
	}
	if err := prof.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return prof, nil
}
