package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadTuning reads a tuning file and fills every unset field with the stock value.
func LoadTuning(path string) (*TuningConfig, error) {
	var tc TuningConfig
	if err := loadYAML(path, &tc); err != nil {
		return nil, fmt.Errorf("load tuning %s: %w", path, err)
	}
	tc.fillDefaults()
	return &tc, nil
}

// LoadAll reads tuning.yaml and weapons.yaml from dir. Both files are optional.
func LoadAll(dir string) (*TuningConfig, *WeaponsConfig, error) {
	tc := Default()
	tuningPath := filepath.Join(dir, "tuning.yaml")
	if _, err := os.Stat(tuningPath); err == nil {
		loaded, err := LoadTuning(tuningPath)
		if err != nil {
			return nil, nil, err
		}
		tc = loaded
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("stat %s: %w", tuningPath, err)
	}

	var wc WeaponsConfig
	weaponsPath := filepath.Join(dir, "weapons.yaml")
	if err := loadYAML(weaponsPath, &wc); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("load weapons %s: %w", weaponsPath, err)
	}
	return tc, &wc, nil
}
