package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CodexForgeBR/gemini-note/internal/model"
)

// Preset is a named combination of model, prompt and output folder.
type Preset struct {
	Name       string `yaml:"name"`
	Model      string `yaml:"model"`
	Prompt     string `yaml:"prompt"`
	OutputPath string `yaml:"outputPath"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// ErrPresetNotFound is returned by FindPreset for unknown names.
var ErrPresetNotFound = errors.New("preset not found")

// LoadPresets reads the YAML presets file at path:
//
//	presets:
//	  - name: Translate
//	    model: gemini-2.5-flash
//	    prompt: Translate this paper into English.
//	    outputPath: Papers/Translated
//
// A missing file yields no presets and no error. Presets without a model get
// the default model.
func LoadPresets(path string) ([]Preset, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets file %s: %w", path, err)
	}
	for i := range f.Presets {
		f.Presets[i].Model = model.OrDefault(strings.TrimSpace(f.Presets[i].Model))
	}
	return f.Presets, nil
}

// FindPreset returns the preset called name. Names are matched
// case-insensitively; the first match wins.
func FindPreset(presets []Preset, name string) (Preset, error) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// ApplyPreset copies the preset's model, prompt and output folder into cfg.
// Fields whose config key appears in explicit (flags the user set) are kept.
func ApplyPreset(cfg *Config, p Preset, explicit map[string]string) {
	if _, ok := explicit["GEMINI_MODEL"]; !ok {
		cfg.Model = p.Model
	}
	if _, ok := explicit["GEMINI_PROMPT"]; !ok {
		cfg.Prompt = p.Prompt
	}
	if cfg.Folder == "" {
		cfg.Folder = p.OutputPath
	}
}
