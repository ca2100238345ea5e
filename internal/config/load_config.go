package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preset is the optional YAML file passed with --config. Every field is
// optional; flags set on the command line take precedence.
//
//	software: paper
//	version: "1.20.1"
//	plugins: [./WorldEdit.jar]
//	working_directory: ./server
//	args: ["--online-mode=false"]
//	mem: 4096
//	gui: false
//	port: 25566
//	endpoints:
//	  java: /usr/lib/jvm/java-21/bin/java
type Preset struct {
	Software         string    `yaml:"software"`
	Version          string    `yaml:"version"`
	Plugins          []string  `yaml:"plugins"`
	WorkingDirectory string    `yaml:"working_directory"`
	Args             []string  `yaml:"args"`
	Mem              int       `yaml:"mem"`
	GUI              *bool     `yaml:"gui"`
	Port             int       `yaml:"port"`
	Debug            *bool     `yaml:"debug"`
	Endpoints        Endpoints `yaml:"endpoints"`
}

// LoadPreset reads and parses a preset file. Relative plugin and working
// directory paths are resolved against the preset's own directory.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset %s: %w", path, err)
	}

	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset %s: %w", path, err)
	}

	if p.Mem < 0 {
		return nil, fmt.Errorf("preset %s: mem must be positive, got %d", path, p.Mem)
	}
	if p.Port < 0 || p.Port > 65535 {
		return nil, fmt.Errorf("preset %s: port %d out of range", path, p.Port)
	}
	base := filepath.Dir(path)
	for i, plugin := range p.Plugins {
		p.Plugins[i] = relativeTo(base, plugin)
	}
	if p.WorkingDirectory != "" {
		p.WorkingDirectory = relativeTo(base, p.WorkingDirectory)
	}
	return &p, nil
}

func relativeTo(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
