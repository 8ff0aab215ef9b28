package source

import (
	"encoding/json"
	"fmt"
	"os"

	"momentchain/internal/domain/model"
)

type Config struct {
	// Path of the exported moments JSON file.
	Path string `yaml:"path"`

	// AssetDir is the directory holding locally exported images, referenced
	// by local-asset handles.
	AssetDir string `yaml:"asset_dir"`

	// Exclude lists additional moment ids to filter out on top of the
	// built-in blacklist.
	Exclude []string `yaml:"exclude"`
}

// Source reads a static moments export from disk once per call.
type Source struct {
	cfg Config
}

func New(cfg Config) *Source {
	return &Source{cfg: cfg}
}

// Load parses the export file.
func (s *Source) Load() (*model.Export, error) {
	raw, err := os.ReadFile(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	export := &model.Export{}
	if err := json.Unmarshal(raw, export); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	return export, nil
}

// Exclusions returns the merged exclusion set.
func (s *Source) Exclusions() map[string]struct{} {
	set := make(map[string]struct{}, len(Blacklist)+len(s.cfg.Exclude))
	for _, id := range Blacklist {
		set[id] = struct{}{}
	}
	for _, id := range s.cfg.Exclude {
		set[id] = struct{}{}
	}

	return set
}

// AssetDir is the local image directory for local-asset handles.
func (s *Source) AssetDir() string {
	return s.cfg.AssetDir
}
