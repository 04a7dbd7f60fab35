// Package catalog loads the declarative image catalog that drives the mirror.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/pinsync/pinsync/pkg/errors"
	"github.com/pinsync/pinsync/pkg/global"
	"github.com/pinsync/pinsync/pkg/util/files"
)

// Strategy is a granularity at which an image's version is tracked.
type Strategy string

const (
	StrategyMajor           Strategy = "major"
	StrategyMajorMinor      Strategy = "major-minor"
	StrategyMajorMinorPatch Strategy = "major-minor-patch"
)

// Strategies returns the closed set of strategies in their fixed order.
func Strategies() []Strategy {
	return []Strategy{StrategyMajor, StrategyMajorMinor, StrategyMajorMinorPatch}
}

// ImageSpec declares one image: where it runs and which initial tags seed
// each version strategy. Owned by the catalog file; read-only to the engine.
type ImageSpec struct {
	Image                  string   `json:"image"`
	Platforms              []string `json:"platforms"`
	InitialMajor           []string `json:"initialMajor,omitempty"`
	InitialMajorMinor      []string `json:"initialMajorMinor,omitempty"`
	InitialMajorMinorPatch []string `json:"initialMajorMinorPatch,omitempty"`
}

// InitialTags returns the declared initial tags for one strategy. The first
// element is authoritative for version-file generation.
func (s *ImageSpec) InitialTags(strategy Strategy) []string {
	switch strategy {
	case StrategyMajor:
		return s.InitialMajor
	case StrategyMajorMinor:
		return s.InitialMajorMinor
	case StrategyMajorMinorPatch:
		return s.InitialMajorMinorPatch
	}
	return nil
}

// AllInitialTags returns the declared tags across every strategy, in strategy
// order. Duplicates are possible and harmless; path computation dedupes.
func (s *ImageSpec) AllInitialTags() []string {
	var tags []string
	for _, strategy := range Strategies() {
		tags = append(tags, s.InitialTags(strategy)...)
	}
	return tags
}

// Catalog is the ordered sequence of image specs from the catalog file.
type Catalog []ImageSpec

// Load reads the catalog from projectDir: images.json, or images.yaml when no
// JSON catalog exists. It returns the catalog and the path it was loaded
// from. A missing catalog is a CATALOG_NOT_FOUND coded error so commands can
// treat it as fatal configuration.
func Load(projectDir string) (Catalog, string, error) {
	path := filepath.Join(projectDir, global.CatalogFilename)
	exists, err := files.Exists(path)
	if err != nil {
		return nil, "", err
	}
	if !exists {
		yamlPath := filepath.Join(projectDir, global.CatalogYAMLFilename)
		yamlExists, err := files.Exists(yamlPath)
		if err != nil {
			return nil, "", err
		}
		if !yamlExists {
			return nil, "", errors.CatalogNotFound(fmt.Sprintf("%s not found in %s", global.CatalogFilename, projectDir))
		}
		path = yamlPath
	}

	catalog, err := loadFromFile(path)
	if err != nil {
		return nil, "", err
	}
	return catalog, path, nil
}

func loadFromFile(path string) (Catalog, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	if filepath.Ext(path) == ".yaml" || filepath.Ext(path) == ".yml" {
		contents, err = yaml.YAMLToJSON(contents)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}
	}
	var catalog Catalog
	if err := json.Unmarshal(contents, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return catalog, nil
}
