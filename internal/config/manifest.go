package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

// ErrInvalidManifest is returned when a dataset manifest cannot be used.
var ErrInvalidManifest = errors.New("invalid dataset manifest")

// Manifest overrides the file each dataset is read from, relative to DataDir.
//
//	datasets:
//	  water: water_data.json
//	  nutrient: nutrients.csv
type Manifest struct {
	Datasets map[string]string `yaml:"datasets"`
}

// LoadManifest reads and validates a YAML manifest. An empty path yields an
// empty manifest.
func LoadManifest(path string) (Manifest, error) {
	if path == "" {
		return Manifest{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest YAML. Unknown dataset names and blank file
// names are rejected.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	for name, file := range m.Datasets {
		if _, err := domain.ParseDatasetType(name); err != nil {
			return Manifest{}, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
		if file == "" {
			return Manifest{}, fmt.Errorf("%w: dataset %q has no file", ErrInvalidManifest, name)
		}
	}
	return m, nil
}

// Files resolves the file name of every dataset, falling back to the default
// export name for datasets the manifest does not mention.
func (m Manifest) Files() map[domain.DatasetType]string {
	files := make(map[domain.DatasetType]string, len(domain.DatasetTypes))
	for _, dt := range domain.DatasetTypes {
		files[dt] = dt.Info().File
	}
	for name, file := range m.Datasets {
		if dt, err := domain.ParseDatasetType(name); err == nil {
			files[dt] = file
		}
	}
	return files
}
