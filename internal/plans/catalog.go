package plans

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	gymCatalogFile  = "gym_plans.yaml"
	dietCatalogFile = "diet_types.yaml"
)

//go:embed catalog/*.yaml
var embeddedCatalogs embed.FS

// Catalog holds the reverse mappings from class label to plan text. Index i is
// the text of label i.
type Catalog struct {
	GymPlans  []string
	DietTypes []string
}

type catalogFile struct {
	Labels []string `yaml:"labels"`
}

// LoadCatalog reads the catalogs from dir, or from the embedded defaults when
// dir is empty. A catalog missing from dir falls back to its embedded copy.
func LoadCatalog(dir string) (*Catalog, error) {
	embedded, err := fs.Sub(embeddedCatalogs, "catalog")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalogs: %w", err)
	}

	var override fs.FS
	if strings.TrimSpace(dir) != "" {
		override = os.DirFS(filepath.Clean(dir))
	}

	gymPlans, err := readCatalogFile(override, embedded, gymCatalogFile)
	if err != nil {
		return nil, err
	}
	dietTypes, err := readCatalogFile(override, embedded, dietCatalogFile)
	if err != nil {
		return nil, err
	}

	return &Catalog{GymPlans: gymPlans, DietTypes: dietTypes}, nil
}

// DefaultCatalog returns the embedded catalogs.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog("")
}

func readCatalogFile(override fs.FS, fallback fs.FS, name string) ([]string, error) {
	var raw []byte
	var err error
	if override != nil {
		raw, err = fs.ReadFile(override, name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
	}
	if raw == nil {
		raw, err = fs.ReadFile(fallback, name)
		if err != nil {
			return nil, fmt.Errorf("read embedded catalog %s: %w", name, err)
		}
	}

	var parsed catalogFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", name, err)
	}
	if len(parsed.Labels) == 0 {
		return nil, fmt.Errorf("catalog %s has no labels", name)
	}
	for index, label := range parsed.Labels {
		if strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("catalog %s: label %d is empty", name, index)
		}
	}
	return parsed.Labels, nil
}
