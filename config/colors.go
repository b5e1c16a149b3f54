package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wedding-planner/calendar"
)

// paletteFile é o formato do arquivo apontado por CATEGORY_COLORS_FILE:
//
//	categories:
//	  Venue: "#8E7CC3"
//	fallback: ["#F6B26B", "#93C47D"]
type paletteFile struct {
	Categories map[string]string `yaml:"categories"`
	Fallback   []string          `yaml:"fallback"`
}

// LoadPalette devolve a paleta padrão mesclada com o arquivo YAML, se houver.
func LoadPalette(path string) (calendar.Palette, error) {
	palette := calendar.DefaultPalette()
	if path == "" {
		return palette, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return palette, fmt.Errorf("erro ao ler paleta de cores %s: %w", path, err)
	}

	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return palette, fmt.Errorf("erro ao interpretar paleta de cores %s: %w", path, err)
	}

	return palette.Merge(calendar.Palette{Categories: file.Categories, Fallback: file.Fallback}), nil
}
