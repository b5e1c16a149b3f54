package calendar

import (
	"hash/fnv"
	"strings"
)

// Palette associa categorias a cores. Categorias desconhecidas recebem uma
// cor do Fallback escolhida pelo hash do nome, então a cor é sempre a mesma.
type Palette struct {
	Categories map[string]string
	Fallback   []string
}

const defaultColor = "#9E9E9E"

// DefaultPalette traz as categorias mais comuns de um casamento
func DefaultPalette() Palette {
	return Palette{
		Categories: map[string]string{
			"venue":         "#8E7CC3",
			"catering":      "#E69138",
			"attire":        "#C27BA0",
			"flowers":       "#6AA84F",
			"photography":   "#3D85C6",
			"music":         "#A64D79",
			"guests":        "#45818E",
			"budget":        "#CC0000",
			"decor":         "#B45F06",
			"stationery":    "#674EA7",
			"beauty":        "#D5A6BD",
			"travel":        "#0B5394",
			"uncategorized": defaultColor,
		},
		Fallback: []string{
			"#F6B26B", "#93C47D", "#76A5AF", "#6FA8DC",
			"#8E7CC3", "#C27BA0", "#E06666", "#FFD966",
		},
	}
}

// ColorFor devolve a cor da categoria, ignorando maiúsculas e espaços.
func (p Palette) ColorFor(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		key = "uncategorized"
	}
	if c, ok := p.Categories[key]; ok {
		return c
	}
	if len(p.Fallback) == 0 {
		return defaultColor
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return p.Fallback[h.Sum32()%uint32(len(p.Fallback))]
}

// Merge sobrescreve as cores de p com as de other; chaves são normalizadas.
func (p Palette) Merge(other Palette) Palette {
	out := Palette{Categories: make(map[string]string, len(p.Categories)+len(other.Categories))}
	for k, v := range p.Categories {
		out.Categories[strings.ToLower(k)] = v
	}
	for k, v := range other.Categories {
		if v != "" {
			out.Categories[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	out.Fallback = p.Fallback
	if len(other.Fallback) > 0 {
		out.Fallback = other.Fallback
	}
	return out
}
