package levels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout is a player's arrangement of obstacles, exported from the game and
// replayed by the headless simulator.
type Layout struct {
	Level     string          `yaml:"level,omitempty"`
	Obstacles []PlacementSpec `yaml:"obstacles"`
}

// PlacementSpec positions one obstacle, X and Y in pixels and Angle in degrees.
type PlacementSpec struct {
	Kind  string  `yaml:"kind"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("levels: unmarshal layout: %w", err)
	}
	for i, p := range layout.Obstacles {
		if p.Kind != KindRamp && p.Kind != KindSeesaw {
			return nil, fmt.Errorf("levels: layout obstacle %d %q: %w", i, p.Kind, ErrUnknownObstacle)
		}
	}
	return &layout, nil
}

func LoadLayoutFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: load layout %s: %w", path, err)
	}
	return ParseLayout(data)
}

func (l *Layout) Marshal() ([]byte, error) {
	if l == nil {
		return nil, nil
	}
	return yaml.Marshal(l)
}
