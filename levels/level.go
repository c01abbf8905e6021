package levels

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/rollball/common"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidScale     = errors.New("pixels_per_meter must be positive")
	ErrInvalidGeometry  = errors.New("width, height and radius must be positive")
	ErrUnknownObstacle  = errors.New("unknown obstacle kind")
	ErrNegativeCount    = errors.New("inventory count must not be negative")
	ErrDuplicateKind    = errors.New("inventory kind listed twice")
	ErrInvalidWinWindow = errors.New("win dwell and poll interval must be positive")
)

// Obstacle kind names as they appear in level and layout files.
const (
	KindRamp   = "ramp"
	KindSeesaw = "seesaw"
)

type Level struct {
	Name      string          `yaml:"name"`
	Physics   PhysicsSpec     `yaml:"physics"`
	Floor     BoxSpec         `yaml:"floor"`
	Ball      BallSpec        `yaml:"ball"`
	Bucket    BucketSpec      `yaml:"bucket"`
	Obstacles ObstaclesSpec   `yaml:"obstacles"`
	Inventory []InventorySpec `yaml:"inventory"`
	Win       WinSpec         `yaml:"win"`
	Controls  ControlsSpec    `yaml:"controls"`
	Rating    string          `yaml:"rating"`
}

type PhysicsSpec struct {
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	// Gravity is in m/s², positive pulls toward the bottom of the screen.
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
}

type MaterialSpec struct {
	Density       float64 `yaml:"density"`
	Friction      float64 `yaml:"friction"`
	Restitution   float64 `yaml:"restitution"`
	LinearDamping float64 `yaml:"linear_damping"`
}

// BoxSpec is a box centered at (X, Y), all in pixels.
type BoxSpec struct {
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Width    float64      `yaml:"width"`
	Height   float64      `yaml:"height"`
	Material MaterialSpec `yaml:"material"`
}

type BallSpec struct {
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Radius   float64      `yaml:"radius"`
	Material MaterialSpec `yaml:"material"`
}

// BucketSpec places the bucket base at (X, Y). Walls rise from the base
// edges and the goal sensor sits just above the base.
type BucketSpec struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	WallHeight    float64 `yaml:"wall_height"`
	WallThickness float64 `yaml:"wall_thickness"`
	InnerWidth    float64 `yaml:"inner_width"`
	SensorInset   float64 `yaml:"sensor_inset"`
	SensorHeight  float64 `yaml:"sensor_height"`
	SensorOffset  float64 `yaml:"sensor_offset"`
}

type ObstacleSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Angle is the ghost's starting angle in degrees.
	Angle    float64      `yaml:"angle"`
	Material MaterialSpec `yaml:"material"`
}

type ObstaclesSpec struct {
	Ramp   ObstacleSpec `yaml:"ramp"`
	Seesaw ObstacleSpec `yaml:"seesaw"`
}

type InventorySpec struct {
	Kind  string `yaml:"kind"`
	Label string `yaml:"label"`
	Count int    `yaml:"count"`
}

type WinSpec struct {
	SpeedThreshold float64 `yaml:"speed_threshold"`
	DwellMS        int     `yaml:"dwell_ms"`
	PollMS         int     `yaml:"poll_ms"`
}

type ControlsSpec struct {
	// RotateStep is in degrees per key press.
	RotateStep float64 `yaml:"rotate_step"`
	// DebounceMS of zero disables inventory debouncing.
	DebounceMS int `yaml:"debounce_ms"`
}

func (w WinSpec) Dwell() time.Duration {
	return time.Duration(w.DwellMS) * time.Millisecond
}

func (w WinSpec) PollInterval() time.Duration {
	return time.Duration(w.PollMS) * time.Millisecond
}

func (c ControlsSpec) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// LoadLevel reads, decodes and validates a level by name.
func LoadLevel(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := Load(clean)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", clean, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", clean, err)
	}
	return lvl, nil
}

// Parse decodes a level document and validates it.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	lvl.applyDefaults()
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Default returns the embedded default level. It panics if the embedded copy
// is broken, which can only happen at build time.
func Default() *Level {
	data, err := LevelsFS.ReadFile("default.yaml")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded default.yaml: %v", err))
	}
	lvl, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded default.yaml: %v", err))
	}
	return lvl
}

func (l *Level) applyDefaults() {
	if l.Physics.PixelsPerMeter == 0 {
		l.Physics.PixelsPerMeter = common.PixelsPerMeter
	}
	if l.Physics.Gravity == 0 {
		l.Physics.Gravity = 10
	}
	if l.Physics.Iterations == 0 {
		l.Physics.Iterations = 20
	}
	if l.Win.SpeedThreshold == 0 {
		l.Win.SpeedThreshold = 0.3
	}
	if l.Win.DwellMS == 0 {
		l.Win.DwellMS = 1000
	}
	if l.Win.PollMS == 0 {
		l.Win.PollMS = 120
	}
	if l.Controls.RotateStep == 0 {
		l.Controls.RotateStep = 5
	}
	if l.Bucket.SensorHeight == 0 {
		l.Bucket.SensorHeight = 20
	}
	for i := range l.Inventory {
		if l.Inventory[i].Label == "" {
			l.Inventory[i].Label = l.Inventory[i].Kind
		}
	}
}

func (l *Level) Validate() error {
	if l.Physics.PixelsPerMeter <= 0 {
		return ErrInvalidScale
	}
	if l.Floor.Width <= 0 || l.Floor.Height <= 0 || l.Ball.Radius <= 0 {
		return ErrInvalidGeometry
	}
	if l.Bucket.InnerWidth <= 0 || l.Bucket.WallHeight <= 0 || l.Bucket.WallThickness <= 0 {
		return fmt.Errorf("bucket: %w", ErrInvalidGeometry)
	}
	for name, o := range map[string]ObstacleSpec{KindRamp: l.Obstacles.Ramp, KindSeesaw: l.Obstacles.Seesaw} {
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("obstacle %s: %w", name, ErrInvalidGeometry)
		}
	}
	seen := make(map[string]bool, len(l.Inventory))
	for _, item := range l.Inventory {
		if item.Kind != KindRamp && item.Kind != KindSeesaw {
			return fmt.Errorf("inventory %q: %w", item.Kind, ErrUnknownObstacle)
		}
		if seen[item.Kind] {
			return fmt.Errorf("inventory %q: %w", item.Kind, ErrDuplicateKind)
		}
		seen[item.Kind] = true
		if item.Count < 0 {
			return fmt.Errorf("inventory %q: %w", item.Kind, ErrNegativeCount)
		}
	}
	if l.Win.DwellMS < 0 || l.Win.PollMS < 0 {
		return ErrInvalidWinWindow
	}
	if l.Controls.DebounceMS < 0 {
		return fmt.Errorf("controls: debounce_ms must not be negative")
	}
	return nil
}

// Obstacle returns the geometry for a kind name.
func (l *Level) Obstacle(kind string) (ObstacleSpec, bool) {
	switch kind {
	case KindRamp:
		return l.Obstacles.Ramp, true
	case KindSeesaw:
		return l.Obstacles.Seesaw, true
	}
	return ObstacleSpec{}, false
}
