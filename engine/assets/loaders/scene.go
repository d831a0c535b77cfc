package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

// SceneFile mirrors the TOML scene layout. Sections and fields left out of
// the file stay nil so the caller can fall back to its defaults.
type SceneFile struct {
	App     AppSection      `toml:"app"`
	Report  ReportSection   `toml:"report"`
	Model   *ModelSection   `toml:"model"`
	Camera  *CameraSection  `toml:"camera"`
	Scaling *ScalingSection `toml:"scaling"`
	Points  *PointsSection  `toml:"points"`
}

type AppSection struct {
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
}

type ReportSection struct {
	Format       string `toml:"format"`
	Precision    *int   `toml:"precision"`
	ShowSymbolic *bool  `toml:"show_symbolic"`
	ShowChecks   *bool  `toml:"show_checks"`
	Plot         string `toml:"plot"`
}

// ModelSection holds x, y, z triples; rotation is in radians.
type ModelSection struct {
	Rotation    []float64 `toml:"rotation"`
	Translation []float64 `toml:"translation"`
	Scale       []float64 `toml:"scale"`
}

type CameraSection struct {
	Pitch    *float64 `toml:"pitch"`
	Yaw      *float64 `toml:"yaw"`
	Distance *float64 `toml:"distance"`
}

type ScalingSection struct {
	Factors []float64 `toml:"factors"`
}

// PointsSection lists the coordinates row by row; w is always 1.
type PointsSection struct {
	X []float64 `toml:"x"`
	Y []float64 `toml:"y"`
	Z []float64 `toml:"z"`
}

type SceneLoader struct{}

func (sl *SceneLoader) Load(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	scene, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	core.LogDebug("scene loaded from %s", path)
	return &Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     ResourceTypeScene,
		Data:     scene,
	}, nil
}

func (sl *SceneLoader) Unload(resource *Resource) error {
	resource.Data = nil
	return nil
}

// ParseScene decodes a TOML scene, rejecting unknown keys.
func ParseScene(data []byte) (*SceneFile, error) {
	scene := &SceneFile{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(scene); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, err
	}
	if err := scene.validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func (s *SceneFile) validate() error {
	triple := func(name string, v []float64) error {
		if v != nil && len(v) != 3 {
			return fmt.Errorf("%w: %s needs 3 values, has %d", core.ErrShape, name, len(v))
		}
		return nil
	}
	if s.Model != nil {
		if err := errors.Join(
			triple("model.rotation", s.Model.Rotation),
			triple("model.translation", s.Model.Translation),
			triple("model.scale", s.Model.Scale),
		); err != nil {
			return err
		}
	}
	if s.Scaling != nil {
		if err := triple("scaling.factors", s.Scaling.Factors); err != nil {
			return err
		}
	}
	if p := s.Points; p != nil {
		if len(p.X) != len(p.Y) || len(p.X) != len(p.Z) {
			return fmt.Errorf("%w: points rows have %d, %d and %d values", core.ErrShape, len(p.X), len(p.Y), len(p.Z))
		}
	}
	return nil
}
