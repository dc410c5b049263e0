package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir = "figures"
	DefaultLogLevel  = "info"
	DefaultHopping   = 1.0
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Example   string `yaml:"example,omitempty"`
	OutputDir string `yaml:"output_dir"`
	LogLevel  string `yaml:"log_level"`

	DOS         DOSConfig         `yaml:"dos"`
	Density     DensityConfig     `yaml:"density"`
	Annulus     AnnulusConfig     `yaml:"annulus"`
	Hamiltonian HamiltonianConfig `yaml:"hamiltonian"`
	Potentials  PotentialsConfig  `yaml:"potentials"`
	Graphene    GrapheneConfig    `yaml:"graphene"`
}

type EnergyWindow struct {
	Lower      float64 `yaml:"lower"`
	Upper      float64 `yaml:"upper"`
	Resolution int     `yaml:"resolution"`
}

type SmoothingConfig struct {
	Sigma  float64 `yaml:"sigma"`
	Window int     `yaml:"window"`
}

// DOSConfig sets the momentum meshes of the 1-D, 2-D and 3-D cubic lattices.
type DOSConfig struct {
	Hopping   float64         `yaml:"hopping"`
	Size1D    int             `yaml:"size_1d"`
	Size2D    int             `yaml:"size_2d"`
	Size3D    int             `yaml:"size_3d"`
	Energy    EnergyWindow    `yaml:"energy"`
	Smoothing SmoothingConfig `yaml:"smoothing"`
}

type DensityConfig struct {
	SizeX   int     `yaml:"size_x"`
	SizeY   int     `yaml:"size_y"`
	Hopping float64 `yaml:"hopping"`
	State   int     `yaml:"state"`
}

// AnnulusConfig keeps the sites strictly between the two radii, measured in
// lattice units from the center site.
type AnnulusConfig struct {
	Size        int     `yaml:"size"`
	Hopping     float64 `yaml:"hopping"`
	State       int     `yaml:"state"`
	InnerRadius float64 `yaml:"inner_radius"`
	OuterRadius float64 `yaml:"outer_radius"`
}

type HamiltonianConfig struct {
	SizeX   int     `yaml:"size_x"`
	SizeY   int     `yaml:"size_y"`
	Hopping float64 `yaml:"hopping"`
}

type PotentialsConfig struct {
	Size      int     `yaml:"size"`
	Hopping   float64 `yaml:"hopping"`
	NumStates int     `yaml:"num_states"`
}

// GrapheneConfig uses eV for energies and Å for lengths.
type GrapheneConfig struct {
	Hopping          float64         `yaml:"hopping"`
	LatticeConstant  float64         `yaml:"lattice_constant"`
	MeshResolution   int             `yaml:"mesh_resolution"`
	PointsPerSegment int             `yaml:"points_per_segment"`
	Energy           EnergyWindow    `yaml:"energy"`
	Smoothing        SmoothingConfig `yaml:"smoothing"`
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		LogLevel:  DefaultLogLevel,
		DOS: DOSConfig{
			Hopping:   DefaultHopping,
			Size1D:    10000,
			Size2D:    500,
			Size3D:    100,
			Energy:    EnergyWindow{Lower: -7, Upper: 7, Resolution: 1000},
			Smoothing: SmoothingConfig{Sigma: 0.05, Window: 101},
		},
		Density: DensityConfig{SizeX: 20, SizeY: 20, Hopping: DefaultHopping},
		Annulus: AnnulusConfig{
			Size:        41,
			Hopping:     DefaultHopping,
			InnerRadius: 41 / 8,
			OuterRadius: 41 / 2,
		},
		Hamiltonian: HamiltonianConfig{SizeX: 4, SizeY: 3, Hopping: DefaultHopping},
		Potentials:  PotentialsConfig{Size: 500, Hopping: DefaultHopping, NumStates: 7},
		Graphene: GrapheneConfig{
			Hopping:          3,
			LatticeConstant:  2.5,
			MeshResolution:   1000,
			PointsPerSegment: 100,
			Energy:           EnergyWindow{Lower: -10, Upper: 10, Resolution: 1000},
			Smoothing:        SmoothingConfig{Sigma: 0.03, Window: 51},
		},
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver overlays the YAML file at path on a copy of base.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy; Config holds no reference types.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (w EnergyWindow) validate(name string) error {
	if w.Resolution < 1 {
		return fmt.Errorf("%w: %s.resolution must be positive, got %d", ErrInvalid, name, w.Resolution)
	}
	if !(w.Upper > w.Lower) {
		return fmt.Errorf("%w: %s window [%v, %v] is empty", ErrInvalid, name, w.Lower, w.Upper)
	}
	return nil
}

func (s SmoothingConfig) validate(name string) error {
	if s.Sigma <= 0 {
		return fmt.Errorf("%w: %s.sigma must be positive", ErrInvalid, name)
	}
	if s.Window < 1 || s.Window%2 == 0 {
		return fmt.Errorf("%w: %s.window must be odd and positive, got %d", ErrInvalid, name, s.Window)
	}
	return nil
}

func positive(name string, v int) error {
	if v < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, name, v)
	}
	return nil
}

// Validate checks every example section.
func (c *Config) Validate() error {
	checks := []error{
		positive("dos.size_1d", c.DOS.Size1D),
		positive("dos.size_2d", c.DOS.Size2D),
		positive("dos.size_3d", c.DOS.Size3D),
		c.DOS.Energy.validate("dos.energy"),
		c.DOS.Smoothing.validate("dos.smoothing"),
		positive("density.size_x", c.Density.SizeX),
		positive("density.size_y", c.Density.SizeY),
		positive("annulus.size", c.Annulus.Size),
		positive("hamiltonian.size_x", c.Hamiltonian.SizeX),
		positive("hamiltonian.size_y", c.Hamiltonian.SizeY),
		positive("potentials.size", c.Potentials.Size),
		positive("potentials.num_states", c.Potentials.NumStates),
		positive("graphene.mesh_resolution", c.Graphene.MeshResolution),
		positive("graphene.points_per_segment", c.Graphene.PointsPerSegment),
		c.Graphene.Energy.validate("graphene.energy"),
		c.Graphene.Smoothing.validate("graphene.smoothing"),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	switch {
	case c.Density.State < 0 || c.Density.State >= c.Density.SizeX*c.Density.SizeY:
		return fmt.Errorf("%w: density.state %d outside the basis", ErrInvalid, c.Density.State)
	case c.Annulus.State < 0:
		return fmt.Errorf("%w: annulus.state must not be negative", ErrInvalid)
	case !(c.Annulus.OuterRadius > c.Annulus.InnerRadius) || c.Annulus.InnerRadius < 0:
		return fmt.Errorf("%w: annulus radii (%v, %v)", ErrInvalid, c.Annulus.InnerRadius, c.Annulus.OuterRadius)
	case c.Potentials.NumStates >= c.Potentials.Size:
		return fmt.Errorf("%w: potentials.num_states must be below the chain size", ErrInvalid)
	case c.Graphene.LatticeConstant <= 0:
		return fmt.Errorf("%w: graphene.lattice_constant must be positive", ErrInvalid)
	}
	return nil
}
