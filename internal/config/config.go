package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mbsim/internal/modeling"
	"github.com/san-kum/mbsim/internal/spatial"
)

const (
	DefaultName     = "pendulum"
	DefaultLength   = 1.0
	DefaultBobMass  = 1.0
	DefaultJoint    = "pin"
	DefaultBodyKind = "rigid"
	DefaultShape    = "point"
	SystemName      = "world"
)

var ErrNoName = errors.New("config: model name is required")

// Config describes one multibody: its bodies and the joints between them.
type Config struct {
	Name   string        `yaml:"name"`
	Ground bool          `yaml:"ground"`
	Bodies []BodyConfig  `yaml:"bodies"`
	Joints []JointConfig `yaml:"joints"`
}

type BodyConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"`
	// Like names an earlier body to copy, mass elements and stations included.
	Like         string              `yaml:"like,omitempty"`
	Origin       []float64           `yaml:"origin,omitempty"`
	Axis         []float64           `yaml:"axis,omitempty"`
	Angle        float64             `yaml:"angle,omitempty"`
	Stations     []StationConfig     `yaml:"stations,omitempty"`
	MassElements []MassElementConfig `yaml:"mass_elements,omitempty"`
}

type StationConfig struct {
	Name string    `yaml:"name"`
	At   []float64 `yaml:"at"`
}

type MassElementConfig struct {
	Name        string    `yaml:"name"`
	Shape       string    `yaml:"shape,omitempty"`
	Mass        float64   `yaml:"mass"`
	At          []float64 `yaml:"at,omitempty"`
	Radius      float64   `yaml:"radius,omitempty"`
	HalfLength  float64   `yaml:"half_length,omitempty"`
	HalfLengths []float64 `yaml:"half_lengths,omitempty"`
}

// JointConfig connects two features given as paths relative to the
// multibody, e.g. "Ground" or "link1/tip". A joint with neither path set is
// added unconnected.
type JointConfig struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Reference string `yaml:"reference,omitempty"`
	Moving    string `yaml:"moving,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:   DefaultName,
		Ground: true,
		Bodies: []BodyConfig{
			{
				Name: "link1",
				Kind: DefaultBodyKind,
				MassElements: []MassElementConfig{
					{Name: "bob", Shape: DefaultShape, Mass: DefaultBobMass, At: []float64{0, -DefaultLength, 0}},
				},
			},
		},
		Joints: []JointConfig{
			{Name: "hinge", Type: DefaultJoint, Reference: modeling.GroundName, Moving: "link1"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		return nil, ErrNoName
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

// Build turns the description into a multibody model.
func Build(cfg *Config) (modeling.Multibody, error) {
	if cfg.Name == "" {
		return modeling.Multibody{}, ErrNoName
	}
	mb, err := modeling.NewMultibody(cfg.Name)
	if err != nil {
		return modeling.Multibody{}, err
	}
	if cfg.Ground {
		if _, err := mb.AddGroundBody(); err != nil {
			return modeling.Multibody{}, err
		}
	}
	for _, bc := range cfg.Bodies {
		if err := addBody(mb, bc); err != nil {
			return modeling.Multibody{}, fmt.Errorf("body %q: %w", bc.Name, err)
		}
	}
	for _, jc := range cfg.Joints {
		if err := addJoint(mb, jc); err != nil {
			return modeling.Multibody{}, fmt.Errorf("joint %q: %w", jc.Name, err)
		}
	}
	return mb, nil
}

// BuildSystem builds each description and collects the results in one system.
func BuildSystem(cfgs ...*Config) (modeling.MultibodySystem, error) {
	sys, err := modeling.NewMultibodySystem(SystemName)
	if err != nil {
		return modeling.MultibodySystem{}, err
	}
	for _, cfg := range cfgs {
		mb, err := Build(cfg)
		if err != nil {
			return modeling.MultibodySystem{}, err
		}
		if _, err := sys.AddMultibodyLike(mb, cfg.Name); err != nil {
			return modeling.MultibodySystem{}, err
		}
	}
	return sys, nil
}

func addBody(mb modeling.Multibody, bc BodyConfig) error {
	body, err := newBody(mb, bc)
	if err != nil {
		return err
	}

	if bc.Origin != nil || bc.Axis != nil {
		origin, err := spatial.ParseVec3(bc.Origin)
		if err != nil {
			return fmt.Errorf("origin: %w", err)
		}
		axis, err := spatial.ParseVec3(bc.Axis)
		if err != nil {
			return fmt.Errorf("axis: %w", err)
		}
		frame := spatial.Transform{Origin: origin, Rotation: spatial.AxisAngle(axis, bc.Angle)}
		if err := body.SetPlacement(modeling.FrameAt(frame)); err != nil {
			return err
		}
	}

	for _, sc := range bc.Stations {
		at, err := spatial.ParseVec3(sc.At)
		if err != nil {
			return fmt.Errorf("station %q: %w", sc.Name, err)
		}
		if _, err := body.AddStation(sc.Name, modeling.Vector(at)); err != nil {
			return err
		}
	}

	if len(bc.MassElements) == 0 {
		return nil
	}
	rigid, ok := modeling.AsRigidBody(body)
	if !ok {
		return fmt.Errorf("mass elements need a rigid body, not %s", body.Kind())
	}
	for _, mc := range bc.MassElements {
		if err := addMassElement(rigid, mc); err != nil {
			return fmt.Errorf("mass element %q: %w", mc.Name, err)
		}
	}
	return nil
}

func newBody(mb modeling.Multibody, bc BodyConfig) (modeling.Body, error) {
	if bc.Like != "" {
		proto, err := mb.Body(bc.Like)
		if err != nil {
			return modeling.Body{}, err
		}
		return mb.AddBodyLike(proto, bc.Name)
	}

	switch strings.ToLower(bc.Kind) {
	case "", "rigid":
		rb, err := mb.AddRigidBody(bc.Name)
		return rb.Body, err
	case "deformable":
		proto, err := modeling.NewDeformableBody(bc.Name)
		if err != nil {
			return modeling.Body{}, err
		}
		return mb.AddBodyLike(proto.Body, bc.Name)
	default:
		return modeling.Body{}, fmt.Errorf("unknown body kind: %s", bc.Kind)
	}
}

func addMassElement(body modeling.RigidBody, mc MassElementConfig) error {
	proto, err := newMassElement(mc)
	if err != nil {
		return err
	}
	at, err := spatial.ParseVec3(mc.At)
	if err != nil {
		return fmt.Errorf("at: %w", err)
	}
	_, err = body.AddMassElementLikeAt(proto, mc.Name, modeling.Vector(at))
	return err
}

func newMassElement(mc MassElementConfig) (modeling.MassElement, error) {
	switch strings.ToLower(mc.Shape) {
	case "", "point":
		return modeling.NewPointMass(mc.Name, mc.Mass)
	case "cylinder":
		return modeling.NewCylinderMass(mc.Name, mc.Mass, mc.Radius, mc.HalfLength)
	case "brick":
		hl, err := spatial.ParseVec3(mc.HalfLengths)
		if err != nil {
			return modeling.MassElement{}, fmt.Errorf("half_lengths: %w", err)
		}
		return modeling.NewBrickMass(mc.Name, mc.Mass, hl)
	default:
		return modeling.MassElement{}, fmt.Errorf("unknown shape: %s", mc.Shape)
	}
}

func addJoint(mb modeling.Multibody, jc JointConfig) error {
	typ, err := modeling.ParseJointType(jc.Type)
	if err != nil {
		return err
	}
	if jc.Reference == "" && jc.Moving == "" {
		_, err := mb.AddJoint(typ, jc.Name)
		return err
	}

	ref, err := mb.Lookup(jc.Reference)
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	mov, err := mb.Lookup(jc.Moving)
	if err != nil {
		return fmt.Errorf("moving: %w", err)
	}
	_, err = mb.AddJointBetween(typ, jc.Name, modeling.Ref(ref), modeling.Ref(mov))
	return err
}
