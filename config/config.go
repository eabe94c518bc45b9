// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads world and solver tuning from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics"
)

// Solver holds the tuning of the constraint solver.
type Solver struct {
	Iterations int     `yaml:"iterations"`
	Stiffness  float32 `yaml:"stiffness"`
	Relaxation float32 `yaml:"relaxation"`
}

// Contact holds the default contact material properties.
type Contact struct {
	Friction    float32 `yaml:"friction"`
	Restitution float32 `yaml:"restitution"`
}

// World holds the tuning of a physics world.
type World struct {
	Gravity        [3]float32 `yaml:"gravity"`
	Timestep       float32    `yaml:"timestep"`
	AngularImpulse bool       `yaml:"angular_impulse"`
	Solver         Solver     `yaml:"solver"`
	Contact        Contact    `yaml:"contact"`
}

// Default returns the default configuration. Its solver settings and
// angular-impulse toggle match the built-in world defaults; its gravity
// is (0, -9.82, 0), whereas a new world starts with zero gravity.
func Default() *World {

	return &World{
		Gravity:  [3]float32{0, -9.82, 0},
		Timestep: 1.0 / 60.0,
		Solver: Solver{
			Iterations: 10,
			Stiffness:  1e7,
			Relaxation: 4,
		},
	}
}

// Parse decodes a world configuration from YAML data, starting from the
// defaults.
func Parse(data []byte) (*World, error) {

	c := Default()
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if c.Timestep <= 0 {
		return nil, fmt.Errorf("config: timestep must be positive")
	}
	if c.Solver.Iterations <= 0 {
		return nil, fmt.Errorf("config: solver iterations must be positive")
	}
	return c, nil
}

// Load reads and decodes a world configuration from the YAML file at
// path.
func Load(path string) (*World, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Apply pushes the gravity, the solver settings and the angular-impulse
// toggle of this configuration onto the specified world. The timestep
// and the contact material are not applied; ContactMaterial builds the
// latter.
func (c *World) Apply(w *physics.World) {

	w.SetGravity(math32.NewVector3(c.Gravity[0], c.Gravity[1], c.Gravity[2]))
	w.SetIterations(c.Solver.Iterations)
	w.SetContactParams(c.Solver.Stiffness, c.Solver.Relaxation)
	w.SetApplyImpulseAngular(c.AngularImpulse)
}

// ContactMaterial builds the contact material described by the
// configuration, for assignment to bodies.
func (c *World) ContactMaterial() *physics.Material {

	return physics.NewMaterial("config", c.Contact.Friction, c.Contact.Restitution)
}
