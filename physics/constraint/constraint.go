// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint implements user-added constraints built from
// SPOOK equations.
package constraint

import (
	"github.com/dyn3/engine/physics/equation"
)

// IConstraint is the interface for all constraints.
// Update is called once per step, before solving, so the constraint
// can refresh its equations with current body data.
type IConstraint interface {
	Update()
	Equations() []*equation.Equation
}

// Constraint is the base for constraint implementations. It owns the
// equations the constraint contributes to the solver.
type Constraint struct {
	equations []*equation.Equation
}

// AddEquation adds an equation to the constraint.
func (c *Constraint) AddEquation(eq *equation.Equation) {

	c.equations = append(c.equations, eq)
}

// Equations returns the equations of this constraint.
func (c *Constraint) Equations() []*equation.Equation {

	return c.equations
}
