// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "errors"

var (
	// ErrSolverSingular is returned when the first-contact impulse
	// solve produces a singular, NaN or infinite result.
	ErrSolverSingular = errors.New("physics: singular collision matrix in impulse solve")

	// ErrUnsupportedShape is returned by World.Add when the body
	// carries a shape variant unknown to the narrowphase.
	ErrUnsupportedShape = errors.New("physics: unsupported shape")

	// ErrBodyAttached is returned by World.Add when the body already
	// belongs to a world.
	ErrBodyAttached = errors.New("physics: body already attached to a world")
)
