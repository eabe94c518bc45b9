// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 implements basic math functions which operate
// directly on float32 numbers without casting and contains
// types of common entities used in 3D simulation such as vectors,
// quaternions and matrices.
package math32

import (
	"math"
)

const Pi = math.Pi

var Infinity = float32(math.Inf(1))

// Clamp clamps x to the provided closed interval [a, b]
func Clamp(x, a, b float32) float32 {

	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

func Sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func Inf(sign int) float32 {
	return float32(math.Inf(sign))
}

func IsNaN(v float32) bool {
	return math.IsNaN(float64(v))
}

func IsInf(v float32, sign int) bool {
	return math.IsInf(float64(v), sign)
}

func Max(a, b float32) float32 {
	return float32(math.Max(float64(a), float64(b)))
}

func Min(a, b float32) float32 {
	return float32(math.Min(float64(a), float64(b)))
}

func NaN() float32 {
	return float32(math.NaN())
}

func Pow(a, b float32) float32 {
	return float32(math.Pow(float64(a), float64(b)))
}
