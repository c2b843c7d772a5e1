// Copyright ©2026 The updateable-sampler Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wrand defines the random-source capability required by the
// samplers in this module: a uniform bit and a uniform bounded integer.
// Implementers should satisfy Source directly rather than embedding or
// extending any concrete generator type.
package wrand

import "math/rand/v2"

// Source is the minimal random-number capability the samplers in this
// module require. A Source is read from only; it is never seeded, stored
// across samplers, or shared between concurrently running draws.
type Source interface {
	// Bit returns a uniformly distributed random bit, 0 or 1.
	Bit() int
	// Intn returns a uniformly distributed random integer in [0, n).
	// It panics if n <= 0.
	Intn(n int) int
}

// New wraps r as a Source. If r is nil, the default top-level generator
// from math/rand/v2 is used.
func New(r *rand.Rand) Source {
	return source{r}
}

type source struct {
	r *rand.Rand
}

func (s source) Bit() int {
	if s.r == nil {
		return rand.IntN(2)
	}
	return s.r.IntN(2)
}

func (s source) Intn(n int) int {
	if n <= 0 {
		panic("wrand: argument to Intn must be positive")
	}
	if s.r == nil {
		return rand.IntN(n)
	}
	return s.r.IntN(n)
}
