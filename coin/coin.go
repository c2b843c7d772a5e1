// Copyright ©2026 The updateable-sampler Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coin implements a biased-coin sampler over integer odds of
// arbitrary magnitude, consuming only unbiased random bits via a
// halves-and-subtract refinement of the odds (the single-Bernoulli analogue
// of Knuth–Yao sampling).
package coin

import (
	"errors"
	"math/big"

	"github.com/DRMacIver/updateable-sampler/wrand"
)

// ErrInvalidWeight is returned by New when both odds are zero or either is
// negative.
var ErrInvalidWeight = errors.New("coin: weights must be non-negative and not both zero")

// pair is one entry of the lazily materialized decision table.
type pair struct {
	f, t *big.Int
}

// Sampler draws true with probability t/(f+t) for the f, t it was
// constructed with, using only fair bits. Repeated Sample calls refine and
// reuse an internal cache, so a Sampler amortizes work across draws.
//
// A Sampler is not safe for concurrent use: Sample mutates the cache.
type Sampler struct {
	table []pair
}

// New returns a Sampler that draws true with probability
// trueWeight/(falseWeight+trueWeight). Both weights must be non-negative,
// and at least one must be positive.
func New(falseWeight, trueWeight *big.Int) (*Sampler, error) {
	if falseWeight.Sign() < 0 || trueWeight.Sign() < 0 {
		return nil, ErrInvalidWeight
	}
	if falseWeight.Sign() == 0 && trueWeight.Sign() == 0 {
		return nil, ErrInvalidWeight
	}
	return &Sampler{
		table: []pair{{f: new(big.Int).Set(falseWeight), t: new(big.Int).Set(trueWeight)}},
	}, nil
}

// Sample draws one outcome, true with probability t/(f+t) of the odds the
// Sampler was constructed with.
func (s *Sampler) Sample(src wrand.Source) bool {
	i := 0
	for {
		if i == len(s.table) {
			prev := s.table[i-1]
			f, t := prev.f, prev.t
			if t.Cmp(f) > 0 {
				s.table = append(s.table, pair{f: new(big.Int).Set(f), t: new(big.Int).Sub(t, f)})
			} else {
				s.table = append(s.table, pair{f: new(big.Int).Sub(f, t), t: new(big.Int).Set(t)})
			}
		}
		p := s.table[i]
		switch {
		case p.f.Sign() == 0:
			return true
		case p.t.Sign() == 0:
			return false
		case p.f.Cmp(p.t) == 0:
			return src.Bit() == 1
		default:
			if src.Bit() == 1 {
				return p.t.Cmp(p.f) > 0
			}
			i++
		}
	}
}
