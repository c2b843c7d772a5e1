// Copyright ©2026 The updateable-sampler Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package treesampler implements a dynamic weighted index over a sequence
// of non-negative, arbitrary-magnitude integer weights, laid out as an
// implicit binary heap.
//
// Each node of the heap holds its own self weight plus a cached sum of
// descendant weight. The children of node i live at 2*i+1 and 2*i+2, and
// the root, node 0, holds the total weight of the whole structure. This is
// the same heap-of-weights layout as gonum's stat/sampleuv.Weighted, but
// generalized from a float64, take-without-replacement heap to an
// arbitrary-precision, update-in-place, sample-with-replacement one: instead
// of a cumulative-sum walk driven by one uniform float, each internal node
// resolves self-vs-children and left-vs-right with its own coin.Sampler,
// so descent consumes only fair bits and needs no floating-point
// normalization.
package treesampler

import (
	"errors"
	"math/big"

	"github.com/DRMacIver/updateable-sampler/coin"
	"github.com/DRMacIver/updateable-sampler/wrand"
)

// ErrNegativeWeight is returned when a weight argument is negative.
var ErrNegativeWeight = errors.New("treesampler: weight must be non-negative")

// ErrOutOfRange is returned by Get, Set, and Pop for an index outside
// [0, Len()).
var ErrOutOfRange = errors.New("treesampler: index out of range")

// ErrZeroWeight is returned by Sample when the total weight is zero.
var ErrZeroWeight = errors.New("treesampler: cannot sample with zero total weight")

type node struct {
	weight      *big.Int
	childWeight *big.Int
	selfCoin    *coin.Sampler // nil = not yet built
	leftCoin    *coin.Sampler // nil = not yet built
}

// Sampler is an append-only-growable indexed sequence of non-negative
// weights supporting O(log n) point update and expected O(log n) sampling.
//
// A Sampler is not safe for concurrent use.
type Sampler struct {
	nodes []node
}

// New constructs a Sampler from an initial slice of weights. It returns
// ErrNegativeWeight if any weight is negative.
func New(weights []*big.Int) (*Sampler, error) {
	s := &Sampler{}
	for _, w := range weights {
		if err := s.Append(w); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of weights held by s.
func (s *Sampler) Len() int { return len(s.nodes) }

// Get returns the weight stored at i.
func (s *Sampler) Get(i int) (*big.Int, error) {
	if i < 0 || i >= len(s.nodes) {
		return nil, ErrOutOfRange
	}
	return new(big.Int).Set(s.nodes[i].weight), nil
}

// TotalWeight returns the sum of all weights held by s.
func (s *Sampler) TotalWeight() *big.Int {
	return s.total(0)
}

// total returns weight[i] + childWeight[i], the full subtree sum rooted at
// i, or zero if i is out of range.
func (s *Sampler) total(i int) *big.Int {
	if i >= len(s.nodes) {
		return new(big.Int)
	}
	n := &s.nodes[i]
	return new(big.Int).Add(n.weight, n.childWeight)
}

// Append adds a new weight to the end of the sequence, growing Len by one.
func (s *Sampler) Append(w *big.Int) error {
	if w.Sign() < 0 {
		return ErrNegativeWeight
	}
	s.nodes = append(s.nodes, node{weight: new(big.Int), childWeight: new(big.Int)})
	return s.Set(len(s.nodes)-1, w)
}

// Pop removes and returns the last weight in the sequence. It returns
// ErrOutOfRange if the sequence is empty.
func (s *Sampler) Pop() (*big.Int, error) {
	if len(s.nodes) == 0 {
		return nil, ErrOutOfRange
	}
	last := len(s.nodes) - 1
	result := new(big.Int).Set(s.nodes[last].weight)
	if err := s.Set(last, new(big.Int)); err != nil {
		return nil, err
	}
	s.nodes = s.nodes[:last]
	return result, nil
}

// Set assigns the weight at index i, restoring the ancestor-sum invariant
// and invalidating any coins built over stale sums. It is a no-op if the
// stored weight already equals w.
func (s *Sampler) Set(i int, w *big.Int) error {
	if i < 0 || i >= len(s.nodes) {
		return ErrOutOfRange
	}
	if w.Sign() < 0 {
		return ErrNegativeWeight
	}
	if s.nodes[i].weight.Cmp(w) == 0 {
		return nil
	}
	s.nodes[i].weight = new(big.Int).Set(w)
	s.nodes[i].selfCoin = nil

	for i > 0 {
		i = (i - 1) / 2
		s.nodes[i].selfCoin = nil
		s.nodes[i].leftCoin = nil
		left, right := 2*i+1, 2*i+2
		s.nodes[i].childWeight = new(big.Int).Add(s.total(left), s.total(right))
	}
	return nil
}

// Sample descends from the root, returning an index with probability equal
// to its weight divided by TotalWeight. It returns ErrZeroWeight if the
// total weight is zero.
func (s *Sampler) Sample(src wrand.Source) (int, error) {
	if s.TotalWeight().Sign() == 0 {
		return 0, ErrZeroWeight
	}
	i := 0
	for {
		left, right := 2*i+1, 2*i+2
		if left >= len(s.nodes) {
			return i, nil
		}
		n := &s.nodes[i]
		if n.selfCoin == nil {
			c, err := coin.New(n.childWeight, n.weight)
			if err != nil {
				return 0, err
			}
			n.selfCoin = c
		}
		if n.selfCoin.Sample(src) {
			return i, nil
		}
		if right >= len(s.nodes) {
			i = left
			continue
		}
		if n.leftCoin == nil {
			c, err := coin.New(s.total(right), s.total(left))
			if err != nil {
				return 0, err
			}
			n.leftCoin = c
		}
		if n.leftCoin.Sample(src) {
			i = left
		} else {
			i = right
		}
	}
}
