// Copyright ©2026 The updateable-sampler Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package wsampler implements mutable weighted random sampling from an
indexed collection of non-negative integer weights of arbitrary magnitude.

A Sampler supports point update, append, and removal of weights while
drawing index samples with probability proportional to weight, which suits
adaptive Monte-Carlo search, property-based generation, and
rejection-replacement schemes where the weight distribution evolves
between draws.

Internally, a Sampler partitions its weights by bit length, keeping one
pool.Pool per distinct bit length plus a treesampler.Sampler whose i-th
leaf holds the total weight of pool i. Sampling first picks a pool by
total weight, then an index within that pool — reducing sampling from
arbitrary-magnitude weights to cheap sampling within a pool whose members
differ by at most a factor of two. See pool and treesampler for the pool
and tree layers, and coin for the biased-coin primitive the tree layer is
built on.
*/
package wsampler // import "github.com/DRMacIver/updateable-sampler"

import (
	"errors"
	"math/big"

	"github.com/DRMacIver/updateable-sampler/pool"
	"github.com/DRMacIver/updateable-sampler/treesampler"
	"github.com/DRMacIver/updateable-sampler/wrand"
)

// ErrNegativeWeight is returned when a weight argument is negative.
var ErrNegativeWeight = errors.New("wsampler: weight must be non-negative")

// ErrOutOfRange is returned by Get, Set, Pop, and Delete for an index
// outside [0, Len()).
var ErrOutOfRange = errors.New("wsampler: index out of range")

// ErrZeroWeight is returned by Sample when the total weight is zero.
var ErrZeroWeight = errors.New("wsampler: cannot sample with zero total weight")

// Sampler is an indexed sequence of non-negative, arbitrary-magnitude
// integer weights supporting O(log n) point update and expected O(log W)
// sampling, where W is the sampled weight's magnitude.
//
// A Sampler is not safe for concurrent use: mutation and sampling both
// touch shared internal cache state.
type Sampler struct {
	weights []*big.Int
	tree    *treesampler.Sampler
	pools   []*pool.Pool
	byBit   map[int]int // bit length -> index into pools/tree
}

// New constructs a Sampler holding the given initial weights, in order. It
// returns ErrNegativeWeight if any weight is negative.
func New(weights []*big.Int) (*Sampler, error) {
	tree, err := treesampler.New(nil)
	if err != nil {
		return nil, err
	}
	s := &Sampler{
		tree:  tree,
		byBit: make(map[int]int),
	}
	for _, w := range weights {
		if err := s.Append(w); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of weights held by s.
func (s *Sampler) Len() int { return len(s.weights) }

// Get returns the weight at index i.
func (s *Sampler) Get(i int) (*big.Int, error) {
	if i < 0 || i >= len(s.weights) {
		return nil, ErrOutOfRange
	}
	return new(big.Int).Set(s.weights[i]), nil
}

// TotalWeight returns the sum of all weights held by s.
func (s *Sampler) TotalWeight() *big.Int {
	return s.tree.TotalWeight()
}

// Append adds w to the end of the sequence, growing Len by one. It returns
// ErrNegativeWeight if w is negative.
func (s *Sampler) Append(w *big.Int) error {
	if w.Sign() < 0 {
		return ErrNegativeWeight
	}
	s.weights = append(s.weights, new(big.Int))
	return s.Set(len(s.weights)-1, w)
}

// Pop removes and returns the last weight in the sequence. It returns
// ErrOutOfRange if the sequence is empty.
func (s *Sampler) Pop() (*big.Int, error) {
	if len(s.weights) == 0 {
		return nil, ErrOutOfRange
	}
	last := len(s.weights) - 1
	result := new(big.Int).Set(s.weights[last])
	if err := s.Set(last, new(big.Int)); err != nil {
		return nil, err
	}
	s.weights = s.weights[:last]
	return result, nil
}

// Delete removes the weight at index i, shifting every weight at a higher
// index down by one. It returns ErrOutOfRange if i is out of range.
func (s *Sampler) Delete(i int) error {
	if i < 0 || i >= len(s.weights) {
		return ErrOutOfRange
	}
	for j := i; j < len(s.weights)-1; j++ {
		if err := s.Set(j, s.weights[j+1]); err != nil {
			return err
		}
	}
	_, err := s.Pop()
	return err
}

// Set assigns the weight at index i. It returns ErrOutOfRange if i is out
// of range, or ErrNegativeWeight if v is negative.
//
// Set(i, v) where v already equals the stored weight is a no-op: it leaves
// total weight, pool membership, and subsequent sampling behavior for any
// fixed random-bit prefix unchanged.
func (s *Sampler) Set(i int, v *big.Int) error {
	if i < 0 || i >= len(s.weights) {
		return ErrOutOfRange
	}
	if v.Sign() < 0 {
		return ErrNegativeWeight
	}
	u := s.weights[i]
	if u.Cmp(v) == 0 {
		return nil
	}

	bv := v.BitLen()
	bk, ok := s.byBit[bv]
	if v.Sign() > 0 && !ok {
		bk = len(s.pools)
		s.pools = append(s.pools, pool.New(bv))
		if err := s.tree.Append(new(big.Int)); err != nil {
			return err
		}
		s.byBit[bv] = bk
	}

	bu := u.BitLen()
	if bu != bv {
		if u.Sign() > 0 {
			uk := s.byBit[bu]
			s.pools[uk].Remove(i)
			uTotal, err := s.tree.Get(uk)
			if err != nil {
				return err
			}
			if err := s.tree.Set(uk, new(big.Int).Sub(uTotal, u)); err != nil {
				return err
			}
		}
		if v.Sign() > 0 {
			s.pools[bk].Set(i, v)
			vTotal, err := s.tree.Get(bk)
			if err != nil {
				return err
			}
			if err := s.tree.Set(bk, new(big.Int).Add(vTotal, v)); err != nil {
				return err
			}
		}
	} else {
		s.pools[bk].Set(i, v)
		bTotal, err := s.tree.Get(bk)
		if err != nil {
			return err
		}
		delta := new(big.Int).Sub(v, u)
		if err := s.tree.Set(bk, new(big.Int).Add(bTotal, delta)); err != nil {
			return err
		}
	}

	s.weights[i] = new(big.Int).Set(v)
	return nil
}

// Sample draws an index with probability proportional to its weight. It
// returns ErrZeroWeight if the total weight is zero.
func (s *Sampler) Sample(src wrand.Source) (int, error) {
	if s.TotalWeight().Sign() == 0 {
		return 0, ErrZeroWeight
	}
	bk, err := s.tree.Sample(src)
	if err != nil {
		return 0, err
	}
	return s.pools[bk].Sample(src), nil
}
