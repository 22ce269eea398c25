// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import "fmt"

// BlockEntry is the per-label record kept in a store: the block's transfer
// function, the analysis's current approximation of its live-in set, and
// the successor labels the CFG adapter reported when the store was built.
type BlockEntry struct {
	Transfer   Transfer
	LiveIn     VarSet
	Successors []Label
}

// store is a mapping from Label to *BlockEntry: init builds it once from
// the CFG adapter's output, update replaces a single entry's LiveIn during
// the fixpoint sweep, and lookup serves both the engine and the public
// query API.
//
// A plain map is sufficient because the analysis is single-threaded
// end-to-end: the store is owned exclusively by one Analyze call until it
// is returned (frozen, inside *Result) to the caller.
type store struct {
	entries map[Label]*BlockEntry
}

func newStore() *store {
	return &store{entries: make(map[Label]*BlockEntry)}
}

// init populates the store from entries. A duplicate label, or a successor
// referencing a label with no corresponding entry, is a broken CFG adapter
// and reported as ErrInvariantViolation.
func (s *store) init(entries []labelEntry) error {
	for _, le := range entries {
		if _, exists := s.entries[le.label]; exists {
			return fmt.Errorf("%w: duplicate label %q", ErrInvariantViolation, le.label)
		}
		s.entries[le.label] = le.entry
	}
	for _, le := range entries {
		for _, succ := range le.entry.Successors {
			if _, ok := s.entries[succ]; !ok {
				return fmt.Errorf("%w: block %q has successor %q with no entry", ErrInvariantViolation, le.label, succ)
			}
		}
	}
	return nil
}

// lookup returns the entry for label, or ErrUnknownLabel if absent.
func (s *store) lookup(label Label) (*BlockEntry, error) {
	e, ok := s.entries[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return e, nil
}

// update replaces label's live-in set. label must already be present;
// replacing the live-in of an unknown label is a programming error.
func (s *store) update(label Label, liveIn VarSet) error {
	e, ok := s.entries[label]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	e.LiveIn = liveIn
	return nil
}
