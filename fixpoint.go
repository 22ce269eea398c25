// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import "context"

// Stats reports optional instrumentation collected while the fixpoint
// engine ran. It never influences the computed liveness result; gathering
// it is enabled per Analyze call via Config.CollectMaxLiveSet.
type Stats struct {
	// Sweeps is the number of outer worklist sweeps performed, including
	// the final sweep that observed zero changes.
	Sweeps int

	// MaxLiveIn is the largest |live_in(B)| observed across every block
	// and every sweep. Zero if CollectMaxLiveSet was not set.
	MaxLiveIn int
}

// runFixpoint is the round-robin worklist engine: repeatedly sweep the
// blocks in postorder, recomputing live-out as the union of successors'
// live-in and live-in as gen ∪ (live-out \ kill), until a full sweep makes
// no change.
//
// Visiting blocks in postorder (rather than reverse postorder) means each
// sweep processes a block after its successors, so a successor's update
// propagates into its predecessor within the same sweep (this is what makes
// postorder, not reverse postorder, the efficient visitation order for a
// backward dataflow problem). Convergence is guaranteed because live-in
// only grows (union-only updates) and is bounded by the finite variable
// universe.
func runFixpoint(ctx context.Context, s *store, order []Label, exitLive VarSet, collectStats bool) (Stats, error) {
	var stats Stats

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Sweeps++
		changed := 0

		for _, l := range order {
			entry, err := s.lookup(l)
			if err != nil {
				return stats, err
			}

			liveOut := exitLive
			if len(entry.Successors) > 0 {
				liveOut = VarSet{}
				for _, succ := range entry.Successors {
					succEntry, err := s.lookup(succ)
					if err != nil {
						return stats, err
					}
					liveOut = liveOut.Union(succEntry.LiveIn)
				}
			}

			newLiveIn := entry.Transfer.Gen.Union(liveOut.Difference(entry.Transfer.Kill))

			if collectStats && newLiveIn.Len() > stats.MaxLiveIn {
				stats.MaxLiveIn = newLiveIn.Len()
			}

			if !newLiveIn.Equal(entry.LiveIn) {
				if err := s.update(l, newLiveIn); err != nil {
					return stats, err
				}
				changed++
			}
		}

		if changed == 0 {
			return stats, nil
		}
	}
}
