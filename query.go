// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

// Result is the frozen outcome of an Analyze call: an immutable mapping
// from Label to BlockEntry, safe for concurrent read-only access. It offers
// no mutators; the only way to obtain one is Analyze.
type Result struct {
	store         *store
	order         []Label
	exitLive      VarSet
	stats         Stats
	universe      *Universe
	debugAnnotate bool
}

// Universe returns the Variable→index interning table built during
// Analyze. Consumers rarely need it directly; it exists chiefly so helpers
// like TransferOverInstructions can build VarSets that share bit positions
// with this Result's LiveIn/LiveOut sets.
func (r *Result) Universe() *Universe {
	return r.universe
}

// LiveIn returns the live-in set computed for label, i.e. the variables
// whose value may be read on some path starting at label's first
// instruction before being redefined. It fails with ErrUnknownLabel if
// label was not part of the analyzed CFG.
func LiveIn(result *Result, label Label) (VarSet, error) {
	entry, err := result.store.lookup(label)
	if err != nil {
		return VarSet{}, err
	}
	return entry.LiveIn, nil
}

// LiveOut returns the live-out set for label, computed on demand as the
// union of its successors' live-in sets (or the analysis's configured
// exit-live set, if label has no successors). The result is not cached;
// callers making repeated LiveOut queries for the same label should
// memoize externally.
func LiveOut(result *Result, label Label) (VarSet, error) {
	entry, err := result.store.lookup(label)
	if err != nil {
		return VarSet{}, err
	}
	if len(entry.Successors) == 0 {
		return result.exitLive, nil
	}
	out := VarSet{}
	for _, succ := range entry.Successors {
		succEntry, err := result.store.lookup(succ)
		if err != nil {
			return VarSet{}, err
		}
		out = out.Union(succEntry.LiveIn)
	}
	return out, nil
}

// Stats returns the instrumentation gathered while Analyze ran. It is the
// zero Stats unless Config.CollectMaxLiveSet was set.
func (r *Result) Stats() Stats {
	return r.stats
}

// Labels returns the labels present in the result, in the analysis's
// postorder. Useful for callers that want to walk every analyzed block,
// e.g. PrettyPrint.
func (r *Result) Labels() []Label {
	return r.order
}

// Transfer returns the gen/kill transfer function computed for label.
func (r *Result) Transfer(label Label) (Transfer, error) {
	entry, err := r.store.lookup(label)
	if err != nil {
		return Transfer{}, err
	}
	return entry.Transfer, nil
}
