// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import (
	"errors"
	"testing"
)

func TestStoreDuplicateLabelIsInvariantViolation(t *testing.T) {
	l0 := fpTestLabel("L0")
	u := newUniverse()
	entry := &BlockEntry{LiveIn: u.empty()}

	st := newStore()
	err := st.init([]labelEntry{
		{label: l0, entry: entry},
		{label: l0, entry: entry},
	})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("init with duplicate label: got %v, want ErrInvariantViolation", err)
	}
}

func TestStoreDanglingSuccessorIsInvariantViolation(t *testing.T) {
	l0, l1 := fpTestLabel("L0"), fpTestLabel("L1")
	u := newUniverse()

	st := newStore()
	err := st.init([]labelEntry{
		{label: l0, entry: &BlockEntry{LiveIn: u.empty(), Successors: []Label{l1}}},
	})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("init with dangling successor: got %v, want ErrInvariantViolation", err)
	}
}

func TestStoreLookupUnknownLabel(t *testing.T) {
	st := newStore()
	_, err := st.lookup(fpTestLabel("nope"))
	if !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("lookup of unknown label: got %v, want ErrUnknownLabel", err)
	}
}

func TestStoreUpdateUnknownLabel(t *testing.T) {
	st := newStore()
	u := newUniverse()
	err := st.update(fpTestLabel("nope"), u.empty())
	if !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("update of unknown label: got %v, want ErrUnknownLabel", err)
	}
}
