// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import "errors"

// Sentinel errors identifying the three error kinds this package can
// return. All are programming errors (a broken CFG adapter, or a query
// against a label the analysis never saw), never conditions tied to user
// input; callers should generally treat them as fatal and use errors.Is to
// distinguish them rather than matching error strings.
var (
	// ErrUnknownLabel is returned when a query or internal lookup
	// references a label absent from a LivenessResult.
	ErrUnknownLabel = errors.New("liveness: unknown label")

	// ErrInvariantViolation is returned for a duplicate label at store
	// initialization, or a successor label with no corresponding entry;
	// it indicates the CFG adapter produced an inconsistent graph.
	ErrInvariantViolation = errors.New("liveness: invariant violation")

	// ErrInterfaceContract is returned when Uses or Defines yields a nil
	// Variable, which cannot satisfy Variable's value-equality contract.
	ErrInterfaceContract = errors.New("liveness: interface contract violated")

	// errDebugAnnotateDisabled is returned by PrettyPrint/Annotate when
	// the Result they were given came from an Analyze call with
	// Config.DebugAnnotate unset. Unexported: callers only need to know
	// to pass DebugAnnotate: true, not to distinguish this from other
	// failures.
	errDebugAnnotateDisabled = errors.New("liveness: debug annotation was not enabled for this result (set Config.DebugAnnotate)")
)
