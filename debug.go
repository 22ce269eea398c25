// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import (
	"fmt"
	"io"
	"strings"
)

// CodePrinter renders one block's instructions for PrettyPrint. The host
// owns the instruction representation, so rendering it is always a host
// responsibility; PrettyPrint only supplies the surrounding live-in/out
// framing.
type CodePrinter func(w io.Writer, label Label, code []Instruction) error

// PrettyPrint writes a human-readable dump of result to sink: one entry per
// block, each showing the label, its live-in set, the block's code
// (rendered by printCode), and its live-out set. Blocks are printed in the
// analysis's postorder.
func PrettyPrint(sink io.Writer, cfg CFG, result *Result, printCode CodePrinter) error {
	if !result.debugAnnotate {
		return errDebugAnnotateDisabled
	}
	for _, label := range result.Labels() {
		liveIn, err := LiveIn(result, label)
		if err != nil {
			return err
		}
		liveOut, err := LiveOut(result, label)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(sink, "block %s:\n  live-in:  %s\n", label, varSetString(liveIn)); err != nil {
			return err
		}
		if err := printCode(sink, label, cfg.BlockCode(label)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(sink, "  live-out: %s\n", varSetString(liveOut)); err != nil {
			return err
		}
	}
	return nil
}

// CommentMaker lets Annotate turn a rendered live-in/live-out line into a
// host Instruction (e.g. a source-comment pseudo-statement) it can splice
// into a block's code.
type CommentMaker interface {
	MakeComment(text string) Instruction
}

// MutableCFG extends CFG with the ability to replace a block's code, which
// Annotate needs in order to return an annotated copy of the graph.
type MutableCFG interface {
	CFG
	SetBlockCode(label Label, code []Instruction)
}

// Annotate rewrites every block of cfg in place, prefixing its code with
// two pseudo-comments carrying the block's live-in and live-out sets (via
// maker.MakeComment), and returns cfg for chaining. It requires a
// MutableCFG because the abstract CFG contract is otherwise read-only.
func Annotate(cfg MutableCFG, result *Result, maker CommentMaker) (MutableCFG, error) {
	if !result.debugAnnotate {
		return nil, errDebugAnnotateDisabled
	}
	for _, label := range result.Labels() {
		liveIn, err := LiveIn(result, label)
		if err != nil {
			return nil, err
		}
		liveOut, err := LiveOut(result, label)
		if err != nil {
			return nil, err
		}

		original := cfg.BlockCode(label)
		annotated := make([]Instruction, 0, len(original)+2)
		annotated = append(annotated, maker.MakeComment("live-in: "+varSetString(liveIn)))
		annotated = append(annotated, maker.MakeComment("live-out: "+varSetString(liveOut)))
		annotated = append(annotated, original...)
		cfg.SetBlockCode(label, annotated)
	}
	return cfg, nil
}

func varSetString(s VarSet) string {
	vars := s.Slice()
	if len(vars) == 0 {
		return "{}"
	}
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = variableString(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func variableString(v Variable) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
