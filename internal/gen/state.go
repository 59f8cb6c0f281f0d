// Package gen holds the cross-target emission state shared by gen/ts,
// gen/py, gen/cpp, and gen/fab. Each target package owns its own emitter
// and syntax, but all four thread the same GenState through a compile so
// indentation, required-import tracking, and declared-class bookkeeping
// stay consistent however the emitter is invoked (spec.md §4.6), grounded
// on the teacher's internal/bytecode compiler's single shared compile
// state threaded across its per-concern files.
package gen

import (
	"strings"

	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/diagnostics"
)

// State is the per-emission scratch state every target generator carries.
type State struct {
	IndentUnit string
	depth      int

	// Imports/Features record what a target's preamble needs to emit —
	// e.g. Python's `from dataclasses import dataclass`, or C++'s
	// `#include <variant>` — decided while walking the body and rendered
	// up front only once the whole body is known.
	Imports  map[string]bool
	Features map[string]bool

	// DeclaredClasses records every genus/discretio/pactum name seen so
	// far, so a forward reference (a function returning a type declared
	// later in the file) can still be recognized as a declared type rather
	// than an unresolved external name.
	DeclaredClasses map[string]bool

	CLI        *ast.CLIDescriptor
	SourcePath string

	// CyclicImports names module source paths a ModuleCache found to be
	// part of an import cycle (resolve.ExportMap.Cyclic). Only a stricter
	// target's generator (cpp) acts on this; ts/py tolerate the resulting
	// empty export map without comment.
	CyclicImports map[string]bool

	// Diagnostics, when set by the caller, receives Emission-kind entries a
	// generator reports about its own output (e.g. a cyclic HAL import).
	// Left nil by default since most callers just want the generated text.
	Diagnostics *diagnostics.Bag
}

func NewState(indentUnit string) *State {
	if indentUnit == "" {
		indentUnit = "  "
	}
	return &State{
		IndentUnit:      indentUnit,
		Imports:         make(map[string]bool),
		Features:        make(map[string]bool),
		DeclaredClasses: make(map[string]bool),
	}
}

func (s *State) RequireImport(name string)  { s.Imports[name] = true }
func (s *State) RequireFeature(name string) { s.Features[name] = true }
func (s *State) HasFeature(name string) bool { return s.Features[name] }

func (s *State) Enter() { s.depth++ }
func (s *State) Leave() {
	if s.depth > 0 {
		s.depth--
	}
}

func (s *State) Indent() string { return strings.Repeat(s.IndentUnit, s.depth) }

// SortedImports and SortedFeatures give deterministic preamble ordering
// without depending on Go's randomized map iteration.
func (s *State) SortedImports() []string  { return sortedKeys(s.Imports) }
func (s *State) SortedFeatures() []string { return sortedKeys(s.Features) }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
