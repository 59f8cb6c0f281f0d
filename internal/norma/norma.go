// Package norma is the morphology-aware standard library registry: it maps
// collection methods spelled with inflected Latin verbs ("adde", "addita",
// "additura") onto each code-generation target's native call, and validates
// that a given inflected form is being used the way its morphology permits
// (spec.md §4.4 "Norma"). Grounded on the "one registry, two consumers"
// shape of the teacher's sibling repo's builtins table: the same static
// data feeds both the semantic pass's morphology check (internal/resolve)
// and the generators' call lowering.
package norma

import (
	"fmt"

	"github.com/maruel/natural"
)

// FormKind classifies how an inflected verb form behaves.
type FormKind int

const (
	// FormImperative is the bare stem form, e.g. "adde": mutates the
	// receiver in place and returns nothing.
	FormImperative FormKind = iota
	// FormParticiple is the perfect-passive-participle form, e.g. "addita":
	// leaves the receiver untouched and returns a new collection.
	FormParticiple
	// FormFuture is the future-active-participle form, e.g. "additura": not
	// yet backed by any target and always a diagnostic.
	FormFuture
)

func (k FormKind) String() string {
	switch k {
	case FormImperative:
		return "imperative"
	case FormParticiple:
		return "participle"
	case FormFuture:
		return "future"
	default:
		return "unknown"
	}
}

// latinLabel names a form kind the way a morphology diagnostic reports it
// (spec.md §8 scenario 2), distinct from String()'s plain-English label.
func (k FormKind) latinLabel() string {
	switch k {
	case FormImperative:
		return "imperativus"
	case FormParticiple:
		return "perfectum"
	case FormFuture:
		return "futurum_activum"
	default:
		return "ignotum"
	}
}

// MorphologyError formats the diagnostic text for a call site using a
// classified-but-undeclared form. Only the future-active-participle is
// ever undeclared — imperative and participle are always backed — so the
// "valid forms" list is always those two.
func MorphologyError(stem string, kind FormKind) string {
	return fmt.Sprintf("Morphology form '%s' not declared for stem '%s'. Valid forms: %s, %s",
		kind.latinLabel(), stem, FormImperative.latinLabel(), FormParticiple.latinLabel())
}

// RadixEntry is one verb's declared inflected surface (an `@radix`
// annotation's payload, or a built-in table entry of the same shape).
type RadixEntry struct {
	Stem       string
	Imperative string
	Participle string
	Future     string
}

// radixTable is the built-in stem table for the collection-mutation verbs
// named in spec.md's glossary. Stem holds the longest prefix common to all
// three declared forms, per the registry contract's own matching rule
// ("match the longest declared stem prefix, then classify the remainder as
// a declared form") — not the dictionary infinitive, so a diagnostic names
// "add" rather than "addo".
var radixTable = map[string]RadixEntry{
	"add":   {Stem: "add", Imperative: "adde", Participle: "addita", Future: "additura"},
	"rem":   {Stem: "rem", Imperative: "reme", Participle: "remota", Future: "remotura"},
	"inser": {Stem: "inser", Imperative: "inser", Participle: "inserta", Future: "insertura"},
	"purga": {Stem: "purga", Imperative: "purga", Participle: "purgata", Future: "purgatura"},
	"ver":   {Stem: "ver", Imperative: "verte", Participle: "versa", Future: "versura"},
	"mi":    {Stem: "mi", Imperative: "misce", Participle: "mixta", Future: "mixtura"},
}

// formIndex is built once from radixTable for O(1) inflected-form lookup.
var formIndex = func() map[string]struct {
	Entry RadixEntry
	Kind  FormKind
}{
	idx := make(map[string]struct {
		Entry RadixEntry
		Kind  FormKind
	}, len(radixTable)*3)
	for _, e := range radixTable {
		idx[e.Imperative] = struct {
			Entry RadixEntry
			Kind  FormKind
		}{e, FormImperative}
		idx[e.Participle] = struct {
			Entry RadixEntry
			Kind  FormKind
		}{e, FormParticiple}
		idx[e.Future] = struct {
			Entry RadixEntry
			Kind  FormKind
		}{e, FormFuture}
	}
	return idx
}()

// ClassifyForm reports which stem a surface word inflects from and how it
// behaves. ok is false for a word that matches no known radix at all (a
// plain method name, not a morphological verb).
func ClassifyForm(word string) (stem string, kind FormKind, ok bool) {
	entry, found := formIndex[word]
	if !found {
		return "", 0, false
	}
	return entry.Entry.Stem, entry.Kind, true
}

// RegisterRadix installs a user-declared `@radix` stem (spec.md §6
// annotation table), overriding any built-in entry of the same stem.
func RegisterRadix(e RadixEntry) {
	radixTable[e.Stem] = e
	formIndex[e.Imperative] = struct {
		Entry RadixEntry
		Kind  FormKind
	}{e, FormImperative}
	formIndex[e.Participle] = struct {
		Entry RadixEntry
		Kind  FormKind
	}{e, FormParticiple}
	formIndex[e.Future] = struct {
		Entry RadixEntry
		Kind  FormKind
	}{e, FormFuture}
}

// StemNames returns every registered stem, naturally sorted (so "add"
// sorts before "add2" the way a human lexicon would, and diagnostic
// listings don't leak Go's randomized map iteration order).
func StemNames() []string {
	names := make([]string, 0, len(radixTable))
	for stem := range radixTable {
		names = append(names, stem)
	}
	natural.Sort(names)
	return names
}
