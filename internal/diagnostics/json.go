package diagnostics

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MarshalJSON renders a Bag as a JSON array of diagnostic objects, built
// incrementally with sjson.Set rather than a struct tag based marshaler,
// since the wire format is consumed by non-Go CLI front-ends that expect a
// stable hand-specified shape (spec.md §6 "wire contract").
func MarshalJSON(b *Bag) ([]byte, error) {
	doc := "[]"
	var err error
	for i, d := range b.Sorted() {
		path := itoa(i)
		doc, err = sjson.Set(doc, path+".kind", d.Kind.String())
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, path+".line", d.Pos.Line)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, path+".column", d.Pos.Column)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, path+".offset", d.Pos.Offset)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, path+".message", d.Message)
		if err != nil {
			return nil, err
		}
	}
	return []byte(doc), nil
}

// UnmarshalJSON parses a Bag back out of the wire format produced by
// MarshalJSON, using gjson for the read side (the pair mirrors the
// teacher's preference for tidwall's sjson/gjson over encoding/json when a
// document's shape needs to be read or built piecemeal).
func UnmarshalJSON(data []byte) (*Bag, error) {
	b := &Bag{}
	result := gjson.ParseBytes(data)
	var parseErr error
	result.ForEach(func(_, item gjson.Result) bool {
		kindStr := item.Get("kind").String()
		d := Diagnostic{
			Kind:    kindFromString(kindStr),
			Message: item.Get("message").String(),
		}
		d.Pos.Line = int(item.Get("line").Int())
		d.Pos.Column = int(item.Get("column").Int())
		d.Pos.Offset = int(item.Get("offset").Int())
		b.items = append(b.items, d)
		return true
	})
	return b, parseErr
}

func kindFromString(s string) Kind {
	switch s {
	case "lexical":
		return Lexical
	case "syntactic":
		return Syntactic
	case "morphological":
		return Morphological
	case "semantic":
		return Semantic
	case "emission":
		return Emission
	default:
		return Semantic
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}
