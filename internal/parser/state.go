package parser

import "github.com/fablang/fabc/internal/token"

// parserState is a restorable cursor position. discerne case-arm parsing
// needs to try "pattern, pattern, pattern: body" against "pattern: guard
// expr" before committing, since a positional-binding list and a guard
// expression that happens to contain a comma are both grammatically
// plausible after one token of lookahead (spec.md §4.5 "ParserState"). Any
// errors recorded while the tried parse was later discarded must be
// discarded with it; save records p.errors' length alongside the cursor.
type parserState struct {
	pos    int // p.pos at save time (index of peek in p.tokens)
	errLen int // len(p.errors) at save time
}

// save captures the cursor and error-log length so a failed trial parse can
// be rewound without leaking its diagnostics.
func (p *Parser) save() parserState {
	return parserState{pos: p.pos, errLen: len(p.errors)}
}

// restore rewinds the Parser to a previously saved cursor position and
// discards any errors recorded since the save.
func (p *Parser) restore(s parserState) {
	p.pos = s.pos
	if s.pos-1 >= 0 && s.pos-1 < len(p.tokens) {
		p.cur = p.tokens[s.pos-1]
	} else {
		p.cur = token.Token{Kind: token.EOF}
	}
	if s.pos < len(p.tokens) {
		p.peek = p.tokens[s.pos]
	} else {
		p.peek = token.Token{Kind: token.EOF}
	}
	p.errors = p.errors[:s.errLen]
}
