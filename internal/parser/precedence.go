package parser

import (
	"github.com/fablang/fabc/internal/ast"
	"github.com/fablang/fabc/internal/token"
)

// Precedence levels, lowest to highest, for the Pratt expression parser.
// Nullish (vel / ??) and logical-or (aut / ||) share precNullishOr: mixing
// them within the same unparenthesized chain is a parse error, checked in
// parseExpression rather than encoded as separate levels here. Range sits
// above the bitwise tier and below additive; shift is not a binary level
// at all — sinistrorsum/dextrorsum are postfix keyword operators folded
// into precCast alongside tamquam (spec.md §4.3).
const (
	precLowest     = iota
	precNullishOr  // vel / ?? / aut / || (shared level, mixing is an error)
	precLogicalAnd // et / &&
	precEquality   // == != est
	precComparison // < <= > >=
	precBitwiseOr  // |
	precBitwiseXor // ^
	precBitwiseAnd // &
	precRange      // .. usque
	precAdditive   // + -
	precMultiplic  // * / %
	precCast       // tamquam, and the postfix-keyword shift suffixes
	precPostfix    // . ?. ! () [] call/member/index chains
)

// precedenceOf returns the infix binding power of t, or precLowest if t does
// not start an infix/postfix operator at all.
func precedenceOf(t token.Token) int {
	switch {
	case t.IsPunct("??") || t.IsKeyword(token.KwVel):
		return precNullishOr
	case t.IsPunct("||") || t.IsKeyword(token.KwAut):
		return precNullishOr
	case t.IsPunct("&&") || t.IsKeyword(token.KwEt):
		return precLogicalAnd
	case t.IsPunct("==") || t.IsPunct("!=") || t.IsKeyword(token.KwEst):
		return precEquality
	case t.IsPunct("<") || t.IsPunct("<=") || t.IsPunct(">") || t.IsPunct(">="):
		return precComparison
	case t.IsPunct("|"):
		return precBitwiseOr
	case t.IsPunct("^"):
		return precBitwiseXor
	case t.IsPunct("&"):
		return precBitwiseAnd
	case t.IsPunct("..") || t.IsKeyword(token.KwUsque):
		return precRange
	case t.IsPunct("+") || t.IsPunct("-"):
		return precAdditive
	case t.IsPunct("*") || t.IsPunct("/") || t.IsPunct("%"):
		return precMultiplic
	case t.IsKeyword(token.KwTamquam), t.IsKeyword(token.KwSinistrorsum), t.IsKeyword(token.KwDextrorsum):
		return precCast
	case t.IsPunct(".") || t.IsPunct("?.") || t.IsPunct("!") || t.IsPunct("(") || t.IsPunct("["):
		return precPostfix
	default:
		return precLowest
	}
}

// isNullishOp reports which side of the shared precNullishOr level t is on
// (true for vel/??, false for aut/||), used by parseExpression's mixing
// check.
func isNullishOp(t token.Token) bool {
	return t.IsPunct("??") || t.IsKeyword(token.KwVel)
}

func binaryOpFor(t token.Token) (ast.BinaryOp, bool) {
	switch {
	case t.IsPunct("+"):
		return ast.BinAdd, true
	case t.IsPunct("-"):
		return ast.BinSub, true
	case t.IsPunct("*"):
		return ast.BinMul, true
	case t.IsPunct("/"):
		return ast.BinDiv, true
	case t.IsPunct("%"):
		return ast.BinMod, true
	case t.IsPunct("&"):
		return ast.BinBitAnd, true
	case t.IsPunct("|"):
		return ast.BinBitOr, true
	case t.IsPunct("^"):
		return ast.BinBitXor, true
	case t.IsPunct("=="):
		return ast.BinEq, true
	case t.IsPunct("!="):
		return ast.BinNotEq, true
	case t.IsPunct("<"):
		return ast.BinLess, true
	case t.IsPunct("<="):
		return ast.BinLessEq, true
	case t.IsPunct(">"):
		return ast.BinGreater, true
	case t.IsPunct(">="):
		return ast.BinGreaterEq, true
	case t.IsPunct("&&"), t.IsKeyword(token.KwEt):
		return ast.BinLogicalAnd, true
	case t.IsPunct("||"), t.IsKeyword(token.KwAut):
		return ast.BinLogicalOr, true
	case t.IsPunct("??"), t.IsKeyword(token.KwVel):
		return ast.BinNullish, true
	case t.IsPunct(".."):
		return ast.BinRange, true
	case t.IsKeyword(token.KwUsque):
		return ast.BinRangeIncl, true
	case t.IsKeyword(token.KwSinistrorsum):
		return ast.BinShiftLeft, true
	case t.IsKeyword(token.KwDextrorsum):
		return ast.BinShiftRight, true
	case t.IsKeyword(token.KwEst):
		return ast.BinTypeCheck, true
	default:
		return 0, false
	}
}
