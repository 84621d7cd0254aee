//go:build ruleguard

// Package gorules contains custom linting rules for golangci-lint via ruleguard.
package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// Base0IntParse detects integer parsing with automatic base detection.
//
// The old pattern:
//
//	v, err := strconv.ParseInt(s, 0, 64)
//
// Preferred pattern:
//
//	v, err := strconv.Atoi(s)
//
// BBS code fields (AOU, route, RPID) carry leading zeros in some file
// editions, and base 0 parses "0123" as octal and fails outright on "08".
// Code parsing must always use base 10.
func Base0IntParse(m dsl.Matcher) {
	m.Match(
		`strconv.ParseInt($s, 0, $size)`,
	).
		Report("base 0 infers octal from leading zeros; code fields need base 10, use strconv.Atoi($s) or ParseInt($s, 10, $size)")

	m.Match(
		`strconv.ParseUint($s, 0, $size)`,
	).
		Report("base 0 infers octal from leading zeros; code fields need base 10")
}

// CastIntOnCodes detects spf13/cast integer conversions on strings.
//
// The old pattern:
//
//	aou := cast.ToInt(row[i])
//
// Preferred pattern:
//
//	aou, err := strconv.Atoi(row[i])
//
// cast's string-to-int path goes through ParseInt with base 0, so
// zero-padded codes like "06280" break. Float coercion through cast is
// fine, only integer key fields are affected.
func CastIntOnCodes(m dsl.Matcher) {
	m.Match(
		`cast.ToInt($x)`,
		`cast.ToIntE($x)`,
		`cast.ToInt64($x)`,
		`cast.ToInt64E($x)`,
	).
		Where(m["x"].Type.Is(`string`)).
		Report("cast parses string ints with base 0 and breaks on zero-padded codes, use strconv.Atoi")
}
