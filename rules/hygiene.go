//go:build ruleguard

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// MinMaxBuiltin detects manual min/max implementations and suggests the
// built-in min/max functions.
//
// Old patterns:
//
//	if a < b {
//	    result = a
//	} else {
//	    result = b
//	}
//
//	result := int(math.Min(float64(a), float64(b)))
//
// New pattern (Go 1.21+):
//
//	result := min(a, b)
//
// Year-span and truncation code accumulates these by hand easily.
//
// See: https://pkg.go.dev/builtin#min
func MinMaxBuiltin(m dsl.Matcher) {
	m.Match(
		`int(math.Min(float64($a), float64($b)))`,
	).
		Report("use min($a, $b) instead of int(math.Min(float64(...))) (Go 1.21+)").
		Suggest("min($a, $b)")

	m.Match(
		`int(math.Max(float64($a), float64($b)))`,
	).
		Report("use max($a, $b) instead of int(math.Max(float64(...))) (Go 1.21+)").
		Suggest("max($a, $b)")

	m.Match(`if $a < $b { $x = $a } else { $x = $b }`).
		Report("use $x = min($a, $b) (Go 1.21+)").
		Suggest("$x = min($a, $b)")

	m.Match(`if $a > $b { $x = $a } else { $x = $b }`).
		Report("use $x = max($a, $b) (Go 1.21+)").
		Suggest("$x = max($a, $b)")
}

// TimeFormatConstants detects magic date/time format strings and suggests
// the named constants added in Go 1.20.
//
// Old pattern:
//
//	t.Format("2006-01-02 15:04:05")
//
// New pattern (Go 1.20+):
//
//	t.Format(time.DateTime)
//
// See: https://pkg.go.dev/time#pkg-constants
func TimeFormatConstants(m dsl.Matcher) {
	m.Match(`$t.Format("2006-01-02 15:04:05")`).
		Report("use time.DateTime constant (Go 1.20+)").
		Suggest(`$t.Format(time.DateTime)`)

	m.Match(`$t.Format("2006-01-02")`).
		Report("use time.DateOnly constant (Go 1.20+)").
		Suggest(`$t.Format(time.DateOnly)`)

	m.Match(`$t.Format("15:04:05")`).
		Report("use time.TimeOnly constant (Go 1.20+)").
		Suggest(`$t.Format(time.TimeOnly)`)
}

// InterfaceToAny detects the spelled-out empty interface type.
//
// Old pattern:
//
//	func log(args map[string]interface{})
//
// New pattern (Go 1.18+):
//
//	func log(args map[string]any)
func InterfaceToAny(m dsl.Matcher) {
	m.Match(`interface{}`).
		Report("use any instead of interface{} (Go 1.18+)").
		Suggest("any")
}
