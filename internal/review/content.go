// Package review implements the rule-based auto-review engine for pipe and
// manhole inspection findings. Operators supply threshold tables as CSV
// files; each row compiles to a rule that classifies an observation as
// "Waarschuwing" (warn), "Ingrijp" (intervene), or no action.
package review

import (
	"strconv"
	"strings"
)

// Operators produced by the cell DSL.
const (
	OpEquals   = "=="
	OpIn       = "in"
	OpWildcard = "and"
)

// comparison operators in the order the original table format probes them.
var comparisonOps = []string{">=", "<=", "<", ">", "=", "=="}

// Content is one parsed table-cell value: empty, the wildcard, a value
// list, or a scalar with an optional comparison operator.
type Content struct {
	Values   []string // upper-cased; nil when the cell is empty
	Wildcard bool
}

// Empty reports whether the cell held no value at all.
func (c Content) Empty() bool {
	return !c.Wildcard && len(c.Values) == 0
}

// Scalar returns the single value of a non-list cell, or "" when empty.
func (c Content) Scalar() string {
	if len(c.Values) == 0 {
		return ""
	}
	return c.Values[0]
}

// Intersects reports whether two contents share a value, treating scalars
// as one-element lists. The wildcard matches anything non-empty.
func (c Content) Intersects(other Content) bool {
	if c.Wildcard || other.Wildcard {
		return true
	}
	for _, v := range c.Values {
		for _, w := range other.Values {
			if v == w {
				return true
			}
		}
	}
	return false
}

// ParseContent resolves one raw cell to its content and operator:
// blank cells parse to an empty content with no operator; "ALLE" or "*" to
// the wildcard; delimited cells to a value list with the containment
// operator; cells carrying a comparison symbol to a scalar with that
// operator; anything else to a scalar compared with equality. The
// conjunction words EN and OF are rewritten to list delimiters first,
// exactly as the original tables rely on.
func ParseContent(s string) (Content, string) {
	val := strings.TrimSpace(s)
	if val == "" {
		return Content{}, ""
	}

	val = strings.ToUpper(val)
	val = strings.ReplaceAll(val, "EN", ",")
	val = strings.ReplaceAll(val, "OF", ",")

	if strings.Contains(val, "ALLE") || val == "*" {
		return Content{Wildcard: true}, OpWildcard
	}

	for _, delim := range []string{",", ";", " "} {
		if strings.Contains(val, delim) {
			var values []string
			for _, part := range strings.Split(val, delim) {
				values = append(values, strings.TrimSpace(part))
			}
			return Content{Values: values}, OpIn
		}
	}

	oper := OpEquals
	for _, op := range comparisonOps {
		if strings.Contains(val, op) {
			oper = op
			val = strings.TrimSpace(strings.Replace(val, op, "", 1))
			break
		}
	}

	return Content{Values: []string{val}}, oper
}

// evalThreshold evaluates an observation value against a parsed threshold.
// Both sides are coerced to numbers when possible; incomparable operands
// evaluate to false, never panic.
func evalThreshold(value string, op string, threshold Content) bool {
	if op == "" || threshold.Empty() {
		return false
	}
	if threshold.Wildcard {
		return true
	}

	value = strings.ToUpper(strings.TrimSpace(value))

	if op == OpIn {
		for _, v := range threshold.Values {
			if v == value {
				return true
			}
		}
		return false
	}

	thr := threshold.Scalar()
	lf, lerr := strconv.ParseFloat(value, 64)
	rf, rerr := strconv.ParseFloat(thr, 64)
	numeric := lerr == nil && rerr == nil

	switch op {
	case "<":
		if numeric {
			return lf < rf
		}
		return value < thr
	case "<=":
		if numeric {
			return lf <= rf
		}
		return value <= thr
	case ">":
		if numeric {
			return lf > rf
		}
		return value > thr
	case ">=":
		if numeric {
			return lf >= rf
		}
		return value >= thr
	case "=", OpEquals:
		if numeric {
			return lf == rf
		}
		return value == thr
	}
	return false
}
