package review

import (
	"strconv"
	"strings"
)

// FlatRule is one fully-expanded rule row: the three code columns plus the
// raw intervene and warn expressions, in the column order of the rule CSV
// (Hoofdcode, Karakterisering 1, Karakterisering 2, Ingrijp, Waarschuwing).
type FlatRule struct {
	Main      string
	Sub1      string
	Sub2      string
	Intervene string
	Warn      string
}

// Classifier evaluates one inspection quantity and returns the remedy
// string: "Ingrijp", "Waarschuwing", or "" for no action.
type Classifier func(value string) string

// RuleTree is the compiled three-level lookup: main code, first and second
// characterization code, to classifier.
type RuleTree map[string]map[string]map[string]Classifier

// Lookup returns the classifier for a code triple, or nil.
func (t RuleTree) Lookup(main, sub1, sub2 string) Classifier {
	if l1, ok := t[main]; ok {
		if l2, ok := l1[sub1]; ok {
			return l2[sub2]
		}
	}
	return nil
}

// FlattenRule expands comma-separated lists in any of the five columns
// into the full cartesian product of single-valued rules.
func FlattenRule(row [5]string) []FlatRule {
	bags := make([][]string, 5)
	for i, cell := range row {
		for _, part := range strings.Split(cell, ",") {
			bags[i] = append(bags[i], strings.TrimSpace(part))
		}
	}

	var flat []FlatRule
	for _, main := range bags[0] {
		for _, sub1 := range bags[1] {
			for _, sub2 := range bags[2] {
				for _, intervene := range bags[3] {
					for _, warn := range bags[4] {
						flat = append(flat, FlatRule{
							Main:      main,
							Sub1:      sub1,
							Sub2:      sub2,
							Intervene: intervene,
							Warn:      warn,
						})
					}
				}
			}
		}
	}
	return flat
}

// CompileRuleTree builds the lookup tree from a flat rule list. Rules that
// collide on the same code triple compose: both classifiers run and the
// more severe outcome wins (Ingrijp over Waarschuwing over nothing).
func CompileRuleTree(rules []FlatRule) RuleTree {
	tree := RuleTree{}
	for _, rule := range rules {
		l1, ok := tree[rule.Main]
		if !ok {
			l1 = map[string]map[string]Classifier{}
			tree[rule.Main] = l1
		}
		l2, ok := l1[rule.Sub1]
		if !ok {
			l2 = map[string]Classifier{}
			l1[rule.Sub1] = l2
		}

		classifier := compileClassifier(rule.Warn, rule.Intervene)
		if existing, ok := l2[rule.Sub2]; ok {
			classifier = combineClassifiers(existing, classifier)
		}
		l2[rule.Sub2] = classifier
	}
	return tree
}

// compileClassifier turns the warn and intervene expressions of one rule
// into a classifier. The intervene predicate always wins over warn.
func compileClassifier(warnExpr, interveneExpr string) Classifier {
	warn := compilePredicate(warnExpr)
	intervene := compilePredicate(interveneExpr)
	return func(value string) string {
		if intervene(value) {
			return ActionIntervene
		}
		if warn(value) {
			return ActionWarn
		}
		return ""
	}
}

// compilePredicate compiles one threshold expression: empty never matches;
// a leading < or > compares numerically (non-numeric input is false, never
// an error); anything else is exact string equality.
func compilePredicate(expr string) func(string) bool {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return func(string) bool { return false }
	case strings.HasPrefix(expr, ">"), strings.HasPrefix(expr, "<"):
		greater := strings.HasPrefix(expr, ">")
		threshold, err := strconv.ParseFloat(strings.TrimSpace(expr[1:]), 64)
		if err != nil {
			return func(string) bool { return false }
		}
		return func(value string) bool {
			v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return false
			}
			if greater {
				return v > threshold
			}
			return v < threshold
		}
	default:
		return func(value string) bool { return strings.TrimSpace(value) == expr }
	}
}

// combineClassifiers merges two classifiers for the same code triple:
// evaluate both, keep the more severe action.
func combineClassifiers(a, b Classifier) Classifier {
	return func(value string) string {
		ra, rb := a(value), b(value)
		if ra == ActionIntervene || rb == ActionIntervene {
			return ActionIntervene
		}
		if ra == ActionWarn || rb == ActionWarn {
			return ActionWarn
		}
		return ""
	}
}

// Inspection record keys in the reviews document.
const (
	keyMainCode   = "A"
	keySub1Code   = "B"
	keySub2Code   = "C"
	keyQuantity   = "D"
	keyRemedy     = "Herstelmaatregel"
	keyInspection = "ZC"
)

// ApplyRules fills the remedy field of every inspection record whose
// remedy is still empty, looking the record's code triple up in the tree
// and classifying its quantity. Records with a manual remedy are left
// untouched. The document is returned with rebuilt inspection lists.
func ApplyRules(tree RuleTree, doc map[string]any) map[string]any {
	applyToDocument(doc, func(record map[string]any) string {
		classifier := tree.Lookup(
			stringValue(record, keyMainCode),
			stringValue(record, keySub1Code),
			stringValue(record, keySub2Code))
		if classifier == nil {
			return ""
		}
		return classifier(stringValue(record, keyQuantity))
	})
	return doc
}

// applyToDocument walks the pipes and manholes of a reviews document and
// rewrites each inspection list as a rebuilt slice, assigning the remedy
// the classify callback produces. Iteration never mutates the collection
// being walked.
func applyToDocument(doc map[string]any, classify func(map[string]any) string) {
	for _, section := range []string{"pipes", "manholes"} {
		assets, ok := doc[section].([]any)
		if !ok {
			continue
		}
		for _, raw := range assets {
			asset, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			inspections, ok := asset[keyInspection].([]any)
			if !ok {
				continue
			}

			rebuilt := make([]any, 0, len(inspections))
			for _, rawRecord := range inspections {
				record, ok := rawRecord.(map[string]any)
				if !ok {
					rebuilt = append(rebuilt, rawRecord)
					continue
				}
				if stringValue(record, keyRemedy) == "" {
					if action := classify(record); action != "" {
						record[keyRemedy] = action
					}
				}
				rebuilt = append(rebuilt, record)
			}
			asset[keyInspection] = rebuilt
		}
	}
}

func stringValue(record map[string]any, key string) string {
	if v, ok := record[key].(string); ok {
		return v
	}
	return ""
}
