package review

import (
	"fmt"
	"strings"
)

// Result classifies one rule evaluation.
type Result string

const (
	ResultIntervene   Result = "INTERVENE"
	ResultWarn        Result = "WARN"
	ResultNoAction    Result = "NOACTION"
	ResultNoRule      Result = "NORULE"
	ResultMaskInvalid Result = "MASKINVALID"
)

// Remedy strings written into the Herstelmaatregel field.
const (
	ActionWarn      = "Waarschuwing"
	ActionIntervene = "Ingrijp"
)

// ActionText maps evaluation results onto remedy strings; NOACTION maps to
// the empty string.
var ActionText = map[Result]string{
	ResultWarn:      ActionWarn,
	ResultIntervene: ActionIntervene,
	ResultNoAction:  "",
}

// Rule is one filter rule: an observation mask plus warn and intervene
// thresholds for the mask's trigger field.
type Rule struct {
	Mask *ObservationMask

	warnThreshold      Content
	warnOp             string
	interveneThreshold Content
	interveneOp        string
}

// NewRule builds a rule from a mask and the raw warn/intervene threshold
// cells.
func NewRule(mask *ObservationMask, warn, intervene string) *Rule {
	r := &Rule{Mask: mask}
	r.warnThreshold, r.warnOp = ParseContent(warn)
	r.interveneThreshold, r.interveneOp = ParseContent(intervene)
	return r
}

// Valid reports whether the rule can ever classify anything: a valid mask
// and at least one threshold.
func (r *Rule) Valid() bool {
	return r.Mask.Valid() &&
		(!r.warnThreshold.Empty() || !r.interveneThreshold.Empty())
}

// ApplyTo evaluates the rule against one observation. The intervene
// threshold is always tested before the warn threshold, so a value
// exceeding both classifies as INTERVENE.
func (r *Rule) ApplyTo(obs *Observation) Result {
	if !r.Mask.Valid() {
		return ResultMaskInvalid
	}
	if !r.Mask.AppliesTo(obs) {
		return ResultNoRule
	}

	value := obs.ByTag(r.Mask.TriggerField().Tag).Content.Scalar()
	if evalThreshold(value, r.interveneOp, r.interveneThreshold) {
		return ResultIntervene
	}
	if evalThreshold(value, r.warnOp, r.warnThreshold) {
		return ResultWarn
	}
	return ResultNoAction
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s WARN %s %s INTERVENE %s %s",
		r.Mask.String(),
		r.warnOp, strings.Join(r.warnThreshold.Values, ","),
		r.interveneOp, strings.Join(r.interveneThreshold.Values, ","))
}

// FilterTable is an ordered list of rules.
type FilterTable struct {
	Rules []*Rule
}

// AddRule appends a rule; invalid rules are dropped.
func (t *FilterTable) AddRule(r *Rule) {
	if r.Valid() {
		t.Rules = append(t.Rules, r)
	}
}

// TestObservation evaluates the observation against every rule in order.
// The first WARN or INTERVENE wins; otherwise the last result that was not
// NORULE wins, and NORULE when no rule applied at all.
func (t *FilterTable) TestObservation(obs *Observation) Result {
	result := ResultNoRule
	for _, r := range t.Rules {
		res := r.ApplyTo(obs)
		if res == ResultWarn || res == ResultIntervene {
			return res
		}
		if res != ResultNoRule {
			result = res
		}
	}
	return result
}

// ApplyToReviews classifies every inspection record in the reviews
// document that has no remedy filled in yet; manual overrides always win.
func (t *FilterTable) ApplyToReviews(doc map[string]any) map[string]any {
	applyToDocument(doc, func(record map[string]any) string {
		obs := &Observation{}
		for key, value := range record {
			obs.AddField(NewField(key, fmt.Sprint(value)))
		}
		res := t.TestObservation(obs)
		action, ok := ActionText[res]
		if !ok {
			return ""
		}
		return action
	})
	return doc
}
