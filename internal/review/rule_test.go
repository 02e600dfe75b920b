package review

import "testing"

// maskFor builds a mask matching observations with <A>main</A> and a
// trigger on tag D.
func maskFor(main string) *ObservationMask {
	mask := &ObservationMask{}
	mask.AddField(NewField("<A>"+main+"</A>", ""))
	mask.AddField(NewField("<D></D>", ""))
	return mask
}

// observationFor builds an observation with an A code and a D quantity.
func observationFor(main, quantity string) *Observation {
	obs := &Observation{}
	obs.AddField(NewField("A", main))
	obs.AddField(NewField("D", quantity))
	return obs
}

func TestRuleApplyTo(t *testing.T) {
	rule := NewRule(maskFor("BAF"), "5", ">10")

	tests := []struct {
		name string
		obs  *Observation
		want Result
	}{
		{"intervene wins on high value", observationFor("BAF", "12"), ResultIntervene},
		{"warn on matching value", observationFor("BAF", "5"), ResultWarn},
		{"no action inside thresholds", observationFor("BAF", "3"), ResultNoAction},
		{"mask does not apply", observationFor("BAC", "12"), ResultNoRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.ApplyTo(tt.obs); got != tt.want {
				t.Errorf("ApplyTo: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleApplyToInvalidMask(t *testing.T) {
	// A mask without a trigger field can never classify.
	mask := &ObservationMask{}
	mask.AddField(NewField("<A>BAF</A>", ""))

	rule := NewRule(mask, "5", ">10")
	if got := rule.ApplyTo(observationFor("BAF", "12")); got != ResultMaskInvalid {
		t.Errorf("ApplyTo: got %v, want %v", got, ResultMaskInvalid)
	}
	if rule.Valid() {
		t.Error("rule with an invalid mask should not be valid")
	}
}

func TestObservationMaskValid(t *testing.T) {
	one := &ObservationMask{}
	one.AddField(NewField("<A>BAF</A>", ""))
	one.AddField(NewField("<D></D>", ""))
	if !one.Valid() {
		t.Error("mask with one trigger should be valid")
	}

	two := &ObservationMask{}
	two.AddField(NewField("<C></C>", ""))
	two.AddField(NewField("<D></D>", ""))
	if two.Valid() {
		t.Error("mask with two triggers should be invalid")
	}
}

func TestFilterTablePrecedence(t *testing.T) {
	table := &FilterTable{}
	table.AddRule(NewRule(maskFor("BAF"), "5", ">10"))
	table.AddRule(NewRule(maskFor("BAG"), ">3", ""))

	tests := []struct {
		name string
		obs  *Observation
		want Result
	}{
		{"first matching warn wins", observationFor("BAG", "4"), ResultWarn},
		{"applicable rule without hit keeps no action", observationFor("BAF", "1"), ResultNoAction},
		{"no applicable rule at all", observationFor("XXX", "4"), ResultNoRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.TestObservation(tt.obs); got != tt.want {
				t.Errorf("TestObservation: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterTableDropsInvalidRules(t *testing.T) {
	table := &FilterTable{}
	table.AddRule(NewRule(maskFor("BAF"), "", "")) // no thresholds
	if len(table.Rules) != 0 {
		t.Errorf("expected invalid rule to be dropped, table has %d rules", len(table.Rules))
	}
}

func TestApplyToReviews(t *testing.T) {
	table := &FilterTable{}
	table.AddRule(NewRule(maskFor("BAF"), "5", ">10"))

	doc := map[string]any{
		"pipes": []any{
			map[string]any{
				"ZC": []any{
					map[string]any{"A": "BAF", "D": "12", "Herstelmaatregel": ""},
					map[string]any{"A": "BAF", "D": "5", "Herstelmaatregel": ""},
					map[string]any{"A": "BAF", "D": "12", "Herstelmaatregel": "al hersteld"},
				},
			},
		},
	}

	table.ApplyToReviews(doc)

	records := doc["pipes"].([]any)[0].(map[string]any)["ZC"].([]any)
	if got := records[0].(map[string]any)["Herstelmaatregel"]; got != ActionIntervene {
		t.Errorf("record 0 remedy: got %v, want %q", got, ActionIntervene)
	}
	if got := records[1].(map[string]any)["Herstelmaatregel"]; got != ActionWarn {
		t.Errorf("record 1 remedy: got %v, want %q", got, ActionWarn)
	}
	if got := records[2].(map[string]any)["Herstelmaatregel"]; got != "al hersteld" {
		t.Errorf("manual remedy overwritten: got %v", got)
	}
}
