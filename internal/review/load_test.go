package review

import (
	"strings"
	"testing"
)

func TestLoadFilterTable(t *testing.T) {
	csv := strings.Join([]string{
		"tag,value,tag,value,trigger,warn,intervene",
		"<A>,BAF,<B>,X,<D></D>,5,>10",
		"<A>,BAG,,,<D></D>,>3,",
		",,,,,,", // blank row, skipped
	}, "\n")

	table, err := LoadFilterTable(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadFilterTable: %v", err)
	}
	if len(table.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(table.Rules))
	}

	obs := &Observation{}
	obs.AddField(NewField("A", "BAF"))
	obs.AddField(NewField("B", "X"))
	obs.AddField(NewField("D", "12"))
	if got := table.TestObservation(obs); got != ResultIntervene {
		t.Errorf("observation above intervene threshold: got %v", got)
	}
}

func TestLoadFilterTableEmpty(t *testing.T) {
	if _, err := LoadFilterTable(strings.NewReader("")); err == nil {
		t.Error("expected an error for an empty filter table")
	}
}

func TestParseRuleRows(t *testing.T) {
	csv := strings.Join([]string{
		"Hoofdcode,Karakterisering 1,Karakterisering 2,Ingrijp,Waarschuwing",
		"BAF,X,Y,>10,>5",
		`"BAG,BAH",X,Y,,warn_val`,
	}, "\n")

	flat, err := ParseRuleRows(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseRuleRows: %v", err)
	}
	// 1 single-valued row plus a two-way main-code expansion.
	if len(flat) != 3 {
		t.Fatalf("expected 3 flat rules, got %d", len(flat))
	}
	if flat[1].Main != "BAG" || flat[2].Main != "BAH" {
		t.Errorf("expanded main codes: got %q, %q", flat[1].Main, flat[2].Main)
	}
	if flat[1].Warn != "warn_val" || flat[1].Intervene != "" {
		t.Errorf("expanded thresholds: got warn %q intervene %q",
			flat[1].Warn, flat[1].Intervene)
	}
}

func TestParseRuleRowsWrongColumnCount(t *testing.T) {
	csv := "Hoofdcode,Karakterisering 1,Karakterisering 2,Ingrijp,Waarschuwing\nBAF,X,Y,>10\n"
	if _, err := ParseRuleRows(strings.NewReader(csv)); err == nil {
		t.Error("expected an error for a 4-column rule row")
	}
}
