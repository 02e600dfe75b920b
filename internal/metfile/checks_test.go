package metfile

import (
	"strings"
	"testing"

	"github.com/pveldhuizen/metcontrole/pkg/config"
)

// buildDocument assembles a single-series, single-profile document from a
// header line and measurement lines.
func buildDocument(header string, metings ...string) string {
	var b strings.Builder
	b.WriteString("<REEKS>12345,omschrijving,</REEKS>\n")
	b.WriteString("<PROFIEL>" + header + "</PROFIEL>\n")
	for _, m := range metings {
		b.WriteString("<METING>" + m + "</METING>\n")
	}
	b.WriteString("</PROFIEL>\n")
	return b.String()
}

const goodHeader = "P01,omschrijving,20240315,0.00,NAP,ABS,2,XY,125000.00,455000.00,"

func TestContentChecks(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		metings  []string
		code     string
		advisory bool
	}{
		{
			name:   "reference level unit not NAP",
			header: "P01,omschrijving,20240315,0.00,m,ABS,2,XY,125000.00,455000.00,",
			code:   CodeNAP,
		},
		{
			name:   "coordinate mode not ABS",
			header: "P01,omschrijving,20240315,0.00,NAP,REL,2,XY,125000.00,455000.00,",
			code:   CodeABS,
		},
		{
			name:   "reference level value not zero",
			header: "P01,omschrijving,20240315,1.20,NAP,ABS,2,XY,125000.00,455000.00,",
			code:   CodeRefLevelZero,
		},
		{
			name:   "declared elevation value count not two",
			header: "P01,omschrijving,20240315,0.00,NAP,ABS,1,XY,125000.00,455000.00,",
			code:   CodeTwoZValues,
		},
		{
			name:   "placement mode not XY",
			header: "P01,omschrijving,20240315,0.00,NAP,ABS,2,YZ,125000.00,455000.00,",
			code:   CodePlacingXY,
		},
		{
			name:    "fewer than two measurements",
			header:  goodHeader,
			metings: []string{"22,999,125000.00,455000.00,-1.50,-1.50"},
			code:    CodeTwoMeasurements,
		},
		{
			name:   "three waterline points",
			header: goodHeader,
			metings: []string{
				"22,999,125000.00,455000.00,-1.50,-1.50",
				"22,999,125005.00,455000.00,-1.50,-1.50",
				"22,999,125010.00,455000.00,-1.50,-1.50",
			},
			code: CodeTwo22Codes,
		},
		{
			name:   "boundary point not waterline type",
			header: goodHeader,
			metings: []string{
				"99,999,125000.00,455000.00,-1.50,-1.50",
				"22,999,125003.00,455000.00,-2.80,-2.40",
				"22,999,125010.00,455000.00,-1.50,-1.50",
			},
			code: Code22Outside,
		},
		{
			name:   "interior point not type 99",
			header: goodHeader,
			metings: []string{
				"22,999,125000.00,455000.00,-1.50,-1.50",
				"55,999,125003.00,455000.00,-2.80,-2.40",
				"22,999,125010.00,455000.00,-1.50,-1.50",
			},
			code: Code99Inside,
		},
		{
			name:   "first and last point share a coordinate",
			header: goodHeader,
			metings: []string{
				"22,999,125000.00,455000.00,-1.50,-1.50",
				"99,999,125003.00,455000.00,-2.80,-2.40",
				"22,999,125000.00,455000.00,-1.50,-1.50",
			},
			code: CodeLeftRightXY,
		},
		{
			name:   "waterline point elevations differ",
			header: goodHeader,
			metings: []string{
				"22,999,125000.00,455000.00,-1.50,-1.50",
				"99,999,125003.00,455000.00,-2.80,-2.40",
				"22,999,125010.00,455000.00,-1.20,-1.20",
			},
			code: CodeLeftRightEqual,
		},
		{
			name:   "hard bottom above waterline point",
			header: goodHeader,
			metings: []string{
				"22,999,125000.00,455000.00,-1.50,-1.50",
				"99,999,125003.00,455000.00,-1.00,-1.00",
				"22,999,125010.00,455000.00,-1.50,-1.50",
			},
			code: CodeZ1TooHigh,
		},
		{
			name:   "consecutive points too far apart",
			header: goodHeader,
			metings: []string{
				"22,999,125000.00,455000.00,-1.50,-1.50",
				"99,999,125008.00,455000.00,-2.80,-2.40",
				"22,999,125010.00,455000.00,-1.50,-1.50",
			},
			code:     CodeDistanceTooLarge,
			advisory: true,
		},
		{
			name:   "elevation below lowest allowed level",
			header: goodHeader,
			metings: []string{
				"22,999,125000.00,455000.00,-1.50,-1.50",
				"99,999,125003.00,455000.00,-30.00,-29.50",
				"22,999,125010.00,455000.00,-1.50,-1.50",
			},
			code:     CodeLevelTooLow,
			advisory: true,
		},
		{
			name:   "coordinate outside expected range",
			header: goodHeader,
			metings: []string{
				"22,999,125000.00,455000.00,-1.50,-1.50",
				"99,999,125003.00,455000.00,-2.80,-2.40",
				"22,999,400000.00,455000.00,-1.50,-1.50",
			},
			code:     CodeCoordinateOutOfRange,
			advisory: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Parse(buildDocument(tt.header, tt.metings...), nil)
			found := false
			for _, e := range errs {
				if e.Code == tt.code {
					found = true
					if e.Advisory() != tt.advisory {
						t.Errorf("%s advisory: got %v, want %v",
							tt.code, e.Advisory(), tt.advisory)
					}
				}
			}
			if !found {
				t.Errorf("expected error code %s, got %v", tt.code, errs)
			}
		})
	}
}

func TestContentChecksCanBeDisabled(t *testing.T) {
	opts := config.DefaultOptions()
	opts.Checks.CoordinateMode = false

	document := buildDocument(
		"P01,omschrijving,20240315,0.00,NAP,REL,2,XY,125000.00,455000.00,",
		"22,999,125000.00,455000.00,-1.50,-1.50",
		"99,999,125003.00,455000.00,-2.80,-2.40",
		"22,999,125010.00,455000.00,-1.50,-1.50",
	)

	file, errs := Parse(document, opts)
	if hasCode(errs, CodeABS) {
		t.Fatalf("disabled check still recorded: %v", errs)
	}
	if n := len(file.Series[0].Profiles); n != 1 {
		t.Errorf("expected 1 profile, got %d", n)
	}
}

func TestWaterwayWidthThreshold(t *testing.T) {
	opts := config.DefaultOptions()
	opts.MaxWaterwayWidth = 8.0
	opts.Checks.PointDistance = false

	document := buildDocument(goodHeader,
		"22,999,125000.00,455000.00,-1.50,-1.50",
		"99,999,125005.00,455000.00,-2.80,-2.40",
		"22,999,125010.00,455000.00,-1.50,-1.50",
	)

	file, errs := Parse(document, opts)
	if !hasCode(errs, CodeWaterwayTooWide) {
		t.Fatalf("expected %s for 10 m width over an 8 m limit, got %v",
			CodeWaterwayTooWide, errs)
	}
	// Advisory finding, profile kept.
	if n := len(file.Series[0].Profiles); n != 1 {
		t.Errorf("expected 1 profile, got %d", n)
	}
}
