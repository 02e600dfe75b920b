package app

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/pveldhuizen/metcontrole/internal/reference"
)

const metDocument = `<VERSIE>1.0</VERSIE>
<REEKS>W-H001,Polder Oost,</REEKS>
<PROFIEL>P01,dwarsprofiel 1,20240315,0.00,NAP,ABS,2,XY,125000.00,455000.00,</PROFIEL>
<METING>22,999,125000.00,455000.00,-1.50,-1.50</METING>
<METING>99,999,125003.00,455000.00,-2.80,-2.40</METING>
<METING>99,999,125006.00,455000.00,-2.90,-2.50</METING>
<METING>22,999,125010.00,455000.00,-1.50,-1.50</METING>
</PROFIEL>
`

func testStore() *reference.MemoryStore {
	store := reference.NewMemoryStore()
	store.AddSegment(&reference.ChannelSegment{
		Scope:            "proj",
		Ident:            "H001",
		Name:             "Hoofdwatergang",
		WinterLevel:      -2.0,
		MaintenanceDepth: -4.0,
		AboveDesignM3:    1000,
		BelowDesignM3:    500,
	})
	store.AddLocation(&reference.ExpectedLocation{
		HydroCode:        "H001",
		ProfileName:      "P01",
		SamplingInterval: 50,
	})
	return store
}

func TestProcessDocument(t *testing.T) {
	a := New(nil, testStore(), zap.NewNop().Sugar())

	fr := a.ProcessDocument("proj", metDocument)
	if len(fr.Errors) != 0 {
		t.Fatalf("expected no parse errors, got %v", fr.Errors)
	}
	if len(fr.Profiles) != 1 {
		t.Fatalf("expected 1 profile result, got %d", len(fr.Profiles))
	}

	result := fr.Profiles[0]
	if result.Err != "" {
		t.Fatalf("profile processing failed: %s", result.Err)
	}
	if result.Series != "H001" || result.Profile != "P01" {
		t.Errorf("result identity: got %s/%s", result.Series, result.Profile)
	}
	if result.Width != 10.0 {
		t.Errorf("width: got %v, want 10", result.Width)
	}
	if result.DredgeArea <= 0 {
		t.Errorf("dredge area: got %v, want positive", result.DredgeArea)
	}
}

func TestProcessDocumentUnknownSegment(t *testing.T) {
	// An empty store: the profile parses but both lookups fail; the batch
	// records the failure instead of aborting.
	a := New(nil, reference.NewMemoryStore(), zap.NewNop().Sugar())

	fr := a.ProcessDocument("proj", metDocument)
	if len(fr.Profiles) != 1 {
		t.Fatalf("expected 1 profile result, got %d", len(fr.Profiles))
	}
	if fr.Profiles[0].Err == "" {
		t.Error("expected a recorded lookup failure")
	}
}

func TestRunResetsAccumulators(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peilingen.met")
	if err := os.WriteFile(path, []byte(metDocument), 0o644); err != nil {
		t.Fatalf("writing MET file: %v", err)
	}

	store := testStore()
	a := New(nil, store, zap.NewNop().Sugar())

	first, err := a.Run("proj", []string{path})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := a.Run("proj", []string{path})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if len(first.Segments) != 1 || len(second.Segments) != 1 {
		t.Fatalf("segment summaries: %d and %d, want 1 each",
			len(first.Segments), len(second.Segments))
	}
	if first.Segments[0].MeasuredAboveCL != second.Segments[0].MeasuredAboveCL {
		t.Errorf("second run accumulated on top of the first: %v vs %v",
			first.Segments[0].MeasuredAboveCL, second.Segments[0].MeasuredAboveCL)
	}
	if first.Segments[0].MeasuredAboveCL <= 0 {
		t.Errorf("accumulated volume: got %v, want positive", first.Segments[0].MeasuredAboveCL)
	}
}

func TestFindProjectFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Hydrovakken_proj.shp": "",
		"DWP_proj.shp":         "",
		"peilingen.met":        metDocument,
		"readme.txt":           "niet relevant",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	pf, err := FindProjectFiles(dir)
	if err != nil {
		t.Fatalf("FindProjectFiles: %v", err)
	}
	if len(pf.SegmentShapes) != 1 || len(pf.LocationShapes) != 1 || len(pf.MetFiles) != 1 {
		t.Errorf("classified files: %d/%d/%d, want 1/1/1",
			len(pf.SegmentShapes), len(pf.LocationShapes), len(pf.MetFiles))
	}
	if pf.Name != filepath.Base(dir) {
		t.Errorf("project name: got %q", pf.Name)
	}
}

func TestRunWithoutMetFiles(t *testing.T) {
	a := New(nil, testStore(), zap.NewNop().Sugar())
	if _, err := a.RunProject(t.TempDir()); err == nil {
		t.Error("expected an error for a project without MET files")
	}
}
