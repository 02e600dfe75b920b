package reference

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ctessum/geom/encoding/shp"
)

// Attribute names of the reference shapefiles (DBF names are limited to 10
// characters, hence the truncated forms).
const (
	fieldSegmentIdent    = "BR_IDENT"
	fieldSegmentName     = "NAAM_WTRG"
	fieldWinterLevel     = "WINTERPEIL"
	fieldMaintenanceNAP  = "OH_D_NAP"
	fieldAboveDesignM3   = "SLIB_VB_M3"
	fieldBelowDesignM3   = "SLIB_OD_M3"
	fieldLocationHydro   = "HYDRO_CODE"
	fieldLocationProfile = "PROFIEL_NA"
	fieldSampleInterval  = "BEP_AFSTAN"
)

// LoadChannelSegments reads a Hydrovakken shapefile into the store. Rows
// without an identifier are skipped; duplicate identifiers keep the first
// row.
func LoadChannelSegments(store *MemoryStore, scope, path string) error {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return fmt.Errorf("failed to open channel segment shapefile %s: %w", path, err)
	}

	names := fieldNames(d)
	for {
		_, fields, more := d.DecodeRowFields(names...)
		if !more {
			break
		}

		ident := strings.TrimSpace(removeNull(fields[fieldSegmentIdent]))
		if ident == "" {
			continue
		}
		seg := &ChannelSegment{
			Scope: scope,
			Ident: ident,
			Name:  strings.TrimSpace(removeNull(fields[fieldSegmentName])),
		}
		if seg.WinterLevel, err = attrFloat(fields, fieldWinterLevel); err != nil {
			return fmt.Errorf("segment %s: %w", ident, err)
		}
		if seg.MaintenanceDepth, err = attrFloat(fields, fieldMaintenanceNAP); err != nil {
			return fmt.Errorf("segment %s: %w", ident, err)
		}
		if seg.AboveDesignM3, err = attrFloat(fields, fieldAboveDesignM3); err != nil {
			return fmt.Errorf("segment %s: %w", ident, err)
		}
		if seg.BelowDesignM3, err = attrFloat(fields, fieldBelowDesignM3); err != nil {
			return fmt.Errorf("segment %s: %w", ident, err)
		}
		store.AddSegment(seg)
	}

	if err := d.Error(); err != nil {
		return fmt.Errorf("failed to decode channel segment shapefile %s: %w", path, err)
	}
	return nil
}

// LoadExpectedLocations reads a DWP profile-location shapefile into the
// store.
func LoadExpectedLocations(store *MemoryStore, path string) error {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return fmt.Errorf("failed to open location shapefile %s: %w", path, err)
	}

	names := fieldNames(d)
	for {
		_, fields, more := d.DecodeRowFields(names...)
		if !more {
			break
		}

		loc := &ExpectedLocation{
			HydroCode:   strings.TrimSpace(removeNull(fields[fieldLocationHydro])),
			ProfileName: strings.TrimSpace(removeNull(fields[fieldLocationProfile])),
		}
		if loc.HydroCode == "" || loc.ProfileName == "" {
			continue
		}
		if loc.SamplingInterval, err = attrFloat(fields, fieldSampleInterval); err != nil {
			return fmt.Errorf("location %s/%s: %w", loc.HydroCode, loc.ProfileName, err)
		}
		store.AddLocation(loc)
	}

	if err := d.Error(); err != nil {
		return fmt.Errorf("failed to decode location shapefile %s: %w", path, err)
	}
	return nil
}

func fieldNames(d *shp.Decoder) []string {
	var names []string
	for _, f := range d.Fields() {
		names = append(names, shpFieldName2String(f.Name))
	}
	return names
}

func shpFieldName2String(name [11]byte) string {
	b := bytes.Trim(name[:], "\x00")
	n := bytes.Index(b, []byte{0})
	if n == -1 {
		n = len(b)
	}
	return strings.TrimSpace(string(b[0:n]))
}

func attrFloat(fields map[string]string, name string) (float64, error) {
	s, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("shapefile has no %s attribute", name)
	}
	s = strings.TrimSpace(removeNull(s))
	if s == "" || strings.Trim(s, "*") == "" { // DBF null markers
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s value %q: %w", name, s, err)
	}
	return f, nil
}

func removeNull(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
