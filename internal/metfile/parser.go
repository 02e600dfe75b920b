package metfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ctessum/geom"

	"github.com/pveldhuizen/metcontrole/pkg/config"
)

// Block tags recognized by the scanner. The documents are not well-formed
// XML (no root element, unescaped text), so the scanner is line oriented.
const (
	tagVersie  = "VERSIE"
	tagReeks   = "REEKS"
	tagProfiel = "PROFIEL"
	tagMeting  = "METING"
)

// reeksPrefix strips a single leading "<letter>-" from series identifiers.
var reeksPrefix = regexp.MustCompile(`^\w-`)

// Parse parses one MET document and returns the parsed file plus every
// recorded validation error. Profiles with a fatal error are excluded from
// the result but never abort parsing of their siblings. A nil opts uses
// the default option set.
func Parse(text string, opts *config.Options) (*MetFile, []Error) {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	p := &parser{opts: opts}
	file := p.run(text)
	return file, p.errors
}

type parser struct {
	opts   *config.Options
	errors []Error
}

// rawLine is one tagged line with its position in the document.
type rawLine struct {
	text string
	line int
}

// rawProfile collects a <PROFIEL> header and its <METING> lines before the
// two-phase build: first all lines, then type coercion and checks over the
// completed list.
type rawProfile struct {
	header  rawLine
	metings []rawLine
}

func (p *parser) run(text string) *MetFile {
	file := &MetFile{}

	var series *Series
	var open *rawProfile

	finish := func() {
		if open != nil {
			p.finishProfile(open, series)
			open = nil
		}
	}

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "<"+tagVersie+">"):
			// Version header written by metfile generators; carries no data.

		case strings.HasPrefix(trimmed, "<"+tagReeks+">"):
			finish()
			series = p.parseSeries(blockContent(trimmed, tagReeks), lineNo)
			if series != nil {
				file.Series = append(file.Series, series)
			}

		case strings.HasPrefix(trimmed, "<"+tagProfiel+">"):
			finish()
			open = &rawProfile{
				header: rawLine{blockContent(trimmed, tagProfiel), lineNo},
			}

		case strings.HasPrefix(trimmed, "<"+tagMeting+">"):
			if open == nil {
				p.record(lineNo, CodeOrphanMeting,
					"measurement line outside a profile block")
				continue
			}
			open.metings = append(open.metings,
				rawLine{blockContent(trimmed, tagMeting), lineNo})

		case strings.HasPrefix(trimmed, "</"+tagProfiel+">"):
			finish()
		}
	}
	finish()

	return file
}

// blockContent returns the text of a one-line tagged block, with the
// closing tag stripped when present.
func blockContent(line, tag string) string {
	s := strings.TrimPrefix(line, "<"+tag+">")
	s = strings.TrimSuffix(s, "</"+tag+">")
	return s
}

func (p *parser) parseSeries(content string, lineNo int) *Series {
	fields := strings.Split(content, ",")
	if len(fields) < 2 {
		p.record(lineNo, CodeReeksFields,
			fmt.Sprintf("%d fields in series header, need at least 2: %s",
				len(fields), content))
		if fields[0] == "" {
			return nil
		}
		return &Series{
			Name:       reeksPrefix.ReplaceAllString(strings.TrimSpace(fields[0]), ""),
			LineNumber: lineNo,
		}
	}
	return &Series{
		Name:        reeksPrefix.ReplaceAllString(strings.TrimSpace(fields[0]), ""),
		Description: strings.TrimSpace(fields[1]),
		LineNumber:  lineNo,
	}
}

// finishProfile builds a Profile from a completed raw block, runs the
// content checks and, when no fatal error was recorded, attaches the
// profile to its series.
func (p *parser) finishProfile(raw *rawProfile, series *Series) {
	before := len(p.errors)

	prof := p.parseProfileHeader(raw.header)
	if prof == nil {
		return
	}

	for _, m := range raw.metings {
		meas := p.parseMeting(m)
		if meas != nil {
			prof.Measurements = append(prof.Measurements, meas)
		}
	}

	p.checkProfile(prof)

	if series == nil {
		p.record(prof.LineNumber, CodeOrphanProfiel,
			fmt.Sprintf("profile %s declared before any series", prof.ID))
		return
	}

	for _, e := range p.errors[before:] {
		if !e.Advisory() {
			return
		}
	}
	series.Profiles = append(series.Profiles, prof)
}

func (p *parser) parseProfileHeader(header rawLine) *Profile {
	fields := strings.Split(header.text, ",")
	if len(fields) != 11 {
		p.record(header.line, CodeProfielFields,
			fmt.Sprintf("%d fields in profile header, expected 11: %s",
				len(fields), header.text))
		return nil
	}

	prof := &Profile{
		ID:              strings.TrimSpace(fields[0]),
		Description:     strings.TrimSpace(fields[1]),
		DateMeasurement: strings.TrimSpace(fields[2]),
		RefLevelUnit:    strings.TrimSpace(fields[4]),
		CoordinateMode:  strings.TrimSpace(fields[5]),
		PlacementMode:   strings.TrimSpace(fields[7]),
		LineNumber:      header.line,
	}

	var err error
	if prof.RefLevelValue, err = parseFloat(fields[3]); err != nil {
		p.record(header.line, CodeProfielFields,
			fmt.Sprintf("profile %s: bad reference level value %q", prof.ID, fields[3]))
		return nil
	}
	if prof.NumZValues, err = parseInt(fields[6]); err != nil {
		p.record(header.line, CodeProfielFields,
			fmt.Sprintf("profile %s: bad elevation value count %q", prof.ID, fields[6]))
		return nil
	}
	x, errX := parseFloat(fields[8])
	y, errY := parseFloat(fields[9])
	if errX != nil || errY != nil {
		p.record(header.line, CodeProfielFields,
			fmt.Sprintf("profile %s: bad start point %q,%q", prof.ID, fields[8], fields[9]))
		return nil
	}
	prof.Start = geom.Point{X: x, Y: y}

	return prof
}

func (p *parser) parseMeting(line rawLine) *Measurement {
	fields := strings.Split(line.text, ",")
	if len(fields) != 6 {
		p.record(line.line, CodeMetingFields,
			fmt.Sprintf("%d fields in measurement line, expected 6: %s",
				len(fields), line.text))
		return nil
	}

	m := &Measurement{
		PointType:  strings.TrimSpace(fields[0]),
		LineNumber: line.line,
	}

	var err error
	if m.Sequence, err = parseInt(fields[1]); err != nil {
		p.record(line.line, CodeMetingFields,
			fmt.Sprintf("bad sequence number %q", fields[1]))
		return nil
	}
	x, errX := parseFloat(fields[2])
	y, errY := parseFloat(fields[3])
	bottom, errB := parseFloat(fields[4])
	top, errT := parseFloat(fields[5])
	if errX != nil || errY != nil || errB != nil || errT != nil {
		p.record(line.line, CodeMetingFields,
			fmt.Sprintf("bad numeric field in measurement line: %s", line.text))
		return nil
	}
	m.Position = geom.Point{X: x, Y: y}
	m.Bottom = bottom
	m.Top = top

	return m
}

func (p *parser) record(line int, code, message string) {
	p.errors = append(p.errors, Error{Line: line, Code: code, Message: message})
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
