package review

import (
	"fmt"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`^<([^>]+)>`)

// Field is one tagged value of an observation or mask, e.g. <A>BAF</A>.
type Field struct {
	Tag     string
	Content Content
	Op      string
}

// NewField builds a field from a raw tag cell (either "<A>...</A>" or a
// bare "A") and a raw content cell.
func NewField(tag, value string) Field {
	name, embedded := splitTag(tag)
	if value == "" {
		value = embedded
	}
	content, op := ParseContent(value)
	return Field{Tag: name, Content: content, Op: op}
}

// splitTag extracts the tag name and any embedded content from a
// "<tag>content</tag>" cell. Bare names pass through unchanged.
func splitTag(s string) (name, content string) {
	s = strings.TrimSpace(s)
	m := tagPattern.FindStringSubmatch(s)
	if m == nil {
		return s, ""
	}
	name = m[1]
	rest := s[len(m[0]):]
	return name, strings.TrimSuffix(rest, "</"+name+">")
}

// isTagCell reports whether a raw cell has the form <tag>...</tag>; used
// to find the trigger column in mask tables.
func isTagCell(s string) bool {
	s = strings.TrimSpace(s)
	m := tagPattern.FindStringSubmatch(s)
	return m != nil && strings.HasSuffix(s, "</"+m[1]+">")
}

// Trigger reports whether this is the mask field whose tag names the
// observation value the thresholds test; it has a tag but no content.
func (f Field) Trigger() bool {
	return f.Tag != "" && f.Content.Empty()
}

// Complete reports whether both tag and content are set.
func (f Field) Complete() bool {
	return f.Tag != "" && !f.Content.Empty()
}

// Valid reports whether the field can appear in a mask.
func (f Field) Valid() bool {
	return f.Complete() || f.Trigger()
}

// Matches reports field equality: same tag, and intersecting contents or a
// wildcard on either side.
func (f Field) Matches(other Field) bool {
	if f.Tag != other.Tag {
		return false
	}
	return f.Content.Intersects(other.Content)
}

func (f Field) String() string {
	content := strings.Join(f.Content.Values, ",")
	if f.Content.Wildcard {
		content = "*"
	}
	marker := ""
	if f.Trigger() {
		marker = "*"
	}
	return fmt.Sprintf("<%s>%s</%s>%s", f.Tag, content, f.Tag, marker)
}

// Observation is one inspection record to classify, as an unordered set of
// fields.
type Observation struct {
	Fields []Field
}

// AddField appends a valid field; invalid fields are dropped silently, as
// masks and observations tolerate sparse rows.
func (o *Observation) AddField(f Field) {
	if f.Valid() {
		o.Fields = append(o.Fields, f)
	}
}

// ByTag returns the first field with the given tag, or nil.
func (o *Observation) ByTag(tag string) *Field {
	for i := range o.Fields {
		if o.Fields[i].Tag == tag {
			return &o.Fields[i]
		}
	}
	return nil
}

// Contains reports whether a mask field is present with matching content.
func (o *Observation) Contains(f Field) bool {
	found := o.ByTag(f.Tag)
	return found != nil && found.Matches(f)
}

func (o *Observation) String() string {
	parts := make([]string, 0, len(o.Fields))
	for _, f := range o.Fields {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, " ")
}

// ObservationMask filters observations. It must contain exactly one
// trigger field; all other fields must be complete.
type ObservationMask struct {
	Observation
}

// Valid reports whether the mask has exactly one trigger field and no
// incomplete fields.
func (m *ObservationMask) Valid() bool {
	triggers := 0
	for _, f := range m.Fields {
		if !f.Valid() {
			return false
		}
		if f.Trigger() {
			triggers++
		}
	}
	return triggers == 1
}

// TriggerField returns the mask's single trigger field, or nil when the
// mask is malformed.
func (m *ObservationMask) TriggerField() *Field {
	var trigger *Field
	for i := range m.Fields {
		if m.Fields[i].Trigger() {
			if trigger != nil {
				return nil
			}
			trigger = &m.Fields[i]
		}
	}
	return trigger
}

// AppliesTo reports whether every non-trigger field of the mask appears in
// the observation with matching content, and the trigger tag is present.
func (m *ObservationMask) AppliesTo(obs *Observation) bool {
	trigger := m.TriggerField()
	if trigger == nil {
		return false
	}
	for _, f := range m.Fields {
		if f.Trigger() {
			continue
		}
		if !obs.Contains(f) {
			return false
		}
	}
	return obs.ByTag(trigger.Tag) != nil
}
