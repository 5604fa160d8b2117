package models

// SectionStyle selects the typeface a section is rendered with.
type SectionStyle int

const (
	// StyleBody is the regular paragraph font.
	StyleBody SectionStyle = iota
	// StyleTitle is the bold, centred heading font.
	StyleTitle
)

// Section is one labelled line of the report.
//
// Label is a stable machine name ("title", "top.item", "average", ...) so tests
// and sinks can address sections without matching on text. SpaceAfter is the
// vertical gap, in millimetres, left below the line.
type Section struct {
	Label      string
	Style      SectionStyle
	Text       string
	SpaceAfter float64
}

// Document is the rendering-independent report: an ordered list of sections.
type Document struct {
	Sections []Section
}

// Find returns the first section with the given label.
func (d Document) Find(label string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Label == label {
			return s, true
		}
	}
	return Section{}, false
}
