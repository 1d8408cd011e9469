// Package catalog models spreadsheet product rows and the rules that decide
// which rows qualify for description generation.
package catalog

// Product is one spreadsheet row, mutable in place during a run. Columns the
// generator never touches are preserved verbatim in original so a processed
// file round-trips byte-identical outside the targeted field.
type Product struct {
	Code             string
	Name             string
	Description      string
	ShortDescription string

	// Image is the first image column; AllImages aggregates image, image2,
	// image3, ... in column order, separated by newlines.
	Image     string
	AllImages []string

	// Manufacturer and CategoryText feed the optional auto-link lookup.
	Manufacturer string
	CategoryText string

	// original holds the raw cell values in input column order.
	original []string
}

// NewProduct creates a product that remembers its raw input record.
func NewProduct(original []string) *Product {
	cp := make([]string, len(original))
	copy(cp, original)
	return &Product{original: cp}
}

// OriginalCell returns the raw input value of column idx, or "" when the row
// was shorter than the header.
func (p *Product) OriginalCell(idx int) string {
	if idx < 0 || idx >= len(p.original) {
		return ""
	}
	return p.original[idx]
}

// Clone returns an independent value copy. Runs mutate clones, never the
// loaded rows, so a cancelled run leaves the source data intact.
func (p *Product) Clone() *Product {
	cp := *p
	cp.original = make([]string, len(p.original))
	copy(cp.original, p.original)
	cp.AllImages = make([]string, len(p.AllImages))
	copy(cp.AllImages, p.AllImages)
	return &cp
}

// CloneAll value-copies a whole row set.
func CloneAll(products []*Product) []*Product {
	out := make([]*Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// TargetField returns the field a run in the given mode writes.
func (p *Product) TargetField(mode Mode) string {
	if mode == ModeLong {
		return p.Description
	}
	return p.ShortDescription
}

// SetTargetField writes the generated text into the mode's target field.
func (p *Product) SetTargetField(mode Mode, text string) {
	if mode == ModeLong {
		p.Description = text
		return
	}
	p.ShortDescription = text
}
