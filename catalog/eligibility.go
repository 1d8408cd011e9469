package catalog

// Mode selects which description field a run rewrites.
type Mode string

const (
	// ModeShort generates short descriptions from long ones.
	ModeShort Mode = "short"

	// ModeLong generates long descriptions from short ones.
	ModeLong Mode = "long"
)

// Length thresholds below which a source field cannot support generation.
// These are product decisions, not tunables.
const (
	minLongDescriptionLen  = 100 // short mode: visible chars of the long description
	minShortDescriptionLen = 20  // long mode: chars of the short description
)

// SkipReason explains why a row was not sent to the API.
type SkipReason int

const (
	// SkipNone means the row was eligible.
	SkipNone SkipReason = iota

	// SkipEmptyDescription: the source description is blank after stripping markup.
	SkipEmptyDescription

	// SkipShortDescription: the source description exists but is too short.
	SkipShortDescription

	// SkipMissingName: long mode requires a product name.
	SkipMissingName
)

// String returns the stable identifier used in logs and summaries.
func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipEmptyDescription:
		return "empty_description"
	case SkipShortDescription:
		return "short_description"
	case SkipMissingName:
		return "missing_name"
	default:
		return "unknown"
	}
}

// Eligibility is the verdict for one row.
type Eligibility struct {
	OK     bool
	Reason SkipReason
}

// Evaluate decides whether a product has enough source text to justify an API
// call in the given mode. Short mode keys on the long description (blank →
// empty, under 100 visible chars → short). Long mode keys on name presence and
// a short description of at least 20 chars.
func Evaluate(p *Product, mode Mode) Eligibility {
	if mode == ModeLong {
		if p.Name == "" {
			return Eligibility{Reason: SkipMissingName}
		}
		if len([]rune(p.ShortDescription)) < minShortDescriptionLen {
			return Eligibility{Reason: SkipShortDescription}
		}
		return Eligibility{OK: true}
	}

	n := TextLength(p.Description)
	if n == 0 {
		return Eligibility{Reason: SkipEmptyDescription}
	}
	if n < minLongDescriptionLen {
		return Eligibility{Reason: SkipShortDescription}
	}
	return Eligibility{OK: true}
}
