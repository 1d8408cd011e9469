package catalog

// Stats summarizes a loaded file before a run starts. The counts drive the
// pre-run validation (a file with zero processable rows is rejected without a
// single API call) and the upload summary shown to the user.
type Stats struct {
	Total       int
	Processable int

	// Short mode breakdown.
	WithDescription  int
	EmptyDescription int
	ShortDescription int

	// Long mode breakdown.
	WithShortDesc int
	WithImage     int
}

// CollectStats tallies eligibility over all rows for the given mode.
func CollectStats(products []*Product, mode Mode) Stats {
	s := Stats{Total: len(products)}
	for _, p := range products {
		if mode == ModeLong {
			if p.ShortDescription != "" {
				s.WithShortDesc++
			}
			if p.Image != "" {
				s.WithImage++
			}
		} else {
			if TextLength(p.Description) > 0 {
				s.WithDescription++
			}
		}

		e := Evaluate(p, mode)
		switch {
		case e.OK:
			s.Processable++
		case e.Reason == SkipEmptyDescription:
			s.EmptyDescription++
		case e.Reason == SkipShortDescription:
			s.ShortDescription++
		}
	}
	return s
}
