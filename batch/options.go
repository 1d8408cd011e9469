package batch

import (
	"time"

	"github.com/shoptext/descgen/catalog"
	"github.com/shoptext/descgen/prompt"
	"github.com/shoptext/descgen/sitemap"
)

// Pacing between consecutive API calls. Long descriptions consume more
// tokens per request so they get a slightly longer gap.
const (
	DefaultRequestDelayShort = 2500 * time.Millisecond
	DefaultRequestDelayLong  = 3000 * time.Millisecond
)

// AutoLink wires sitemap-derived link phrases into each row's prompt.
type AutoLink struct {
	Enabled    bool
	Brands     []sitemap.Brand
	Categories []sitemap.Category
	Links      sitemap.LinkOptions
}

// Options configures a run. The zero value processes short descriptions
// with default pacing and no extras.
type Options struct {
	Mode   catalog.Mode
	Prompt prompt.Options

	// JustifyText rewrites paragraph tags in generated output to justify
	// their text alignment.
	JustifyText bool

	AutoLink AutoLink

	// RequestDelay overrides the per-mode default gap between API calls.
	// Zero means the default; tests shrink it to keep runs fast.
	RequestDelay time.Duration
}

func (o Options) requestDelay() time.Duration {
	if o.RequestDelay > 0 {
		return o.RequestDelay
	}
	if o.Mode == catalog.ModeLong {
		return DefaultRequestDelayLong
	}
	return DefaultRequestDelayShort
}
