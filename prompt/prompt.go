// Package prompt builds deterministic model requests for product rewriting.
// Directive tags come first in a fixed order, then the product fields, so
// identical inputs always produce identical requests.
package prompt

import (
	"fmt"
	"strings"

	"github.com/shoptext/descgen/catalog"
	"github.com/shoptext/descgen/llm"
)

// Tone selects the writing style requested from the model.
type Tone string

const (
	ToneNeutral      Tone = "neutral"
	ToneProfessional Tone = "professional"
	ToneFunny        Tone = "funny"
	ToneCustom       Tone = "custom"
)

// LeftoverPolicy controls what happens to images beyond the layout count.
type LeftoverPolicy string

const (
	// LeftoverSkip drops images beyond the layout count.
	LeftoverSkip LeftoverPolicy = "skip"
	// LeftoverSpaced includes remaining images for the model to space out.
	LeftoverSpaced LeftoverPolicy = "spaced"
)

// Token limits per mode. Long descriptions need headroom for sections and
// bullet lists, short ones are capped tightly.
const (
	maxTokensShort = 1024
	maxTokensLong  = 4096
)

// emptyPlaceholder marks a blank source field in the user message so the
// model can tell "create new" from "improve existing".
const emptyPlaceholder = "(prázdný)"

// Options carries all generation settings that shape the user message.
type Options struct {
	Tone              Tone
	CustomToneExample string

	// Manual link phrases, comma separated, emitted when UseLinkPhrases is set.
	UseLinkPhrases bool
	LinkPhrases    string

	// Phrases derived from sitemap matching, merged into the same directive.
	AutoLinkPhrases []string

	// Short mode only.
	AddBulletPoints bool

	// Long mode only.
	AddImages      bool
	ImageLayout    int
	LeftoverImages LeftoverPolicy
}

// imageCount clamps the layout to the supported range.
func (o Options) imageCount() int {
	if o.ImageLayout < 1 {
		return 1
	}
	if o.ImageLayout > 3 {
		return 3
	}
	return o.ImageLayout
}

// Build assembles the request for one product. The directive order is fixed:
// tone, link phrases, images, product fields, bullet flag.
func Build(p catalog.Product, mode catalog.Mode, opts Options) llm.Request {
	var b strings.Builder

	writeToneDirective(&b, opts)
	writeLinkDirective(&b, opts)

	if mode == catalog.ModeLong && opts.AddImages {
		writeImageDirectives(&b, p, opts)
	}

	switch mode {
	case catalog.ModeLong:
		name := p.Name
		if name == "" {
			name = "Bez názvu"
		}
		fmt.Fprintf(&b, "Název produktu: %s\n\nKrátký popis:\n%s\n\nStávající dlouhý popis:\n%s",
			name, orPlaceholder(p.ShortDescription), orPlaceholder(p.Description))
	default:
		fmt.Fprintf(&b, "Název produktu: %s\n\nStávající krátký popis:\n%s\n\nDlouhý popis:\n%s",
			p.Name, orPlaceholder(p.ShortDescription), p.Description)
	}

	if mode == catalog.ModeShort && opts.AddBulletPoints {
		b.WriteString("\n\n[S_ODRAZKAMI]")
	}

	system := systemPromptShort
	maxTokens := maxTokensShort
	if mode == catalog.ModeLong {
		system = systemPromptLong
		maxTokens = maxTokensLong
	}

	return llm.Request{
		System:      system,
		UserMessage: b.String(),
		MaxTokens:   maxTokens,
	}
}

func writeToneDirective(b *strings.Builder, opts Options) {
	switch opts.Tone {
	case ToneProfessional:
		b.WriteString("[TON: profesionální]\n\n")
	case ToneFunny:
		b.WriteString("[TON: vtipný]\n\n")
	case ToneNeutral:
		b.WriteString("[TON: neutrální]\n\n")
	case ToneCustom:
		if opts.CustomToneExample != "" {
			fmt.Fprintf(b, "[TON_UKAZKA: %s]\n\n", opts.CustomToneExample)
		}
	}
}

// writeLinkDirective merges manual phrases with sitemap-derived ones into a
// single directive. Duplicates are dropped case-sensitively since the model
// is told to use phrases in their exact form.
func writeLinkDirective(b *strings.Builder, opts Options) {
	var phrases []string
	seen := make(map[string]struct{})

	add := func(phrase string) {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" {
			return
		}
		if _, ok := seen[phrase]; ok {
			return
		}
		seen[phrase] = struct{}{}
		phrases = append(phrases, phrase)
	}

	if opts.UseLinkPhrases {
		for _, phrase := range strings.Split(opts.LinkPhrases, ",") {
			add(phrase)
		}
	}
	for _, phrase := range opts.AutoLinkPhrases {
		add(phrase)
	}

	if len(phrases) == 0 {
		return
	}
	fmt.Fprintf(b, "[FRAZE_PRO_PROLINKOVÁNÍ: %s]\n\n", strings.Join(phrases, ", "))
}

// writeImageDirectives emits one directive per image up to the layout count.
// The spaced policy appends the remaining images as well and leaves their
// placement to the model.
func writeImageDirectives(b *strings.Builder, p catalog.Product, opts Options) {
	images := p.AllImages
	if len(images) == 0 && p.Image != "" {
		images = []string{p.Image}
	}
	if len(images) == 0 {
		return
	}

	n := opts.imageCount()
	if opts.LeftoverImages == LeftoverSpaced || n > len(images) {
		n = len(images)
	}
	for _, url := range images[:n] {
		fmt.Fprintf(b, "[OBRAZEK: %s]\n\n", url)
	}
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return emptyPlaceholder
	}
	return strings.TrimSpace(value)
}
