// Package sitemap loads shop navigation exports and derives link phrases for
// products. Brands and categories arrive as semicolon separated CSV files
// exported from the shop admin; matching is diacritics and case insensitive
// because spreadsheet data rarely agrees with the navigation on either.
package sitemap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/shoptext/descgen/catalog"
)

// Brand is one row of the brands export.
type Brand struct {
	// Name as shown in the shop, e.g. "Fila".
	Name string
	// URL path derived from the indexName column, e.g. "/fila/".
	URL string

	normalized string
}

// Category is one row of the categories export.
type Category struct {
	Title string
	URL   string

	normalized string
}

// Link pairs a phrase in its exact display form with the target path.
type Link struct {
	Phrase string
	URL    string
}

// LinkOptions selects which product attributes produce links.
type LinkOptions struct {
	Manufacturer   bool
	MainCategory   bool
	LowestCategory bool
}

var (
	ErrBrandColumns    = errors.New(`brands CSV must contain "Name" and "indexName" columns`)
	ErrCategoryColumns = errors.New(`categories CSV must contain "Title" and "url" columns`)
)

// Fold lowercases text and strips combining marks so that "Obývák" matches
// "obyvak". Used for every comparison in this package.
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(text))
	if err != nil {
		return strings.ToLower(text)
	}
	return folded
}

func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return rows, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseBrands reads the brands export. Rows with a blank name or index are
// skipped and duplicates after folding keep the first occurrence.
func ParseBrands(r io.Reader) ([]Brand, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	nameIdx := columnIndex(rows[0], "Name")
	indexIdx := columnIndex(rows[0], "indexName")
	if nameIdx == -1 || indexIdx == -1 {
		return nil, ErrBrandColumns
	}

	var brands []Brand
	seen := make(map[string]struct{})
	for _, row := range rows[1:] {
		name := cell(row, nameIdx)
		index := cell(row, indexIdx)
		if name == "" || index == "" {
			continue
		}
		normalized := Fold(name)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		brands = append(brands, Brand{
			Name:       name,
			URL:        "/" + index + "/",
			normalized: normalized,
		})
	}
	return brands, nil
}

// ParseCategories reads the categories export in the same way.
func ParseCategories(r io.Reader) ([]Category, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	titleIdx := columnIndex(rows[0], "Title")
	urlIdx := columnIndex(rows[0], "url")
	if titleIdx == -1 || urlIdx == -1 {
		return nil, ErrCategoryColumns
	}

	var categories []Category
	seen := make(map[string]struct{})
	for _, row := range rows[1:] {
		title := cell(row, titleIdx)
		url := cell(row, urlIdx)
		if title == "" || url == "" {
			continue
		}
		normalized := Fold(title)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		categories = append(categories, Category{
			Title:      title,
			URL:        "/" + url + "/",
			normalized: normalized,
		})
	}
	return categories, nil
}

// SplitCategoryPath breaks "Oblečení > Pánské > Trička" into its segments.
func SplitCategoryPath(categoryText string) []string {
	if categoryText == "" {
		return nil
	}
	var segments []string
	for _, s := range strings.Split(categoryText, " > ") {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// matchBrand tries an exact folded match first, then a substring match in
// either direction.
func matchBrand(phrase string, brands []Brand) (Brand, bool) {
	folded := Fold(phrase)
	if folded == "" {
		return Brand{}, false
	}
	for _, b := range brands {
		if b.normalized == folded {
			return b, true
		}
	}
	for _, b := range brands {
		if strings.Contains(b.normalized, folded) || strings.Contains(folded, b.normalized) {
			return b, true
		}
	}
	return Brand{}, false
}

func matchCategory(phrase string, categories []Category) (Category, bool) {
	folded := Fold(strings.TrimSpace(phrase))
	if folded == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if c.normalized == folded {
			return c, true
		}
	}
	for _, c := range categories {
		if strings.Contains(c.normalized, folded) || strings.Contains(folded, c.normalized) {
			return c, true
		}
	}
	return Category{}, false
}

// LinksForProduct derives the links for one product: the manufacturer brand,
// the first category of the path and the last one. Each matched phrase is
// used once. The lowest category is skipped when the path has a single
// segment and the main category link already claimed it.
func LinksForProduct(p catalog.Product, brands []Brand, categories []Category, opts LinkOptions) []Link {
	var links []Link
	used := make(map[string]struct{})

	if opts.Manufacturer && p.Manufacturer != "" && len(brands) > 0 {
		manufacturer := strings.TrimSpace(p.Manufacturer)
		if match, ok := matchBrand(manufacturer, brands); ok {
			if _, dup := used[match.normalized]; !dup {
				used[match.normalized] = struct{}{}
				links = append(links, Link{Phrase: manufacturer, URL: match.URL})
			}
		}
	}

	path := SplitCategoryPath(p.CategoryText)

	if opts.MainCategory && len(path) > 0 && len(categories) > 0 {
		main := path[0]
		if match, ok := matchCategory(main, categories); ok {
			if _, dup := used[match.normalized]; !dup {
				used[match.normalized] = struct{}{}
				links = append(links, Link{Phrase: main, URL: match.URL})
			}
		}
	}

	if opts.LowestCategory && len(path) > 0 && len(categories) > 0 {
		if len(path) > 1 || !opts.MainCategory {
			lowest := path[len(path)-1]
			if match, ok := matchCategory(lowest, categories); ok {
				if _, dup := used[match.normalized]; !dup {
					used[match.normalized] = struct{}{}
					links = append(links, Link{Phrase: lowest, URL: match.URL})
				}
			}
		}
	}

	return links
}

// Phrases projects links onto their display phrases for the prompt builder.
func Phrases(links []Link) []string {
	if len(links) == 0 {
		return nil
	}
	phrases := make([]string, len(links))
	for i, l := range links {
		phrases[i] = l.Phrase
	}
	return phrases
}
