package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// requiredColumns must all be present (case-insensitive) in the header row.
var requiredColumns = []string{"code", "name", "description", "shortDescription"}

// imageColumnPattern matches image, image2, image3, ...
var imageColumnPattern = regexp.MustCompile(`(?i)^image\d*$`)

// FileData is the result of loading a spreadsheet.
type FileData struct {
	Products []*Product
	// Columns preserves the original header spellings in input order.
	Columns []string
	Stats   Stats
}

// ReadFile loads the first sheet of an XLSX export. It fails with a
// descriptive error when the file has no data rows or a required column is
// missing. All text cells are cleaned of carriage-return artifacts on the way
// in.
func ReadFile(path string, mode Mode) (*FileData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("spreadsheet has no data rows")
	}

	columns := make([]string, len(rows[0]))
	lower := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = strings.TrimSpace(h)
		lower[i] = strings.ToLower(columns[i])
	}

	index := func(name string) int {
		name = strings.ToLower(name)
		for i, h := range lower {
			if h == name {
				return i
			}
		}
		return -1
	}

	var missing []string
	for _, col := range requiredColumns {
		if index(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	codeIdx := index("code")
	nameIdx := index("name")
	descIdx := index("description")
	shortIdx := index("shortDescription")
	manufIdx := index("manufacturer")
	catIdx := index("categoryText")
	imgIdx := index("image")

	var imageIdx []int
	for i, h := range lower {
		if imageColumnPattern.MatchString(h) {
			imageIdx = append(imageIdx, i)
		}
	}

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return CleanText(strings.TrimSpace(row[idx]))
	}

	products := make([]*Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		p := NewProduct(row)
		p.Code = cell(row, codeIdx)
		p.Name = cell(row, nameIdx)
		p.Description = cell(row, descIdx)
		p.ShortDescription = cell(row, shortIdx)
		p.Manufacturer = cell(row, manufIdx)
		p.CategoryText = cell(row, catIdx)
		p.Image = cell(row, imgIdx)
		for _, idx := range imageIdx {
			if v := cell(row, idx); v != "" {
				p.AllImages = append(p.AllImages, v)
			}
		}
		products = append(products, p)
	}

	return &FileData{
		Products: products,
		Columns:  columns,
		Stats:    CollectStats(products, mode),
	}, nil
}

// WriteFile serializes processed rows back into an XLSX file with the original
// header. Only the column targeted by the run mode comes from the product
// field; every other column is emitted from the preserved original record, so
// untouched cells round-trip unchanged apart from the mandatory artifact
// cleanup, which applies to every cell on the way out.
func WriteFile(path string, products []*Product, columns []string, mode Mode) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	target := "shortdescription"
	if mode == ModeLong {
		target = "description"
	}

	for r, p := range products {
		row := make([]any, len(columns))
		for i, col := range columns {
			v := p.OriginalCell(i)
			if strings.ToLower(col) == target {
				v = p.TargetField(mode)
			}
			row[i] = CleanText(v)
		}
		addr, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("cell address: %w", err)
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return nil
}

// OutputName derives the processed-file name from the input name, e.g.
// export.xlsx -> export_processed.xlsx.
func OutputName(fileName string) string {
	ext := ""
	base := fileName
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		base, ext = fileName[:i], fileName[i:]
	}
	if !strings.EqualFold(ext, ".xlsx") && !strings.EqualFold(ext, ".xls") {
		base, ext = fileName, ".xlsx"
	}
	return base + "_processed" + ext
}
