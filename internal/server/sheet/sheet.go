// Package sheet reads the optional reference spreadsheet shown read-only in
// the portal.
package sheet

import (
	"errors"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/server/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ColumnDocName  = "Doc Name"
	ColumnAmount   = "Amount"
	ColumnDiscount = "Discount"
)

var ErrMissingDocName = errors.New("sheet: missing \"Doc Name\" column")

// Sheet is the first worksheet of a workbook, with the header row split off.
type Sheet struct {
	Columns []string          `json:"columns"`
	Rows    []models.SheetRow `json:"rows"`
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders a numeric cell as US currency, sign first
// (-$1,234.50). Non-numeric text is returned unchanged.
func FormatAmount(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}

	out := printer.Sprintf("$%.2f", math.Abs(v))
	if v < 0 && out != "$0.00" {
		return "-" + out
	}
	return out
}

// FormatDiscount renders a fraction (0.15) as a percentage (15.00%).
func FormatDiscount(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	return printer.Sprintf("%.2f%%", v*100)
}

// Load reads path. An empty or absent path yields common.ErrNotFound.
func Load(path string) (*Sheet, error) {
	if path == "" {
		return nil, common.ErrNotFound
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, common.StorageError("stat sheet", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, common.StorageError("open sheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingDocName
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, common.StorageError("read sheet", err)
	}

	return parse(rows)
}

func parse(rows [][]string) (*Sheet, error) {
	if len(rows) == 0 {
		return nil, ErrMissingDocName
	}

	header := rows[0]
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[ColumnDocName]; !ok {
		return nil, ErrMissingDocName
	}

	s := &Sheet{Columns: append([]string(nil), header...), Rows: []models.SheetRow{}}
	for _, cells := range rows[1:] {
		if len(cells) == 0 {
			continue
		}

		cell := func(i int) string {
			if i < len(cells) {
				return cells[i]
			}
			return ""
		}

		var row models.SheetRow
		for i, h := range header {
			v := cell(i)
			switch strings.TrimSpace(h) {
			case ColumnDocName:
				row.DocName = v
			case ColumnAmount:
				row.Amount = FormatAmount(v)
			case ColumnDiscount:
				row.Discount = FormatDiscount(v)
			default:
				if row.Extra == nil {
					row.Extra = map[string]string{}
				}
				row.Extra[h] = v
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// String renders the sheet as tab-separated text for the console.
func (s *Sheet) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(s.Columns, "\t"))
	for _, r := range s.Rows {
		b.WriteByte('\n')
		vals := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			switch strings.TrimSpace(c) {
			case ColumnDocName:
				vals[i] = r.DocName
			case ColumnAmount:
				vals[i] = r.Amount
			case ColumnDiscount:
				vals[i] = r.Discount
			default:
				vals[i] = r.Extra[c]
			}
		}
		b.WriteString(strings.Join(vals, "\t"))
	}
	return b.String()
}
