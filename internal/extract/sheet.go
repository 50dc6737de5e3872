package extract

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// extractSheetText renders the full tabular content of a workbook as text:
// row-major, cells tab-separated, all sheets in order.
func extractSheetText(data []byte) (string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return "", eris.Wrap(err, "sheet: open workbook")
	}

	var blocks []string
	for _, sheet := range f.Sheets {
		var rows []string
		for _, row := range sheet.Rows {
			cells := make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				cells[j] = cell.String()
			}
			rows = append(rows, strings.Join(cells, "\t"))
		}
		if len(rows) == 0 {
			continue
		}
		blocks = append(blocks, strings.Join(rows, "\n"))
	}

	return strings.Join(blocks, "\n\n"), nil
}
