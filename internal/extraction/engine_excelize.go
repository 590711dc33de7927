package extraction

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"finlens/pkg/contracts/domain"
)

// Engine names referenced by decoding strategies.
const (
	EngineNameExcelize  = "excelize"
	EngineNameHTMLTable = "htmltable"
	EngineNameDelimited = "delimited"
)

// excelizeEngine decodes xlsx workbooks. Sheets are probed in workbook
// order and the first one carrying enough data wins; statement exports
// often hide the real table behind a cover sheet.
type excelizeEngine struct{}

func (e *excelizeEngine) Name() string { return EngineNameExcelize }

// minSheetCells is the probe threshold for a usable sheet.
const minSheetCells = 4

func (e *excelizeEngine) Decode(content []byte) (*domain.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var best *domain.RawTable
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		table := domain.NewRawTable(rows, "excelize:"+sheet)
		if table.NonEmptyCells() >= minSheetCells {
			return table, nil
		}
		if best == nil || table.NonEmptyCells() > best.NonEmptyCells() {
			best = table
		}
	}
	if best == nil {
		return nil, fmt.Errorf("workbook has no readable sheets")
	}
	return best, nil
}
