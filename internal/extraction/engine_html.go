package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finlens/pkg/contracts/domain"
)

// htmlTableEngine decodes HTML documents carrying a <table>. Several
// brokerage and registry portals serve ".xls" downloads that are really
// HTML tables; this engine catches those after excelize rejects them.
type htmlTableEngine struct{}

func (e *htmlTableEngine) Name() string { return EngineNameHTMLTable }

func (e *htmlTableEngine) Decode(content []byte) (*domain.RawTable, error) {
	if !looksLikeHTML(content) {
		return nil, fmt.Errorf("content is not HTML")
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var cells [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var rows [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, strings.TrimSpace(cell.Text()))
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
		})
		// Take the largest table in the document.
		if len(rows) > len(cells) {
			cells = rows
		}
		return true
	})

	if len(cells) == 0 {
		return nil, fmt.Errorf("no table element found")
	}
	return domain.NewRawTable(cells, "htmltable"), nil
}

func looksLikeHTML(content []byte) bool {
	head := strings.ToLower(string(content[:min(len(content), 512)]))
	return strings.Contains(head, "<html") || strings.Contains(head, "<table") ||
		strings.Contains(head, "<!doctype html")
}

// delimitedEngine is the last spreadsheet fallback: some ".xls" exports
// are plain delimited text. It reruns delimiter detection on the content.
type delimitedEngine struct {
	sniffLines int
}

func (e *delimitedEngine) Name() string { return EngineNameDelimited }

func (e *delimitedEngine) Decode(content []byte) (*domain.RawTable, error) {
	detector := NewFormatDetector(e.sniffLines, nil)
	delim := detector.detectDelimiter(content)
	if delim == DelimiterNone {
		return nil, fmt.Errorf("no consistent delimiter in content")
	}
	cells, err := splitDelimited(content, delim.Rune())
	if err != nil {
		return nil, err
	}
	return domain.NewRawTable(cells, "delimited:"+string(delim)), nil
}
