// Package importer reads box and container lists from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/StackFit/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Boxes    []model.BoxItem
	Errors   []string
	Warnings []string
}

// Extents returns the imported rows as container sizes. Counts are ignored.
func (r ImportResult) Extents() []model.Extent {
	out := make([]model.Extent, 0, len(r.Boxes))
	for _, item := range r.Boxes {
		out = append(out, model.NewExtent(item.Box.Name, item.Box.Width, item.Box.Depth, item.Box.Height))
	}
	return out
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Size holds a combined WxDxH value and replaces the three separate sides.
type ColumnMapping struct {
	Name   int
	Width  int
	Depth  int
	Height int
	Count  int
	Size   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":   {"name", "label", "box", "item", "description", "desc", "sku"},
	"width":  {"width", "w", "x"},
	"depth":  {"depth", "d", "length", "len", "l", "y"},
	"height": {"height", "h", "z"},
	"count":  {"count", "quantity", "qty", "num", "amount", "pcs", "pieces"},
	"size":   {"size", "dimensions", "dims", "extent"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (Name, Width, Depth, Height, Count) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Width: -1, Depth: -1, Height: -1, Count: -1, Size: -1}
	slots := map[string]*int{
		"name":   &mapping.Name,
		"width":  &mapping.Width,
		"depth":  &mapping.Depth,
		"height": &mapping.Height,
		"count":  &mapping.Count,
		"size":   &mapping.Size,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Width: 1, Depth: 2, Height: 3, Count: 4, Size: -1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseSide(row []string, idx int, side, rowLabel string) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, side)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, side, s)
	}
	return v, ""
}

// parseRow extracts a BoxItem from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, boxCount int) (model.BoxItem, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Box %d", boxCount+1)
	}

	var w, d, h int
	if sizeStr := getCell(row, mapping.Size); mapping.Size >= 0 && sizeStr != "" {
		e, err := model.ParseExtent(sizeStr)
		if err != nil {
			return model.BoxItem{}, fmt.Sprintf("%s: Invalid size '%s'", rowLabel, sizeStr), ""
		}
		w, d, h = e.Dims()
	} else {
		var msg string
		if w, msg = parseSide(row, mapping.Width, "width", rowLabel); msg != "" {
			return model.BoxItem{}, msg, ""
		}
		if d, msg = parseSide(row, mapping.Depth, "depth", rowLabel); msg != "" {
			return model.BoxItem{}, msg, ""
		}
		if h, msg = parseSide(row, mapping.Height, "height", rowLabel); msg != "" {
			return model.BoxItem{}, msg, ""
		}
	}

	var warning string
	count := 1
	if countStr := getCell(row, mapping.Count); countStr != "" {
		c, err := strconv.Atoi(countStr)
		if err != nil {
			return model.BoxItem{}, fmt.Sprintf("%s: Invalid count '%s'", rowLabel, countStr), ""
		}
		count = c
	} else if mapping.Count >= 0 {
		warning = fmt.Sprintf("%s: Missing count, defaulting to 1", rowLabel)
	}

	if w <= 0 || d <= 0 || h <= 0 || count <= 0 {
		return model.BoxItem{}, fmt.Sprintf("%s: Width, depth, height, and count must be positive", rowLabel), ""
	}

	return model.NewBoxItem(name, w, d, h, count), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Import reads a box list, choosing the reader by file extension.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports boxes from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports boxes from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports boxes from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into box items.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Size == -1 {
			missing := []string{}
			if mapping.Width == -1 {
				missing = append(missing, "Width")
			}
			if mapping.Depth == -1 {
				missing = append(missing, "Depth")
			}
			if mapping.Height == -1 {
				missing = append(missing, "Height")
			}
			if len(missing) > 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
				return result
			}
		}
	} else if len(rows[0]) >= 4 {
		// A non-numeric width in the first row is an unrecognized header.
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Boxes))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Boxes = append(result.Boxes, item)
	}

	return result
}
