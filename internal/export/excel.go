package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/StackFit/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	placementsSheet = "Placements"
	levelsSheet     = "Levels"
)

// ExportExcel writes a workbook with a summary sheet, one row per placed
// box in loading order and one row per level.
func ExportExcel(path string, result model.PackResult, settings model.Settings) error {
	c := result.Container
	if c == nil {
		return ErrNothingPacked
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{placementsSheet, levelsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	used := c.UsedSpace()
	summary := [][]interface{}{
		{"Container", c.Extent().String()},
		{"Width", c.Width},
		{"Depth", c.Depth},
		{"Height", c.Height},
		{"Boxes", c.BoxCount()},
		{"Levels", len(c.Levels)},
		{"Used space", used.Encode()},
		{"Fill %", math.Round(c.FillRatio()*1000) / 10},
		{"Containers tried", result.Attempts},
		{"Candidates", len(result.Candidates)},
		{"Deadline reached", result.DeadlineReached},
		{"Elapsed ms", result.Elapsed.Milliseconds()},
		{"Rotation", rotationName(settings.Rotate3D)},
		{"Container search", searchName(settings.BinarySearch)},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}
	if err := f.SetColStyle(summarySheet, "A", header); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}

	placements := [][]interface{}{
		{"Seq", "Level", "Box", "Width", "Depth", "Height", "X", "Y", "Z"},
	}
	for _, l := range CollectLabelInfos(result) {
		placements = append(placements, []interface{}{
			l.Seq, l.Level, l.BoxName, l.Width, l.Depth, l.Height, l.X, l.Y, l.Z,
		})
	}
	if err := writeRows(f, placementsSheet, placements); err != nil {
		return err
	}

	levels := [][]interface{}{
		{"Level", "Boxes", "Height", "Bottom"},
	}
	z := 0
	for i, l := range c.Levels {
		levels = append(levels, []interface{}{i + 1, l.Len(), l.Height(), z})
		z += l.Height()
	}
	if err := writeRows(f, levelsSheet, levels); err != nil {
		return err
	}

	for _, sheet := range []string{placementsSheet, levelsSheet} {
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return fmt.Errorf("style %s: %w", sheet, err)
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 22); err != nil {
		return fmt.Errorf("size summary: %w", err)
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
