// Package export writes packing results to PDF, Excel and DXF files and
// prints box labels.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StackFit/internal/model"
)

// ErrNothingPacked is returned when a result has no container to export.
var ErrNothingPacked = errors.New("no packed container to export")

// boxColor represents an RGB color for a placed box.
type boxColor struct {
	R, G, B int
}

var boxColors = []boxColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// palette assigns each box name a color in order of first appearance, so a
// box type keeps its color across pages.
type palette map[string]boxColor

func newPalette(c *model.Container) palette {
	p := palette{}
	for _, l := range c.Levels {
		for _, pl := range l.Placements {
			if _, ok := p[pl.Box.Name]; !ok {
				p[pl.Box.Name] = boxColors[len(p)%len(boxColors)]
			}
		}
	}
	return p
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a packing result. Each level is
// drawn from above on its own page, followed by a summary page with a side
// view and overall statistics.
func ExportPDF(path string, result model.PackResult, settings model.Settings) error {
	c := result.Container
	if c == nil {
		return ErrNothingPacked
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	colors := newPalette(c)

	for i, level := range c.Levels {
		pdf.AddPage()
		renderLevelPage(pdf, c, level, i, colors)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings, colors)

	return pdf.OutputFileAndClose(path)
}

// fitScale returns the scale and top left corner that center a w x h
// drawing in the given area.
func fitScale(w, h, areaX, areaY, areaW, areaH float64) (scale, x, y float64) {
	scale = math.Min(areaW/w, areaH/h)
	return scale, areaX + (areaW-w*scale)/2, areaY
}

// renderLevelPage draws the footprint of one level on the current page.
func renderLevelPage(pdf *fpdf.Fpdf, c *model.Container, level model.Level, index int, colors palette) {
	z := 0
	if level.Len() > 0 {
		z = level.Get(0).Space.Z
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Level %d of %d: %s, top view", index+1, len(c.Levels), c.Extent())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	var volume int64
	for _, p := range level.Placements {
		volume += p.Box.Volume()
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Level height: %d | Bottom at: %d | Box volume: %d",
		level.Len(), level.Height(), z, volume)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale, offsetX, offsetY := fitScale(float64(c.Width), float64(c.Depth), marginLeft, drawAreaTop, drawWidth, drawHeight)
	canvasW := float64(c.Width) * scale
	canvasH := float64(c.Depth) * scale

	// container floor
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range level.Placements {
		// depth grows upwards on paper
		bw := float64(p.Box.Width) * scale
		bd := float64(p.Box.Depth) * scale
		bx := offsetX + float64(p.Space.X)*scale
		by := offsetY + canvasH - float64(p.Space.Y+p.Box.Depth)*scale
		drawBox(pdf, bx, by, bw, bd, p.Box, colors[p.Box.Name])
	}

	drawDimensionAnnotations(pdf, c.Width, c.Depth, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, level.Placements, colors, offsetY+canvasH+5)
}

// drawBox fills a box rectangle and labels it when there is room.
func drawBox(pdf *fpdf.Fpdf, x, y, w, h float64, b model.Box, col boxColor) {
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, h, "FD")

	if w <= 15 || h <= 8 {
		return
	}
	pdf.SetFont("Helvetica", "", labelFontSize(w, h))
	pdf.SetTextColor(0, 0, 0)

	label := b.Name
	dims := b.Extent().Encode()
	labelW := pdf.GetStringWidth(label)
	dimsW := pdf.GetStringWidth(dims)

	if labelW < w-2 {
		pdf.SetXY(x+(w-labelW)/2, y+h/2-4)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
	if h > 14 && dimsW < w-2 {
		pdf.SetXY(x+(w-dimsW)/2, y+h/2)
		pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations adds width and depth labels outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, width, depth int, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	depthLabel := fmt.Sprintf("%d", depth)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(offsetX-3-dLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders a compact legend of the placed boxes.
func drawLegend(pdf *fpdf.Fpdf, placements []model.Placement, colors palette, startY float64) {
	if len(placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Boxes placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, p := range placements {
		col := colors[p.Box.Name]
		label := fmt.Sprintf("%s (%s) at %d,%d", p.Box.Name, p.Box.Extent().Encode(), p.Space.X, p.Space.Y)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// drawSideView draws every box projected on the width/height plane.
func drawSideView(pdf *fpdf.Fpdf, c *model.Container, colors palette, x, y, w, h float64) {
	scale, offsetX, offsetY := fitScale(float64(c.Width), float64(c.Height), x, y, w, h)
	canvasW := float64(c.Width) * scale
	canvasH := float64(c.Height) * scale

	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, l := range c.Levels {
		for _, p := range l.Placements {
			col := colors[p.Box.Name]
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.2)
			bx := offsetX + float64(p.Space.X)*scale
			by := offsetY + canvasH - float64(p.Space.Z+p.Box.Height)*scale
			pdf.Rect(bx, by, float64(p.Box.Width)*scale, float64(p.Box.Height)*scale, "FD")
		}
	}

	drawDimensionAnnotations(pdf, c.Width, c.Height, offsetX, offsetY, canvasW, canvasH)
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, settings model.Settings, colors palette) {
	c := result.Container

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	used := c.UsedSpace()
	summaryItems := []struct {
		label string
		value string
	}{
		{"Container", c.Extent().String()},
		{"Boxes Placed", fmt.Sprintf("%d", c.BoxCount())},
		{"Levels", fmt.Sprintf("%d", len(c.Levels))},
		{"Used Space", used.Encode()},
		{"Fill", fmt.Sprintf("%.1f%%", c.FillRatio()*100)},
		{"Containers Tried", fmt.Sprintf("%d of %d", result.Attempts, len(result.Candidates))},
		{"Elapsed", result.Elapsed.String()},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Level Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 20, 25, 25}
	headers := []string{"Level", "Boxes", "Height", "Bottom"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	z := 0
	for i, level := range c.Levels {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", level.Len()),
			fmt.Sprintf("%d", level.Height()),
			fmt.Sprintf("%d", z),
		}
		z += level.Height()

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
		if y > pageHeight-marginBottom-40 {
			break
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Rotation", rotationName(settings.Rotate3D)},
		{"Container Search", searchName(settings.BinarySearch)},
		{"Deadline", fmt.Sprintf("%d ms", settings.DeadlineMillis)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// side view on the right half
	sideX := pageWidth/2 + 10
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(sideX, marginTop+18)
	pdf.CellFormat(100, 7, "Side View", "", 0, "L", false, 0, "")
	drawSideView(pdf, c, colors, sideX, marginTop+27, pageWidth-marginRight-sideX, pageHeight-marginTop-27-marginBottom-10)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by StackFit", "", 0, "C", false, 0, "")
}

func rotationName(rotate3D bool) string {
	if rotate3D {
		return "all orientations"
	}
	return "upright only"
}

func searchName(binary bool) string {
	if binary {
		return "binary"
	}
	return "linear"
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
