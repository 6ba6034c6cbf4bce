package export

import (
	"fmt"

	"github.com/piwi3910/StackFit/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

const containerLayer = "CONTAINER"

// levelLayer names the DXF layer holding the boxes of a level.
func levelLayer(index int) string {
	return fmt.Sprintf("LEVEL_%d", index+1)
}

// ExportDXF writes a 3D wireframe of the packed container. The container
// outline sits on its own layer and every level gets a layer with one
// cuboid and one name label per box.
func ExportDXF(path string, result model.PackResult) error {
	c := result.Container
	if c == nil {
		return ErrNothingPacked
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(containerLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", containerLayer, err)
	}
	if err := drawCuboid(d, 0, 0, 0, float64(c.Width), float64(c.Depth), float64(c.Height)); err != nil {
		return err
	}

	for i, level := range c.Levels {
		layer := levelLayer(i)
		if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", layer, err)
		}
		if err := d.ChangeLayer(layer); err != nil {
			return fmt.Errorf("change layer %s: %w", layer, err)
		}

		for _, p := range level.Placements {
			x, y, z := float64(p.Space.X), float64(p.Space.Y), float64(p.Space.Z)
			w, dp, h := float64(p.Box.Width), float64(p.Box.Depth), float64(p.Box.Height)
			if err := drawCuboid(d, x, y, z, w, dp, h); err != nil {
				return err
			}

			textHeight := min(w, dp) / 8
			if _, err := d.Text(p.Box.Name, x+w/4, y+dp/2, z+h, textHeight); err != nil {
				return fmt.Errorf("label %s: %w", p.Box.Name, err)
			}
		}
	}

	return d.SaveAs(path)
}

// drawCuboid draws the 12 edges of an axis aligned cuboid on the current layer.
func drawCuboid(d *drawing.Drawing, x, y, z, w, dp, h float64) error {
	corners := [8][3]float64{
		{x, y, z}, {x + w, y, z}, {x + w, y + dp, z}, {x, y + dp, z},
		{x, y, z + h}, {x + w, y, z + h}, {x + w, y + dp, z + h}, {x, y + dp, z + h},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // uprights
	}
	for _, e := range edges {
		a, b := corners[e[0]], corners[e[1]]
		if _, err := d.Line(a[0], a[1], a[2], b[0], b[1], b[2]); err != nil {
			return fmt.Errorf("draw edge: %w", err)
		}
	}
	return nil
}
