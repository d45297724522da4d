/*
Copyright © 2024 the InMAP authors.
This file is part of pollutionmap.

pollutionmap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pollutionmap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pollutionmap.  If not, see <http://www.gnu.org/licenses/>.
*/

package pollutionmap

import (
	"fmt"

	"github.com/ctessum/geom"
)

// Region is the rectangle of the source grid that is shown on the map.
// Min holds the left and bottom edges and Max the right and top edges.
// The zero value is not usable; create a Region with NewRegion.
type Region struct {
	geom.Bounds
}

// London is the region covered by the base map of central London.
var London = Region{geom.Bounds{
	Min: geom.Point{X: 510394, Y: 168504},
	Max: geom.Point{X: 553297, Y: 193305},
}}

// NewRegion returns the region between the given grid edges. It returns
// an error if the region has no area.
func NewRegion(leftX, rightX, bottomY, topY float64) (Region, error) {
	if rightX <= leftX || topY <= bottomY {
		return Region{}, fmt.Errorf("pollutionmap: invalid region x=[%g, %g] y=[%g, %g]",
			leftX, rightX, bottomY, topY)
	}
	return Region{geom.Bounds{
		Min: geom.Point{X: leftX, Y: bottomY},
		Max: geom.Point{X: rightX, Y: topY},
	}}, nil
}

// Contains returns whether grid location (x, y) is within r. Points on
// the edges are inside.
func (r Region) Contains(x, y int) bool {
	return r.Bounds.Overlaps(geom.Point{X: float64(x), Y: float64(y)}.Bounds())
}

// Valid returns whether p should be shown and included in map
// statistics: it must have a value and lie within r.
func (r Region) Valid(p DataPoint) bool {
	return p.HasValue() && r.Contains(p.X, p.Y)
}

// ToScreen converts grid location (x, y) to a position on a canvas of
// the given size, where the canvas spans r exactly. Screen y increases
// downwards, so northing is flipped.
func (r Region) ToScreen(x, y int, width, height float64) geom.Point {
	return geom.Point{
		X: (float64(x) - r.Min.X) * width / (r.Max.X - r.Min.X),
		Y: height - (float64(y)-r.Min.Y)*height/(r.Max.Y-r.Min.Y),
	}
}

// ValidAverage returns the mean value of the points in data that are
// valid within r, or 0 if there are none.
func (r Region) ValidAverage(data []DataPoint) float64 {
	return meanValue(data, r.Valid)
}

// HighestValid returns the first point in data with the largest value
// among the points that are valid within r. The second return value is
// false if no point is valid.
func (r Region) HighestValid(data []DataPoint) (DataPoint, bool) {
	return highest(data, r.Valid)
}
