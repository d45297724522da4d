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
	"math"

	"github.com/ctessum/geom"
)

const (
	// MarkerSize is the edge length of a map marker in screen units.
	MarkerSize = 15.

	// MarkerOffset is how far up and left of its screen position
	// a marker is drawn.
	MarkerOffset = 2.
)

// Marker is the square drawn on the map for a single DataPoint.
type Marker struct {
	Point DataPoint

	// Screen is the mapped screen position of Point.
	Screen geom.Point

	bounds geom.Bounds
}

func newMarker(p DataPoint, screen geom.Point) Marker {
	min := geom.Point{X: screen.X - MarkerOffset, Y: screen.Y - MarkerOffset}
	return Marker{
		Point:  p,
		Screen: screen,
		bounds: geom.Bounds{
			Min: min,
			Max: geom.Point{X: min.X + MarkerSize, Y: min.Y + MarkerSize},
		},
	}
}

// Bounds returns the screen area covered by m.
func (m *Marker) Bounds() *geom.Bounds {
	return &m.bounds
}

// Center returns the screen position of the centre of m.
func (m *Marker) Center() geom.Point {
	return geom.Point{
		X: (m.bounds.Min.X + m.bounds.Max.X) / 2,
		Y: (m.bounds.Min.Y + m.bounds.Max.Y) / 2,
	}
}

// Picker finds the map marker under a screen position. A Picker is
// built for one set of points and one canvas size; build a new one
// when either changes.
type Picker struct {
	markers []Marker
}

// NewPicker places a marker for every point in data that is valid
// within region r on a canvas of the given size.
func NewPicker(r Region, data []DataPoint, width, height float64) *Picker {
	p := new(Picker)
	for _, d := range data {
		if !r.Valid(d) {
			continue
		}
		p.markers = append(p.markers, newMarker(d, r.ToScreen(d.X, d.Y, width, height)))
	}
	return p
}

// Markers returns the markers in drawing order.
func (p *Picker) Markers() []Marker {
	return p.markers
}

// Pick returns the point whose marker contains screen position (x, y).
// Where markers overlap the one with the closest centre wins, and the
// earliest marker wins an exact tie. The second return value is false
// if no marker contains (x, y).
func (p *Picker) Pick(x, y float64) (DataPoint, bool) {
	q := geom.Point{X: x, Y: y}
	qb := q.Bounds()
	best := -1
	bestDist := math.Inf(1)
	for i := range p.markers {
		m := &p.markers[i]
		if !m.Bounds().Overlaps(qb) {
			continue
		}
		c := m.Center()
		if d := math.Hypot(c.X-q.X, c.Y-q.Y); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return DataPoint{}, false
	}
	return p.markers[best].Point, true
}

// Describe returns the tooltip text for point v of pollutant p.
func Describe(p Pollutant, v DataPoint) string {
	return fmt.Sprintf("%s: %.2f\nLocation: %d, %d", p, v.Value, v.X, v.Y)
}
