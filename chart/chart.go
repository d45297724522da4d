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

// Package chart draws pollutionmap results using gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/spatialmodel/pollutionmap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// BandColors are the marker colours of the concentration bands.
var BandColors = map[pollutionmap.Band]color.Color{
	pollutionmap.Low:      color.NRGBA{R: 0, G: 255, B: 0, A: 102},
	pollutionmap.Medium:   color.NRGBA{R: 255, G: 255, B: 0, A: 102},
	pollutionmap.High:     color.NRGBA{R: 255, G: 165, B: 0, A: 102},
	pollutionmap.VeryHigh: color.NRGBA{R: 255, G: 0, B: 0, A: 102},
}

// Trend returns a line chart of the yearly average concentrations of
// pollutant p. Years must be numeric.
func Trend(p pollutionmap.Pollutant, avgs []pollutionmap.YearAverage) (*plot.Plot, error) {
	plt, err := plot.New()
	if err != nil {
		return nil, err
	}
	plt.Title.Text = fmt.Sprintf("%s average pollution levels", p)
	plt.X.Label.Text = "Years"
	plt.Y.Label.Text = "Concentration (µg/m³)"

	xys := make(plotter.XYs, len(avgs))
	ticks := make([]plot.Tick, len(avgs))
	for i, a := range avgs {
		year, err := strconv.ParseFloat(a.Year, 64)
		if err != nil {
			return nil, fmt.Errorf("chart: year %q is not a number", a.Year)
		}
		xys[i].X, xys[i].Y = year, a.Average
		ticks[i] = plot.Tick{Value: year, Label: a.Year}
	}
	plt.X.Tick.Marker = plot.ConstantTicks(ticks)
	plt.Y.Min = 0
	if max := pollutionmap.ChartUpperBound(avgs); max > 0 {
		plt.Y.Max = max
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	points, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	plt.Add(line, points)
	plt.Legend.Add(p.String(), line, points)
	return plt, nil
}

// Map returns a chart of markers for pollutant p over region r, in grid
// coordinates, coloured by concentration band.
func Map(p pollutionmap.Pollutant, r pollutionmap.Region, markers []pollutionmap.Marker) (*plot.Plot, error) {
	plt, err := plot.New()
	if err != nil {
		return nil, err
	}
	plt.Title.Text = fmt.Sprintf("%s concentrations", p)
	plt.X.Label.Text = "Easting"
	plt.Y.Label.Text = "Northing"
	plt.X.Min, plt.X.Max = r.Min.X, r.Max.X
	plt.Y.Min, plt.Y.Max = r.Min.Y, r.Max.Y

	byBand := make(map[pollutionmap.Band][]pollutionmap.DataPoint)
	for _, m := range markers {
		b := pollutionmap.Classify(p, m.Point.Value)
		byBand[b] = append(byBand[b], m.Point)
	}
	for _, b := range pollutionmap.Bands {
		pts, ok := byBand[b]
		if !ok {
			continue
		}
		xys := make(plotter.XYs, len(pts))
		for i, pt := range pts {
			xys[i].X, xys[i].Y = float64(pt.X), float64(pt.Y)
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Color = BandColors[b]
		s.GlyphStyle.Radius = vg.Points(3)
		plt.Add(s)
		plt.Legend.Add(b.String(), s)
	}
	return plt, nil
}
