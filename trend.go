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
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// YearAverage is the mean valid concentration in one year.
type YearAverage struct {
	Year    string
	Average float64
}

// YearMax is the highest valid measurement in one year.
// Found is false if the year has no valid points.
type YearMax struct {
	Year  string
	Point DataPoint
	Found bool
}

// Trend computes statistics of a pollutant over several years. Only
// points that are valid within Region are used.
type Trend struct {
	Loader Loader
	Region Region

	// Years lists the years to include, in increasing order.
	// If nil, DefaultYears is used.
	Years []string

	// Log receives warnings about missing years. If nil,
	// the standard logrus logger is used.
	Log logrus.FieldLogger
}

func (t *Trend) years() []string {
	if t.Years == nil {
		return DefaultYears
	}
	return t.Years
}

// load returns the points for pollutant p in the given year. A year
// that cannot be loaded has no points.
func (t *Trend) load(p Pollutant, year string) []DataPoint {
	d, err := t.Loader.Load(p, year)
	if err != nil {
		logOrDefault(t.Log).WithFields(logrus.Fields{
			"pollutant": p.String(),
			"year":      year,
		}).WithError(err).Warn("no data for year")
		return nil
	}
	return d.Data()
}

// YearlyValidAverages returns the mean valid concentration of p for
// each year, in year order. Years without valid points average 0.
func (t *Trend) YearlyValidAverages(p Pollutant) []YearAverage {
	years := t.years()
	out := make([]YearAverage, len(years))
	for i, year := range years {
		out[i] = YearAverage{
			Year:    year,
			Average: t.Region.ValidAverage(t.load(p, year)),
		}
	}
	return out
}

// YearlyValidMaxima returns the highest valid measurement of p for each
// year, in year order, and the highest of those. An earlier year keeps
// the overall maximum unless a later year is strictly greater.
func (t *Trend) YearlyValidMaxima(p Pollutant) (perYear []YearMax, overall YearMax) {
	years := t.years()
	perYear = make([]YearMax, len(years))
	for i, year := range years {
		pt, ok := t.Region.HighestValid(t.load(p, year))
		perYear[i] = YearMax{Year: year, Point: pt, Found: ok}
		if ok && (!overall.Found || pt.Value > overall.Point.Value) {
			overall = perYear[i]
		}
	}
	return perYear, overall
}

// OverallAverage returns MeanOfPositive of the yearly averages of p.
func (t *Trend) OverallAverage(p Pollutant) float64 {
	return MeanOfPositive(t.YearlyValidAverages(p))
}

// MeanOfPositive returns the mean of the averages that are greater
// than zero, or 0 if there are none. A year whose valid points average
// exactly zero is dropped along with years without data.
func MeanOfPositive(avgs []YearAverage) float64 {
	var vals []float64
	for _, a := range avgs {
		if a.Average > 0 {
			vals = append(vals, a.Average)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// ChartUpperBound returns the upper limit of a chart axis showing avgs:
// 20% above the largest average, rounded up to a multiple of 10.
func ChartUpperBound(avgs []YearAverage) float64 {
	max := 0.
	if len(avgs) > 0 {
		vals := make([]float64, len(avgs))
		for i, a := range avgs {
			vals[i] = a.Average
		}
		max = math.Max(0, floats.Max(vals))
	}
	return math.Ceil(max*1.2/10) * 10
}
