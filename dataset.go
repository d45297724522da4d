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
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// DataPoint is a single grid cell measurement.
type DataPoint struct {
	// GridCode identifies the grid cell.
	GridCode int

	// X and Y are the easting and northing of the cell in the source
	// grid reference system.
	X, Y int

	// Value is the measured concentration. Negative values mean
	// there is no data for the cell.
	Value float64
}

// HasValue returns whether p holds a measurement, i.e. whether its
// value is non-negative. It does not check the location of p.
func (p DataPoint) HasValue() bool {
	return p.Value >= 0
}

// ParseDataPoint parses a data row. The first four fields must be the
// grid code, easting, northing and value; any further fields are ignored.
// It returns an error wrapping ErrMalformedRow if the row is too short or
// any of the four fields is not numeric.
func ParseDataPoint(fields []string) (DataPoint, error) {
	if len(fields) < 4 {
		return DataPoint{}, fmt.Errorf("pollutionmap: %d fields, need 4: %w", len(fields), ErrMalformedRow)
	}
	var (
		p   DataPoint
		err error
	)
	if p.GridCode, err = strconv.Atoi(strings.TrimSpace(fields[0])); err != nil {
		return DataPoint{}, fmt.Errorf("pollutionmap: grid code %q: %w", fields[0], ErrMalformedRow)
	}
	if p.X, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
		return DataPoint{}, fmt.Errorf("pollutionmap: x %q: %w", fields[1], ErrMalformedRow)
	}
	if p.Y, err = strconv.Atoi(strings.TrimSpace(fields[2])); err != nil {
		return DataPoint{}, fmt.Errorf("pollutionmap: y %q: %w", fields[2], ErrMalformedRow)
	}
	if p.Value, err = strconv.ParseFloat(strings.TrimSpace(fields[3]), 64); err != nil {
		return DataPoint{}, fmt.Errorf("pollutionmap: value %q: %w", fields[3], ErrMalformedRow)
	}
	return p, nil
}

// DataSet holds the measurements for one pollutant and year, in the
// order they were read.
type DataSet struct {
	Pollutant, Year, Unit, Metric string

	data []DataPoint
}

// NewDataSet returns an empty DataSet with the given metadata.
func NewDataSet(pollutant, year, unit, metric string) *DataSet {
	return &DataSet{
		Pollutant: pollutant,
		Year:      year,
		Unit:      unit,
		Metric:    metric,
	}
}

// AddData parses fields with ParseDataPoint and appends the result.
// If the row cannot be parsed d is left unchanged and the parse
// error is returned.
func (d *DataSet) AddData(fields []string) error {
	p, err := ParseDataPoint(fields)
	if err != nil {
		return err
	}
	d.data = append(d.data, p)
	return nil
}

// Data returns all points in d, including those without a value.
// The returned slice must not be modified.
func (d *DataSet) Data() []DataPoint {
	return d.data
}

// Len returns the number of points in d.
func (d *DataSet) Len() int {
	return len(d.data)
}

// ValidAverage returns the mean value of the points that have a value,
// regardless of their location, or 0 if there are none.
func (d *DataSet) ValidAverage() float64 {
	return meanValue(d.data, DataPoint.HasValue)
}

// HighestDataPoint returns the point with the largest value among the
// points that have a value. The first such point wins a tie. The second
// return value is false if no point has a value.
func (d *DataSet) HighestDataPoint() (DataPoint, bool) {
	return highest(d.data, DataPoint.HasValue)
}

// meanValue returns the mean value of the points in data for which
// keep returns true, or 0 if there are none.
func meanValue(data []DataPoint, keep func(DataPoint) bool) float64 {
	vals := make([]float64, 0, len(data))
	for _, p := range data {
		if keep(p) {
			vals = append(vals, p.Value)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// highest returns the first point in data with the largest value among
// the points for which keep returns true.
func highest(data []DataPoint, keep func(DataPoint) bool) (DataPoint, bool) {
	var (
		max   DataPoint
		found bool
	)
	for _, p := range data {
		if !keep(p) {
			continue
		}
		if !found || p.Value > max.Value {
			max = p
			found = true
		}
	}
	return max, found
}
