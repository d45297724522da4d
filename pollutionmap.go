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

// Package pollutionmap reads gridded annual air pollution concentrations
// (NO2, PM10 and PM2.5) and computes the statistics and screen geometry
// needed to show them on a map and as multi-year trends.
//
// Source files are delimited text with a few leading metadata rows followed
// by one row per grid cell: grid code, easting, northing and concentration.
// Negative concentrations mark cells without data.
package pollutionmap

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Version gives the version number.
const Version = "1.0.0"

var (
	// ErrSourceUnavailable is returned when a measurement file is missing or
	// cannot be read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedRow is returned when a data row cannot be parsed into a
	// DataPoint.
	ErrMalformedRow = errors.New("malformed row")
)

// logOrDefault returns l, or the standard logrus logger if l is nil.
func logOrDefault(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}
