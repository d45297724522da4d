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
	"path/filepath"
	"strings"
)

// Pollutant is a measured air pollutant.
type Pollutant int

// These are the pollutants with measurement files.
const (
	NO2 Pollutant = iota
	PM10
	PM25
)

// Pollutants lists all pollutants in display order.
var Pollutants = []Pollutant{NO2, PM10, PM25}

// DefaultDataDir is the directory the measurement files are
// distributed in.
const DefaultDataDir = "UKAirPollutionData"

// DefaultYears are the years that measurement files exist for.
var DefaultYears = []string{"2018", "2019", "2020", "2021", "2022", "2023"}

// ParsePollutant returns the pollutant with the given name,
// ignoring case.
func ParsePollutant(name string) (Pollutant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "no2":
		return NO2, nil
	case "pm10":
		return PM10, nil
	case "pm2.5", "pm25":
		return PM25, nil
	default:
		return 0, fmt.Errorf("pollutionmap: unknown pollutant %q", name)
	}
}

// String returns the display name of p.
func (p Pollutant) String() string {
	switch p {
	case PM10:
		return "PM10"
	case PM25:
		return "PM2.5"
	default:
		return "NO2"
	}
}

// sourceName returns the folder, file prefix and file suffix of the
// measurement files for p. The particulate files share the "g" suffix.
func (p Pollutant) sourceName() (folder, prefix, suffix string) {
	switch p {
	case PM25:
		return "pm2.5", "mappm25", "g"
	case PM10:
		return "pm10", "mappm10", "g"
	default:
		return "NO2", "mapno2", ""
	}
}

// SourcePath returns the location of the measurement file for
// pollutant p and the given year under directory dir, for example
// dir/pm10/mappm102019g.csv. It does not check that the file exists.
func SourcePath(dir string, p Pollutant, year string) string {
	folder, prefix, suffix := p.sourceName()
	return filepath.Join(dir, folder, prefix+year+suffix+".csv")
}
