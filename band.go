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

// Band is a concentration level used to colour the map.
type Band int

// These are the concentration bands, from lowest to highest.
const (
	Low Band = iota
	Medium
	High
	VeryHigh
)

// Bands lists all bands from lowest to highest.
var Bands = []Band{Low, Medium, High, VeryHigh}

func (b Band) String() string {
	switch b {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return "Very High"
	}
}

// Thresholds returns the lower limits of the Medium, High and VeryHigh
// bands for pollutant p, in µg/m³.
func (p Pollutant) Thresholds() [3]float64 {
	switch p {
	case PM10:
		return [3]float64{15, 30, 45}
	case PM25:
		return [3]float64{10, 20, 30}
	default:
		return [3]float64{20, 40, 60}
	}
}

// Classify returns the band that concentration v of pollutant p is in.
func Classify(p Pollutant, v float64) Band {
	for i, t := range p.Thresholds() {
		if v < t {
			return Band(i)
		}
	}
	return VeryHigh
}
