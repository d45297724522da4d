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


package pollutionmaputil

import (
	"fmt"

	"github.com/spatialmodel/pollutionmap"
	"github.com/tealeg/xlsx"
)

// writeTrendXLSX writes the yearly average and highest valid
// concentrations of pollutant p to a workbook with a single "Trend"
// sheet. The last row holds the values over all years.
func writeTrendXLSX(t *pollutionmap.Trend, p pollutionmap.Pollutant, fileName string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Trend")
	if err != nil {
		return fmt.Errorf("pollutionmap: creating trend sheet: %v", err)
	}
	header := sheet.AddRow()
	for _, h := range []string{"Year", p.String() + " average", "Highest", "GridCode", "X", "Y"} {
		header.AddCell().SetString(h)
	}

	avgs := t.YearlyValidAverages(p)
	maxima, overall := t.YearlyValidMaxima(p)
	for i, a := range avgs {
		addTrendRow(sheet, a.Year, a.Average, maxima[i])
	}
	addTrendRow(sheet, "Overall", pollutionmap.MeanOfPositive(avgs), overall)

	if err := f.Save(fileName); err != nil {
		return fmt.Errorf("pollutionmap: writing %s: %v", fileName, err)
	}
	return nil
}

// addTrendRow adds one row to sheet. The highest-value cells are left
// empty if m has no point.
func addTrendRow(sheet *xlsx.Sheet, label string, avg float64, m pollutionmap.YearMax) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloat(avg)
	if !m.Found {
		return
	}
	row.AddCell().SetFloat(m.Point.Value)
	row.AddCell().SetInt(m.Point.GridCode)
	row.AddCell().SetInt(m.Point.X)
	row.AddCell().SetInt(m.Point.Y)
}
