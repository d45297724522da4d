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
	"reflect"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gonum.org/v1/gonum/floats"
)

// yearLoader serves DataSets from memory by year, ignoring the
// pollutant, and counts requests.
type yearLoader struct {
	sets  map[string]*DataSet
	calls int
}

func (l *yearLoader) Load(_ Pollutant, year string) (*DataSet, error) {
	l.calls++
	d, ok := l.sets[year]
	if !ok {
		return nil, fmt.Errorf("no file for %s: %w", year, ErrSourceUnavailable)
	}
	return d, nil
}

func TestTrendFiles(t *testing.T) {
	log, hook := test.NewNullLogger()
	tr := &Trend{
		Loader: &FileLoader{Dir: testDataDir, Log: log},
		Region: London,
		Log:    log,
	}

	avgs := tr.YearlyValidAverages(NO2)
	want := []YearAverage{
		{Year: "2018"},
		{Year: "2019", Average: 38},
		{Year: "2020"},
		{Year: "2021", Average: 12.5},
		{Year: "2022"},
		{Year: "2023"},
	}
	if !reflect.DeepEqual(avgs, want) {
		t.Errorf("yearly averages differ: %v", pretty.Diff(avgs, want))
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Error("missing years should be logged as warnings")
	}

	if have := tr.OverallAverage(NO2); !floats.EqualWithinAbs(have, 25.25, tolerance) {
		t.Errorf("overall average = %g, want 25.25", have)
	}

	perYear, overall := tr.YearlyValidMaxima(NO2)
	if len(perYear) != 6 {
		t.Fatalf("have %d years, want 6", len(perYear))
	}
	if perYear[0].Found {
		t.Errorf("2018 should have no maximum: %+v", perYear[0])
	}
	wantMax := YearMax{
		Year:  "2019",
		Point: DataPoint{GridCode: 1005, X: 545000, Y: 170000, Value: 45.5},
		Found: true,
	}
	if overall != wantMax {
		t.Errorf("overall maximum %+v, want %+v", overall, wantMax)
	}
	if perYear[3].Point.GridCode != 2001 {
		t.Errorf("2021 tie went to %d, want 2001", perYear[3].Point.GridCode)
	}
}

func TestTrendRegionFilter(t *testing.T) {
	// The DataSet average counts the out-of-region point; the trend does not.
	d := newTestDataSet(t,
		[]string{"1", "520000", "180000", "10"},
		[]string{"2", "400000", "180000", "50"},
	)
	tr := &Trend{
		Loader: &yearLoader{sets: map[string]*DataSet{"2020": d}},
		Region: London,
		Years:  []string{"2020"},
	}
	if have := d.ValidAverage(); have != 30 {
		t.Errorf("DataSet average = %g, want 30", have)
	}
	if have := tr.YearlyValidAverages(NO2)[0].Average; have != 10 {
		t.Errorf("trend average = %g, want 10", have)
	}
	_, overall := tr.YearlyValidMaxima(NO2)
	if overall.Point.GridCode != 1 {
		t.Errorf("overall maximum %+v should be grid code 1", overall)
	}
}

func TestTrendMaximaTie(t *testing.T) {
	l := &yearLoader{sets: map[string]*DataSet{
		"2019": newTestDataSet(t, []string{"1", "520000", "180000", "40"}),
		"2020": newTestDataSet(t, []string{"2", "520000", "180000", "40"}),
		"2021": newTestDataSet(t, []string{"3", "520000", "180000", "-1"}),
	}}
	log, _ := test.NewNullLogger()
	tr := &Trend{Loader: l, Region: London, Years: []string{"2019", "2020", "2021", "2022"}, Log: log}
	perYear, overall := tr.YearlyValidMaxima(NO2)
	if overall.Year != "2019" || overall.Point.GridCode != 1 {
		t.Errorf("overall maximum %+v should be from 2019", overall)
	}
	if perYear[2].Found || perYear[3].Found {
		t.Errorf("2021 and 2022 have no valid points: %+v", perYear)
	}
	if l.calls != 4 {
		t.Errorf("loader called %d times, want 4", l.calls)
	}
}

func TestTrendNoData(t *testing.T) {
	log, _ := test.NewNullLogger()
	tr := &Trend{Loader: &yearLoader{}, Region: London, Log: log}
	if have := tr.OverallAverage(PM25); have != 0 {
		t.Errorf("overall average = %g, want 0", have)
	}
	if _, overall := tr.YearlyValidMaxima(PM25); overall.Found {
		t.Errorf("overall maximum %+v, want none", overall)
	}
}

func TestMeanOfPositive(t *testing.T) {
	avgs := []YearAverage{
		{Year: "2018"}, {Year: "2019"}, {Year: "2020"},
		{Year: "2021", Average: 12.5},
		{Year: "2022"}, {Year: "2023"},
	}
	if have := MeanOfPositive(avgs); have != 12.5 {
		t.Errorf("mean = %g, want 12.5", have)
	}
	avgs[0].Average = 7.5
	if have := MeanOfPositive(avgs); have != 10 {
		t.Errorf("mean = %g, want 10", have)
	}
	if have := MeanOfPositive(nil); have != 0 {
		t.Errorf("mean of nothing = %g, want 0", have)
	}
}

func TestChartUpperBound(t *testing.T) {
	tests := []struct {
		max, want float64
	}{
		{max: 0, want: 0},
		{max: 12.5, want: 20},
		{max: 24, want: 30},
		{max: 41, want: 50},
	}
	for _, test := range tests {
		avgs := []YearAverage{{Year: "2018", Average: 1}, {Year: "2019", Average: test.max}}
		if test.max == 0 {
			avgs = avgs[1:]
		}
		if have := ChartUpperBound(avgs); have != test.want {
			t.Errorf("ChartUpperBound(max=%g) = %g, want %g", test.max, have, test.want)
		}
	}
	if have := ChartUpperBound(nil); have != 0 {
		t.Errorf("ChartUpperBound(nil) = %g, want 0", have)
	}
}
