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
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/tealeg/xlsx"
)

// setTestConfig resets the options changed by the tests.
func setTestConfig() {
	Cfg.Set("DataDir", "../testdata/UKAirPollutionData")
	Cfg.Set("Pollutant", "NO2")
	Cfg.Set("LogLevel", "error")
	Cfg.Set("Year", "2019")
	Cfg.Set("Years", []string{"2019", "2021"})
	Cfg.Set("OutputFile", "")
	Cfg.Set("open", false)
}

func run(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	Root.SetArgs(args)
	Root.SetOutput(&buf)
	err := Root.Execute()
	return buf.String(), err
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "pollutionmap")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestVersion(t *testing.T) {
	setTestConfig()
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pollutionmap v") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestConfig(t *testing.T) {
	setTestConfig()
	out, err := run(t, "config")
	if err != nil {
		t.Fatal(err)
	}
	var cfg struct {
		DataDir   string
		Pollutant string
		Years     []string
		Region    struct {
			LeftX, TopY float64
		}
	}
	if _, err := toml.Decode(out, &cfg); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if cfg.DataDir != "../testdata/UKAirPollutionData" || cfg.Pollutant != "NO2" {
		t.Errorf("unexpected configuration %+v", cfg)
	}
	if len(cfg.Years) != 2 || cfg.Years[1] != "2021" {
		t.Errorf("years = %v", cfg.Years)
	}
	if cfg.Region.LeftX != 510394 || cfg.Region.TopY != 193305 {
		t.Errorf("region = %+v", cfg.Region)
	}
}

func TestSummary(t *testing.T) {
	setTestConfig()
	out, err := run(t, "summary")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"NO2 2019 (Annual mean, ugm-3)",
		"Measurements: 4, of which 2 valid within the map region",
		"Average of all measurements: 58.33",
		"Average within the map region: 38.00",
		"Highest measurement: 99.00 at location (400000, 180000), grid code 1004",
		"Highest within the map region: 45.50 at location (545000, 170000), grid code 1005",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryMissingYear(t *testing.T) {
	setTestConfig()
	Cfg.Set("Year", "2018")
	out, err := run(t, "summary")
	if err != nil {
		t.Fatal(err)
	}
	if want := "No data available for NO2 in 2018."; !strings.Contains(out, want) {
		t.Errorf("have %q, want %q", out, want)
	}
}

func TestTrend(t *testing.T) {
	setTestConfig()
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	f := filepath.Join(dir, "trend.png")
	Cfg.Set("OutputFile", f)

	out, err := run(t, "trend")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"2019\t38.00\n",
		"2021\t12.50\n",
		"The average pollution level from 2019 to 2021 is: 25.25 µg/m³",
		"The highest pollution level from 2019 to 2021 was: 45.50 µg/m³ in 2019 at location (545000, 170000)",
		"Wrote " + f,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trend output missing %q:\n%s", want, out)
		}
	}
	if fi, err := os.Stat(f); err != nil || fi.Size() == 0 {
		t.Errorf("trend chart not written: %v", err)
	}
}

func TestPick(t *testing.T) {
	setTestConfig()
	// Grid cell 1001 is drawn at about (179.1, 247.8) on an 800 by 462 display.
	Cfg.Set("x", 185.)
	Cfg.Set("y", 253.)
	out, err := run(t, "pick")
	if err != nil {
		t.Fatal(err)
	}
	if want := "NO2: 30.50\nLocation: 520000, 180000\n"; out != want {
		t.Errorf("have %q, want %q", out, want)
	}

	Cfg.Set("x", 5.)
	Cfg.Set("y", 5.)
	out, err = run(t, "pick")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "No measurement at") {
		t.Errorf("unexpected pick output %q", out)
	}
}

func TestMap(t *testing.T) {
	setTestConfig()
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	f := filepath.Join(dir, "map.png")
	Cfg.Set("OutputFile", f)

	if _, err := run(t, "map"); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(f); err != nil || fi.Size() == 0 {
		t.Errorf("map not written: %v", err)
	}
}

func TestExport(t *testing.T) {
	setTestConfig()
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	f := filepath.Join(dir, "trend.xlsx")
	Cfg.Set("OutputFile", f)

	if _, err := run(t, "export"); err != nil {
		t.Fatal(err)
	}
	wb, err := xlsx.OpenFile(f)
	if err != nil {
		t.Fatal(err)
	}
	sheet, ok := wb.Sheet["Trend"]
	if !ok {
		t.Fatal("missing Trend sheet")
	}
	// Header, two years and the overall row.
	if len(sheet.Rows) != 4 {
		t.Fatalf("have %d rows, want 4", len(sheet.Rows))
	}
	overall := sheet.Rows[3]
	if overall.Cells[0].Value != "Overall" {
		t.Errorf("last row label %q", overall.Cells[0].Value)
	}
	if v, err := overall.Cells[1].Float(); err != nil || v != 25.25 {
		t.Errorf("overall average = %g (%v), want 25.25", v, err)
	}
	if v, err := overall.Cells[3].Int(); err != nil || v != 1005 {
		t.Errorf("overall highest grid code = %d (%v), want 1005", v, err)
	}
}

func TestBadPollutant(t *testing.T) {
	setTestConfig()
	Cfg.Set("Pollutant", "CO")
	if _, err := run(t, "summary"); err == nil {
		t.Error("an unknown pollutant should be rejected")
	}
}
