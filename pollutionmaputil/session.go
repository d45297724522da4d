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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/pollutionmap"
	"github.com/spatialmodel/pollutionmap/chart"
	"github.com/spf13/cast"
	"gonum.org/v1/plot/vg"
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	}
	return l
}

// session holds the settings shared by the commands.
type session struct {
	pollutant     pollutionmap.Pollutant
	region        pollutionmap.Region
	loader        pollutionmap.Loader
	years         []string
	width, height float64
	open          bool
}

// newSession creates a session from the configuration in Cfg.
func newSession() (*session, error) {
	p, err := pollutionmap.ParsePollutant(Cfg.GetString("Pollutant"))
	if err != nil {
		return nil, err
	}
	r, err := pollutionmap.NewRegion(
		Cfg.GetFloat64("Region.LeftX"), Cfg.GetFloat64("Region.RightX"),
		Cfg.GetFloat64("Region.BottomY"), Cfg.GetFloat64("Region.TopY"))
	if err != nil {
		return nil, err
	}
	years, err := cast.ToStringSliceE(Cfg.Get("Years"))
	if err != nil {
		return nil, fmt.Errorf("pollutionmap: invalid Years: %v", err)
	}
	s := &session{
		pollutant: p,
		region:    r,
		years:     years,
		width:     Cfg.GetFloat64("Width"),
		height:    Cfg.GetFloat64("Height"),
		open:      Cfg.GetBool("open"),
	}
	var l pollutionmap.Loader = &pollutionmap.FileLoader{
		Dir: os.ExpandEnv(Cfg.GetString("DataDir")),
		Log: Log,
	}
	if n := Cfg.GetInt("CacheSize"); n > 0 {
		l = pollutionmap.NewCachedLoader(l, n)
	}
	s.loader = l
	return s, nil
}

func (s *session) newTrend() *pollutionmap.Trend {
	return &pollutionmap.Trend{
		Loader: s.loader,
		Region: s.region,
		Years:  s.years,
		Log:    Log,
	}
}

// load loads the measurements for the given year. ok is false if there
// are none, in which case a message has been written to w.
func (s *session) load(w io.Writer, year string) (d *pollutionmap.DataSet, ok bool, err error) {
	d, err = s.loader.Load(s.pollutant, year)
	if errors.Is(err, pollutionmap.ErrSourceUnavailable) {
		Log.WithError(err).Warn("no data")
		fmt.Fprintf(w, "No data available for %s in %s.\n", s.pollutant, year)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// period describes the range of years in the trend.
func (s *session) period() string {
	if len(s.years) == 0 {
		return "no years"
	}
	return fmt.Sprintf("from %s to %s", s.years[0], s.years[len(s.years)-1])
}

func (s *session) summary(w io.Writer, year string) error {
	d, ok, err := s.load(w, year)
	if !ok || err != nil {
		return err
	}
	var inRegion int
	for _, p := range d.Data() {
		if s.region.Valid(p) {
			inRegion++
		}
	}
	fmt.Fprintf(w, "%s %s (%s, %s)\n", s.pollutant, year, d.Metric, d.Unit)
	fmt.Fprintf(w, "Measurements: %d, of which %d valid within the map region\n", d.Len(), inRegion)
	fmt.Fprintf(w, "Average of all measurements: %.2f\n", d.ValidAverage())
	fmt.Fprintf(w, "Average within the map region: %.2f\n", s.region.ValidAverage(d.Data()))
	if p, ok := d.HighestDataPoint(); ok {
		fmt.Fprintf(w, "Highest measurement: %.2f at location (%d, %d), grid code %d\n",
			p.Value, p.X, p.Y, p.GridCode)
	} else {
		fmt.Fprintln(w, "No data available for the highest pollution level.")
	}
	if p, ok := s.region.HighestValid(d.Data()); ok {
		fmt.Fprintf(w, "Highest within the map region: %.2f at location (%d, %d), grid code %d\n",
			p.Value, p.X, p.Y, p.GridCode)
	}
	return nil
}

func (s *session) trend(w io.Writer, outputFile string) error {
	t := s.newTrend()
	avgs := t.YearlyValidAverages(s.pollutant)
	for _, a := range avgs {
		fmt.Fprintf(w, "%s\t%.2f\n", a.Year, a.Average)
	}
	fmt.Fprintf(w, "The average pollution level %s is: %.2f µg/m³\n",
		s.period(), pollutionmap.MeanOfPositive(avgs))

	_, max := t.YearlyValidMaxima(s.pollutant)
	if max.Found {
		fmt.Fprintf(w, "The highest pollution level %s was: %.2f µg/m³ in %s at location (%d, %d)\n",
			s.period(), max.Point.Value, max.Year, max.Point.X, max.Point.Y)
	} else {
		fmt.Fprintln(w, "No data available for the highest pollution level.")
	}

	if outputFile == "" {
		return nil
	}
	plt, err := chart.Trend(s.pollutant, avgs)
	if err != nil {
		return err
	}
	if err := plt.Save(vg.Points(s.width), vg.Points(s.height), outputFile); err != nil {
		return fmt.Errorf("pollutionmap: saving trend chart: %v", err)
	}
	return s.written(w, outputFile)
}

func (s *session) pick(w io.Writer, year string, x, y float64) error {
	d, ok, err := s.load(w, year)
	if !ok || err != nil {
		return err
	}
	pk := pollutionmap.NewPicker(s.region, d.Data(), s.width, s.height)
	p, ok := pk.Pick(x, y)
	if !ok {
		fmt.Fprintf(w, "No measurement at (%g, %g).\n", x, y)
		return nil
	}
	fmt.Fprintln(w, pollutionmap.Describe(s.pollutant, p))
	return nil
}

func (s *session) drawMap(w io.Writer, year, outputFile string) error {
	d, ok, err := s.load(w, year)
	if !ok || err != nil {
		return err
	}
	if outputFile == "" {
		outputFile = s.fileName(year, "map.png")
	}
	pk := pollutionmap.NewPicker(s.region, d.Data(), s.width, s.height)
	plt, err := chart.Map(s.pollutant, s.region, pk.Markers())
	if err != nil {
		return err
	}
	if err := plt.Save(vg.Points(s.width), vg.Points(s.height), outputFile); err != nil {
		return fmt.Errorf("pollutionmap: saving map: %v", err)
	}
	return s.written(w, outputFile)
}

func (s *session) export(w io.Writer, outputFile string) error {
	if outputFile == "" {
		outputFile = s.fileName("trend", "xlsx")
	}
	if err := writeTrendXLSX(s.newTrend(), s.pollutant, outputFile); err != nil {
		return err
	}
	return s.written(w, outputFile)
}

// fileName returns a default output file name.
func (s *session) fileName(label, ext string) string {
	name := strings.Replace(strings.ToLower(s.pollutant.String()), ".", "", -1)
	return fmt.Sprintf("%s_%s_%s", name, label, ext)
}

// written reports that file has been written and opens it if requested.
func (s *session) written(w io.Writer, file string) error {
	fmt.Fprintf(w, "Wrote %s\n", file)
	if !s.open {
		return nil
	}
	if err := open.Run(file); err != nil {
		return fmt.Errorf("pollutionmap: opening %s: %v", file, err)
	}
	return nil
}

// writeConfig writes the current configuration to w in TOML format.
func writeConfig(w io.Writer) error {
	cfg := make(map[string]interface{})
	for _, o := range options {
		if o.name == "config" {
			continue
		}
		m := cfg
		parts := strings.Split(o.name, ".")
		for _, p := range parts[:len(parts)-1] {
			sub, ok := m[p].(map[string]interface{})
			if !ok {
				sub = make(map[string]interface{})
				m[p] = sub
			}
			m = sub
		}
		m[parts[len(parts)-1]] = configValue(o)
	}
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("pollutionmap: writing configuration: %v", err)
	}
	return nil
}

// configValue returns the value of o with the type of its default.
// Values read from flags are otherwise returned as strings.
func configValue(o option) interface{} {
	switch o.defaultVal.(type) {
	case []string:
		return cast.ToStringSlice(Cfg.Get(o.name))
	case bool:
		return Cfg.GetBool(o.name)
	case int:
		return Cfg.GetInt(o.name)
	case float64:
		return Cfg.GetFloat64(o.name)
	default:
		return Cfg.GetString(o.name)
	}
}
