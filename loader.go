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
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Loader loads the measurements for a pollutant and year.
type Loader interface {
	Load(p Pollutant, year string) (*DataSet, error)
}

// FileLoader loads measurement files from a directory laid out
// as described by SourcePath.
type FileLoader struct {
	// Dir is the directory holding the per-pollutant folders.
	Dir string

	// Log receives load diagnostics. If nil, the standard
	// logrus logger is used.
	Log logrus.FieldLogger
}

// Load reads the file for pollutant p and the given year. Metadata
// missing from the file is filled in from p and year.
func (l *FileLoader) Load(p Pollutant, year string) (*DataSet, error) {
	d, err := LoadFile(SourcePath(l.Dir, p, year), l.Log)
	if err != nil {
		return nil, err
	}
	if d.Pollutant == "" {
		d.Pollutant = p.String()
	}
	if d.Year == "" {
		d.Year = year
	}
	return d, nil
}

// LoadFile reads the measurement file at path. If the file cannot be
// opened the returned error wraps ErrSourceUnavailable.
func LoadFile(path string, log logrus.FieldLogger) (*DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pollutionmap: opening %s: %v: %w", path, err, ErrSourceUnavailable)
	}
	defer f.Close()
	log = logOrDefault(log).WithField("file", path)
	d, err := Load(f, log)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"pollutant": d.Pollutant,
		"year":      d.Year,
		"points":    d.Len(),
	}).Debug("loaded measurements")
	return d, nil
}

// Load reads measurements from r. Leading rows up to the first row with
// at least four fields that starts with an integer grid code are treated
// as metadata: "key,value" rows set the pollutant, year, metric or unit
// by name, single-value rows set the first of those that is still empty,
// and anything else (such as a column header) is ignored. Every later row
// is a data row; data rows that cannot be parsed are skipped.
//
// Each line is parsed on its own, so an unbalanced quote only affects
// the row it is in. Load only fails if r returns an error, in which case
// the returned error wraps ErrSourceUnavailable.
func Load(r io.Reader, log logrus.FieldLogger) (*DataSet, error) {
	log = logOrDefault(log)

	d := new(DataSet)
	var (
		inData  bool
		skipped int
	)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for line := 1; s.Scan(); line++ {
		rec, err := parseLine(s.Text())
		if err == io.EOF {
			continue // blank line
		}
		if err != nil {
			log.WithError(err).WithField("line", line).Debug("skipping unreadable row")
			skipped++
			continue
		}
		if !inData {
			if !isDataRow(rec) {
				d.setMetadata(rec)
				continue
			}
			inData = true
		}
		if err := d.AddData(rec); err != nil {
			log.WithError(err).WithField("line", line).Debug("skipping row")
			skipped++
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("pollutionmap: reading measurements: %v: %w", err, ErrSourceUnavailable)
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Debug("skipped malformed rows")
	}
	return d, nil
}

// maxLineLength is the longest line Load accepts.
const maxLineLength = 1 << 20

// parseLine splits a single line into fields. It returns io.EOF for
// a blank line.
func parseLine(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return cr.Read()
}

// isDataRow returns whether rec has the four data fields and starts
// with an integer grid code.
func isDataRow(rec []string) bool {
	if len(rec) < 4 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	return err == nil
}

// setMetadata fills in the DataSet metadata from a header row.
func (d *DataSet) setMetadata(rec []string) {
	var vals []string
	for _, f := range rec {
		if f = strings.TrimSpace(f); f != "" {
			vals = append(vals, f)
		}
	}
	switch len(vals) {
	case 1:
		for _, field := range []*string{&d.Pollutant, &d.Year, &d.Metric, &d.Unit} {
			if *field == "" {
				*field = vals[0]
				return
			}
		}
	case 2:
		switch strings.ToLower(vals[0]) {
		case "pollutant":
			d.Pollutant = vals[1]
		case "year":
			d.Year = vals[1]
		case "metric":
			d.Metric = vals[1]
		case "unit", "units":
			d.Unit = vals[1]
		}
	}
}
