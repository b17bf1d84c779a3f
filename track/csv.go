// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package track

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// csvHeader is the native full-fidelity sample format, one row per
// sample. Empty cells mean the channel is absent.
var csvHeader = []string{"time", "lat", "lon", "raw_alt", "baro_alt", "fused_alt", "elev_conf", "h_acc", "v_acc", "speed", "course"}

// ParseCSV reads a CSV sample file into a single track. The header
// row is optional. Timestamps are RFC 3339, an empty course cell
// means the course is unknown.
func ParseCSV(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = len(csvHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse CSV file: %w", err)
	}

	t := &Track{}

	for i, row := range rows {
		if i == 0 && row[0] == csvHeader[0] {
			continue
		}
		s, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("could not parse CSV file, row %d: %w", i+1, err)
		}
		t.Samples = append(t.Samples, s)
	}

	return &File{Source: path, Tracks: []*Track{t}}, nil
}

func parseCSVRow(row []string) (Sample, error) {
	s := Sample{}

	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return s, err
	}
	s.Timestamp = ts

	if s.Lat, err = strconv.ParseFloat(row[1], 64); err != nil {
		return s, err
	}
	if s.Lon, err = strconv.ParseFloat(row[2], 64); err != nil {
		return s, err
	}
	if s.RawAltitude, err = strconv.ParseFloat(row[3], 64); err != nil {
		return s, err
	}

	if s.BarometricAltitude, err = parseOptCell(row[4]); err != nil {
		return s, err
	}
	if s.FusedAltitude, err = parseOptCell(row[5]); err != nil {
		return s, err
	}
	if s.ElevationConfidence, err = parseOptCell(row[6]); err != nil {
		return s, err
	}

	if s.HorizontalAccuracy, err = parseCell(row[7], 0); err != nil {
		return s, err
	}
	if s.VerticalAccuracy, err = parseCell(row[8], 0); err != nil {
		return s, err
	}
	if s.Speed, err = parseCell(row[9], 0); err != nil {
		return s, err
	}
	if s.Course, err = parseCell(row[10], -1); err != nil {
		return s, err
	}

	return s, nil
}

func parseCell(cell string, def float64) (float64, error) {
	if cell == "" {
		return def, nil
	}
	return strconv.ParseFloat(cell, 64)
}

func parseOptCell(cell string) (*float64, error) {
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteCSV writes all samples with their full channel set. CSV
// carries one flat sample sequence, tracks are concatenated in
// order.
func WriteCSV(f *File, path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	w := csv.NewWriter(fh)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range f.Tracks {
		for _, s := range t.Samples {
			if err := w.Write(csvRow(s)); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func csvRow(s Sample) []string {
	row := make([]string, len(csvHeader))

	row[0] = s.Timestamp.Format(time.RFC3339Nano)
	row[1] = formatCell(s.Lat)
	row[2] = formatCell(s.Lon)
	row[3] = formatCell(s.RawAltitude)
	row[4] = formatOptCell(s.BarometricAltitude)
	row[5] = formatOptCell(s.FusedAltitude)
	row[6] = formatOptCell(s.ElevationConfidence)
	row[7] = formatCell(s.HorizontalAccuracy)
	row[8] = formatCell(s.VerticalAccuracy)
	row[9] = formatCell(s.Speed)
	if s.Course >= 0 {
		row[10] = formatCell(s.Course)
	}

	return row
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptCell(v *float64) string {
	if v == nil {
		return ""
	}
	return formatCell(*v)
}
