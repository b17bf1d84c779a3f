// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package track

import (
	"fmt"
	"os"

	"github.com/tkrajina/gpxgo/gpx"
)

// ParseGPX reads a GPX file. Every track segment becomes one Track,
// since samples are only comparable within one continuous recording.
// GPX carries no barometric or fused altitude, no accuracies and no
// speed or course channels, these stay absent after parsing.
func ParseGPX(path string) (*File, error) {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not parse GPX file: %w", err)
	}

	f := &File{Source: path}

	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			t := &Track{Name: trk.Name}

			for _, p := range seg.Points {
				s := Sample{
					Timestamp: p.Timestamp,
					Lat:       p.Latitude,
					Lon:       p.Longitude,
					Course:    -1,
				}
				if p.Elevation.NotNull() {
					s.RawAltitude = p.Elevation.Value()
				}
				t.Samples = append(t.Samples, s)
			}

			f.Tracks = append(f.Tracks, t)
		}
	}

	return f, nil
}

// WriteGPX writes all tracks of a file, one segment per track, with
// the resolved best altitude as the GPX elevation.
func WriteGPX(f *File, path string) error {
	g := &gpx.GPX{Creator: "tracktidy", Version: "1.1"}

	for _, t := range f.Tracks {
		seg := gpx.GPXTrackSegment{}

		for _, s := range t.Samples {
			seg.Points = append(seg.Points, gpx.GPXPoint{
				Point: gpx.Point{
					Latitude:  s.Lat,
					Longitude: s.Lon,
					Elevation: *gpx.NewNullableFloat64(s.BestAltitude()),
				},
				Timestamp: s.Timestamp,
			})
		}

		g.Tracks = append(g.Tracks, gpx.GPXTrack{Name: t.Name, Segments: []gpx.GPXTrackSegment{seg}})
	}

	bytes, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("could not write GPX file: %w", err)
	}

	return os.WriteFile(path, bytes, 0644)
}
