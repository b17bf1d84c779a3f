// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package track

import (
	"os"

	"github.com/paulmach/go.geojson"
)

// WriteGeoJSON exports every track as a LineString feature with
// (lon, lat, best altitude) coordinates.
func WriteGeoJSON(f *File, path string) error {
	fc := geojson.NewFeatureCollection()

	for _, t := range f.Tracks {
		coords := make([][]float64, 0, len(t.Samples))
		for _, s := range t.Samples {
			coords = append(coords, []float64{s.Lon, s.Lat, s.BestAltitude()})
		}

		feat := geojson.NewLineStringFeature(coords)
		feat.SetProperty("name", t.Name)
		feat.SetProperty("points", len(t.Samples))
		fc.AddFeature(feat)
	}

	bytes, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, bytes, 0644)
}
