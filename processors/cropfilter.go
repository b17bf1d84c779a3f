// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"fmt"
	"os"

	"github.com/patrickbr/tracktidy/track"
)

// A Polygon is an outer ring with optional inner hole rings, vertices
// in (lon, lat) order and rings closed.
type Polygon struct {
	Outer  [][2]float64
	Inners [][][2]float64
}

// NewPolygon builds a polygon from an outer ring and inner hole rings
func NewPolygon(outer [][2]float64, inners [][][2]float64) Polygon {
	return Polygon{Outer: outer, Inners: inners}
}

// Contains checks whether the point (x, y) lies within the outer ring
// and outside every hole
func (p Polygon) Contains(x float64, y float64) bool {
	if !ringContains(p.Outer, x, y) {
		return false
	}
	for _, inner := range p.Inners {
		if ringContains(inner, x, y) {
			return false
		}
	}
	return true
}

// ringContains does a ray crossing test against a closed ring
func ringContains(ring [][2]float64, x float64, y float64) bool {
	c := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		if (ring[i][1] > y) != (ring[j][1] > y) &&
			x < (ring[j][0]-ring[i][0])*(y-ring[i][1])/(ring[j][1]-ring[i][1])+ring[i][0] {
			c = !c
		}
		j = i
	}
	return c
}

// A CropFilter drops every sample lying outside all given polygons.
type CropFilter struct {
	Polygons []Polygon
}

// Run this CropFilter on some track file
func (c CropFilter) Run(f *track.File) {
	fmt.Fprintf(os.Stdout, "Cropping tracks... ")

	bef := f.NumSamples()

	for _, t := range f.Tracks {
		kept := make([]track.Sample, 0, len(t.Samples))

		for _, s := range t.Samples {
			for _, poly := range c.Polygons {
				if poly.Contains(s.Lon, s.Lat) {
					kept = append(kept, s)
					break
				}
			}
		}

		t.Samples = kept
	}

	fmt.Fprintf(os.Stdout, "done. (-%d samples [-%.2f%%])\n",
		bef-f.NumSamples(),
		100.0*float64(bef-f.NumSamples())/(float64(bef)+0.001))
}
