// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

import (
	"math"

	"github.com/patrickbr/tracktidy/track"
)

var DEG_TO_RAD float64 = 0.017453292519943295769236907684886127134428718885417254560

// mean earth radius in meters
const earthRadius = 6371000.0

// Calculate the great-circle distance in meters between two samples
func distP(a *track.Sample, b *track.Sample) float64 {
	return haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Calculate the distance in meters between two lat,lng pairs
func haversine(latA float64, lonA float64, latB float64, lonB float64) float64 {
	latA = latA * DEG_TO_RAD
	lonA = lonA * DEG_TO_RAD
	latB = latB * DEG_TO_RAD
	lonB = lonB * DEG_TO_RAD

	dlat := latB - latA
	dlon := lonB - lonA

	sindlat := math.Sin(dlat / 2)
	sindlon := math.Sin(dlon / 2)

	a := sindlat*sindlat + math.Cos(latA)*math.Cos(latB)*sindlon*sindlon

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * earthRadius
}

// Calculate the perpendicular deviation in meters of sample p from
// the chord [a, b]. The projection parameter is computed on raw
// degrees, the returned deviation is the great-circle distance to the
// projected location. Points projecting outside the chord are
// measured against the nearest endpoint.
func perpendicularDist(p *track.Sample, a *track.Sample, b *track.Sample) float64 {
	d := dist(a.Lon, a.Lat, b.Lon, b.Lat) * dist(a.Lon, a.Lat, b.Lon, b.Lat)

	if d == 0 {
		return haversine(p.Lat, p.Lon, a.Lat, a.Lon)
	}

	t := ((p.Lon-a.Lon)*(b.Lon-a.Lon) + (p.Lat-a.Lat)*(b.Lat-a.Lat)) / d
	if t < 0 {
		return haversine(p.Lat, p.Lon, a.Lat, a.Lon)
	} else if t > 1 {
		return haversine(p.Lat, p.Lon, b.Lat, b.Lon)
	}

	return haversine(p.Lat, p.Lon, a.Lat+t*(b.Lat-a.Lat), a.Lon+t*(b.Lon-a.Lon))
}

// Calculate the planar distance between two points (x1, y1) and (x2, y2)
func dist(x1 float64, y1 float64, x2 float64, y2 float64) float64 {
	return math.Sqrt((x2-x1)*(x2-x1) + (y2-y1)*(y2-y1))
}

// Calculate the forward azimuth in degrees [0, 360) from a to b
func bearing(a *track.Sample, b *track.Sample) float64 {
	latA := a.Lat * DEG_TO_RAD
	latB := b.Lat * DEG_TO_RAD
	dlon := (b.Lon - a.Lon) * DEG_TO_RAD

	y := math.Sin(dlon) * math.Cos(latB)
	x := math.Cos(latA)*math.Sin(latB) - math.Sin(latA)*math.Cos(latB)*math.Cos(dlon)

	deg := math.Atan2(y, x) / DEG_TO_RAD

	return math.Mod(deg+360.0, 360.0)
}

// Calculate the signed bearing change in degrees between the segments
// (a, b) and (b, c), normalized to (-180, 180]
func turnAngle(a *track.Sample, b *track.Sample, c *track.Sample) float64 {
	d := bearing(b, c) - bearing(a, b)

	for d <= -180.0 {
		d += 360.0
	}
	for d > 180.0 {
		d -= 360.0
	}

	return d
}
