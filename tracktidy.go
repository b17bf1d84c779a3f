// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/patrickbr/tracktidy/archive"
	"github.com/patrickbr/tracktidy/processors"
	"github.com/patrickbr/tracktidy/track"
	"github.com/paulmach/go.geojson"
	flag "github.com/spf13/pflag"
)

func getPoly(poly [][][]float64) processors.Polygon {
	outer := make([][2]float64, len(poly[0]))
	inners := make([][][2]float64, 0)
	for i, c := range poly[0] {
		outer[i] = [2]float64{c[0], c[1]}
	}
	for i := 1; i < len(poly); i++ {
		inners = append(inners, make([][2]float64, len(poly[i])))
		for j, c := range poly[i] {
			inners[i-1][j] = [2]float64{c[0], c[1]}
		}
	}

	return processors.NewPolygon(outer, inners)
}

func parseCoords(s string) ([][2]float64, error) {
	coords := strings.Split(s, ",")

	if len(coords)%2 != 0 {
		return nil, errors.New("Uneven number of coordinates")
	}

	ret := make([][2]float64, 0)
	for i := 0; i < len(coords)/2; i++ {
		var x, y float64
		var err error
		y, err = strconv.ParseFloat(strings.Trim(coords[i*2], "\n "), 64)
		if err == nil {
			x, err = strconv.ParseFloat(strings.Trim(coords[i*2+1], "\n "), 64)
		}

		if err != nil {
			return nil, err
		}

		coord := [2]float64{x, y}
		ret = append(ret, coord)
	}
	return ret, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tracktidy - (C) 2016-2026 by Patrick Brosi <info@patrickbrosi.de>\n\nUsage:\n\n  %s [<options>] [-o <outputfile>] <input file(s)>\n\nAllowed options:\n\n", os.Args[0])
		flag.PrintDefaults()
	}

	polys := make([]processors.Polygon, 0)

	var bboxStrings []string
	var polygonStrings []string
	var polygonFiles []string

	onlyValidate := flag.BoolP("validation-mode", "v", false, "only parse and report, no processors will be called; with two input files, validate the second against the first")

	outputPath := flag.StringP("output", "o", "track-out.gpx", "output file, format chosen by the extension (.gpx, .csv, .json/.geojson)")

	useCompressor := flag.BoolP("compress", "c", false, "compress tracks, keeping behavioral key points and a Douglas-Peucker selection")
	useGeomSimplifier := flag.BoolP("min-geometry", "s", false, "simplify track geometry only (using Douglas-Peucker)")
	epsilon := flag.Float64P("epsilon", "e", 5.0, "simplification tolerance in meters")
	elevationThreshold := flag.Float64P("elevation-threshold", "", 2.0, "elevation key-point threshold in meters")
	noElevationKeypoints := flag.BoolP("no-elevation-keypoints", "", false, "do not force samples around elevation changes to be kept")
	ensureValid := flag.BoolP("ensure-valid", "", false, "re-compress with halved epsilon until the result passes validation")
	maxPoints := flag.IntP("max-points", "", 0, "upper bound on kept points per track, 0 means unbounded")

	useRemeasurer := flag.BoolP("remeasure", "m", false, "recompute missing speed and course from geometry")
	useOutlierRemover := flag.BoolP("remove-outliers", "O", false, "drop samples implying implausible speed")
	maxSpeed := flag.Float64P("max-speed", "", 12.0, "outlier speed ceiling in m/s")
	usePauseDropper := flag.BoolP("drop-pauses", "P", false, "collapse stationary pause clusters into a single sample")
	pauseRadius := flag.Float64P("pause-radius", "", 10.0, "pause cluster radius in meters")
	pauseMinDuration := flag.Float64P("pause-min-duration", "", 30.0, "minimum pause duration in seconds")
	useElevationSmoother := flag.BoolP("smooth-elevation", "E", false, "median-smooth the altitude channels")
	smoothWindow := flag.IntP("smooth-window", "", 5, "elevation smoothing window size, forced to be odd")

	flag.StringArrayVar(&bboxStrings, "bounding-box", []string{}, "bounding box filter, as comma separated latitude,longitude pairs (multiple boxes allowed by defining --bounding-box multiple times)")
	flag.StringArrayVar(&polygonStrings, "polygon", []string{}, "polygon filter, as comma separated latitude,longitude pairs (multiple polygons allowed by defining --polygon multiple times)")
	flag.StringArrayVar(&polygonFiles, "polygon-file", []string{}, "polygon filter, as a file containing comma separated latitude,longitude pairs (multiple polygons allowed by defining --polygon-file multiple times), or a GeoJSON file ending with .geojson or .json")

	showStats := flag.BoolP("stats", "", false, "print per-track statistics after processing")
	archivePath := flag.StringP("archive", "", "", "append compression run records to the given sqlite archive")

	fixShortHand := flag.BoolP("fix", "f", false, "shorthand for -m -O -P")
	compressShortHand := flag.BoolP("Compress", "C", false, "shorthand for -f -E -c --ensure-valid")

	help := flag.BoolP("help", "?", false, "this message")

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	trackPaths := flag.Args()

	if len(trackPaths) == 0 {
		fmt.Fprintln(os.Stderr, "No input track file specified, see --help")
		os.Exit(1)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "Error:", r)
		}
	}()

	if *compressShortHand {
		*fixShortHand = true
		*useElevationSmoother = true
		*useCompressor = true
		*ensureValid = true
	}

	if *fixShortHand {
		*useRemeasurer = true
		*useOutlierRemover = true
		*usePauseDropper = true
	}

	for _, polyFile := range polygonFiles {
		if strings.HasSuffix(polyFile, ".json") || strings.HasSuffix(polyFile, ".geojson") {
			json, err := os.ReadFile(polyFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nCould not parse polygon filter file: ")
				fmt.Fprintf(os.Stderr, err.Error()+".\n")
				os.Exit(1)
			}
			fc, err := geojson.UnmarshalFeatureCollection(json)

			if err != nil {
				fmt.Fprintf(os.Stderr, "\nCould not parse polygon filter file: ")
				fmt.Fprintf(os.Stderr, err.Error()+".\n")
				os.Exit(1)
			}

			for _, feature := range fc.Features {
				if feature.Geometry.IsMultiPolygon() {
					for _, poly := range feature.Geometry.MultiPolygon {
						polys = append(polys, getPoly(poly))
					}
				}
				if feature.Geometry.IsPolygon() {
					polys = append(polys, getPoly(feature.Geometry.Polygon))
				}
			}
		} else {
			bytes, err := os.ReadFile(polyFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nCould not parse polygon filter file: ")
				fmt.Fprintf(os.Stderr, err.Error()+".\n")
				os.Exit(1)
			}

			polygonStrings = append(polygonStrings, string(bytes))
		}
	}

	for _, polyString := range polygonStrings {
		poly := make([][2]float64, 0)

		if len(polyString) > 0 {
			var err error
			poly, err = parseCoords(polyString)

			if err != nil {
				fmt.Fprintf(os.Stderr, "\nCould not parse polygon filter: ")
				fmt.Fprintf(os.Stderr, err.Error()+".\n")
				os.Exit(1)
			}
		}

		// ensure polygon is closed
		if len(poly) > 1 && (poly[0][0] != poly[len(poly)-1][0] || poly[0][1] != poly[len(poly)-1][1]) {
			poly = append(poly, [2]float64{poly[0][0], poly[0][1]})
		}

		polys = append(polys, processors.NewPolygon(poly, make([][][2]float64, 0)))
	}

	for _, bboxString := range bboxStrings {
		bbox := make([][2]float64, 0)
		bboxString = strings.Trim(bboxString, " ")

		if len(bboxString) > 0 {
			var err error
			bbox, err = parseCoords(bboxString)

			if err != nil {
				fmt.Fprintf(os.Stderr, "\nCould not parse bounding box filter: ")
				fmt.Fprintf(os.Stderr, err.Error()+".\n")
				os.Exit(1)
			}
		}

		if len(bbox) == 2 {
			poly := make([][2]float64, 0, 5)

			poly = append(poly, [2]float64{bbox[0][0], bbox[0][1]})
			poly = append(poly, [2]float64{bbox[0][0], bbox[1][1]})
			poly = append(poly, [2]float64{bbox[1][0], bbox[1][1]})
			poly = append(poly, [2]float64{bbox[1][0], bbox[0][1]})
			poly = append(poly, [2]float64{bbox[0][0], bbox[0][1]})

			polys = append(polys, processors.NewPolygon(poly, make([][][2]float64, 0)))
		}
	}

	if *onlyValidate {
		files := make([]*track.File, 0, len(trackPaths))

		for _, trackPath := range trackPaths {
			fmt.Fprintf(os.Stdout, "Parsing track file '%s' ...", trackPath)
			in, e := track.Parse(trackPath)

			if e != nil {
				fmt.Fprintf(os.Stderr, "\nError while parsing track file:\n")
				fmt.Fprintln(os.Stderr, e.Error())
				os.Exit(1)
			}

			fmt.Fprintf(os.Stdout, " done. (%d tracks, %d samples)\n", len(in.Tracks), in.NumSamples())
			processors.StatsReporter{}.Run(in)
			files = append(files, in)
		}

		if len(files) == 2 {
			v := processors.Validator{}
			orig := files[0]
			comp := files[1]

			if len(orig.Tracks) != len(comp.Tracks) {
				fmt.Fprintf(os.Stdout, "Track counts differ (%d vs %d), validating pairwise where possible.\n", len(orig.Tracks), len(comp.Tracks))
			}

			for i := 0; i < len(orig.Tracks) && i < len(comp.Tracks); i++ {
				res := v.Validate(orig.Tracks[i].Samples, comp.Tracks[i].Samples)

				verdict := "OK"
				if !res.IsValid {
					verdict = "FAILED"
				}

				fmt.Fprintf(os.Stdout, "track %d: elevation gain error %.2f m [%.2f%%], distance error %.2f m [%.2f%%] -> %s\n",
					i+1, res.ElevationGainError, res.ElevationGainErrorPct,
					res.DistanceError, res.DistanceErrorPct, verdict)
			}
		}
		os.Exit(0)
	}

	f := &track.File{Source: trackPaths[0]}

	for _, trackPath := range trackPaths {
		fmt.Fprintf(os.Stdout, "Parsing track file '%s' ...", trackPath)
		in, e := track.Parse(trackPath)

		if e != nil {
			fmt.Fprintf(os.Stderr, "\nError while parsing track file:\n")
			fmt.Fprintln(os.Stderr, e.Error())
			os.Exit(1)
		}

		f.Tracks = append(f.Tracks, in.Tracks...)
		fmt.Fprintf(os.Stdout, " done. (%d tracks, %d samples)\n", len(in.Tracks), in.NumSamples())
	}

	minzers := make([]processors.Processor, 0)

	if len(polys) > 0 {
		minzers = append(minzers, processors.CropFilter{Polygons: polys})
	}

	if *useRemeasurer {
		minzers = append(minzers, processors.Remeasurer{})
	}

	if *useOutlierRemover {
		minzers = append(minzers, processors.OutlierRemover{MaxSpeed: *maxSpeed})
	}

	if *usePauseDropper {
		minzers = append(minzers, processors.PauseDropper{Radius: *pauseRadius, MinDuration: *pauseMinDuration})
	}

	if *useElevationSmoother {
		minzers = append(minzers, processors.ElevationSmoother{Window: *smoothWindow})
	}

	if *useGeomSimplifier {
		minzers = append(minzers, processors.PathSimplifier{Epsilon: *epsilon})
	}

	if *useCompressor {
		comp := processors.Compressor{
			Epsilon:                  *epsilon,
			ElevationThreshold:       *elevationThreshold,
			PreserveElevationChanges: !*noElevationKeypoints,
			EnsureValid:              *ensureValid,
			MaxPoints:                *maxPoints,
			Source:                   trackPaths[0],
		}

		if *archivePath != "" {
			a, err := archive.Open(*archivePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nCould not open archive: ")
				fmt.Fprintf(os.Stderr, err.Error()+".\n")
				os.Exit(1)
			}
			defer a.Close()
			comp.Archive = a
		}

		minzers = append(minzers, comp)
	}

	if *showStats {
		minzers = append(minzers, processors.StatsReporter{})
	}

	// do processing
	for _, m := range minzers {
		m.Run(f)
	}

	fmt.Fprintf(os.Stdout, "Outputting tracks to '%s'...", *outputPath)

	if e := track.Write(f, *outputPath); e != nil {
		fmt.Fprintf(os.Stderr, "\nError while writing tracks to '%s':\n ", *outputPath)
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, " done.\n")
}
