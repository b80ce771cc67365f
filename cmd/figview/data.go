package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// loadSeries reads line series from a CSV whose header row names the
// columns; the first column is x. With no path it returns the built-in
// demo set.
func loadSeries(path string) (x []float64, names []string, ys [][]float64, err error) {
	if path == "" {
		x, names, ys = demoSeries()
		return x, names, ys, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(recs) < 2 {
		return nil, nil, nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}
	head := recs[0]
	if len(head) < 2 {
		return nil, nil, nil, fmt.Errorf("%s: need an x column and at least one series column", path)
	}
	rows := recs[1:]
	for c := 1; c < len(head); c++ {
		names = append(names, strings.TrimSpace(head[c]))
	}
	x = make([]float64, len(rows))
	ys = make([][]float64, len(names))
	for i := range ys {
		ys[i] = make([]float64, len(rows))
	}
	for r, rec := range rows {
		for c, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("%s row %d: bad value %q", path, r+2, field)
			}
			if c == 0 {
				x[r] = v
			} else {
				ys[c-1][r] = v
			}
		}
	}
	return x, names, ys, nil
}

// demoSeries is a pair of damped oscillations, enough to drag labels
// around without hunting for a data file.
func demoSeries() (x []float64, names []string, ys [][]float64) {
	const n = 120
	x = make([]float64, n)
	u := make([]float64, n)
	v := make([]float64, n)
	for i := range x {
		t := float64(i) / 2
		x[i] = t
		u[i] = math.Exp(-t/30) * math.Cos(t/4)
		v[i] = math.Exp(-t/40) * math.Sin(t/5)
	}
	return x, []string{"u", "v"}, [][]float64{u, v}
}
