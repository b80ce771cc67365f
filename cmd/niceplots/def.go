package main

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/plot/vg"

	"github.com/eirikurj/niceplots/src/charts"
)

// barDef is the TOML schema for the bar subcommand. Rows come either from
// the inline labels/values arrays or from a data CSV of label,value
// records (no header row).
type barDef struct {
	Header      []string  `toml:"header"`
	Labels      []string  `toml:"labels"`
	Values      []float64 `toml:"values"`
	Data        string    `toml:"data"`
	TextScale   float64   `toml:"text_scale"`
	Decimals    *int      `toml:"decimals"`
	WidthIn     float64   `toml:"width_in"`
	RowHeightIn float64   `toml:"row_height_in"`
	MarkerColor string    `toml:"marker_color"`
}

func loadBarDef(path string) (barDef, error) {
	var d barDef
	data, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := toml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

func (d barDef) header() ([2]string, error) {
	if len(d.Header) != 2 {
		return [2]string{}, fmt.Errorf("bar definition: header needs exactly 2 entries, got %d", len(d.Header))
	}
	return [2]string{d.Header[0], d.Header[1]}, nil
}

// rows resolves the label and value columns. Relative CSV paths resolve
// next to the definition file in dir.
func (d barDef) rows(dir string) ([]string, []float64, error) {
	switch {
	case d.Data != "" && (len(d.Labels) > 0 || len(d.Values) > 0):
		return nil, nil, fmt.Errorf("bar definition: data file and inline labels/values are mutually exclusive")
	case d.Data != "":
		return readLabelValueCSV(resolvePath(dir, d.Data))
	default:
		return d.Labels, d.Values, nil
	}
}

func (d barDef) options() (charts.BarOptions, error) {
	o := charts.DefaultBarOptions()
	if d.TextScale > 0 {
		o.TextScale = d.TextScale
	}
	if d.Decimals != nil {
		o.Decimals = *d.Decimals
	}
	if d.WidthIn > 0 {
		o.Width = vg.Length(d.WidthIn) * vg.Inch
	}
	if d.RowHeightIn > 0 {
		o.RowHeight = vg.Length(d.RowHeightIn) * vg.Inch
	}
	if d.MarkerColor != "" {
		c, err := parseHexColor(d.MarkerColor)
		if err != nil {
			return o, err
		}
		o.MarkerColor = c
	}
	return o, nil
}

// stacksDef is the TOML schema for the stacks subcommand. Panels declare
// the stacked axes top to bottom; groups contribute one line per panel.
type stacksDef struct {
	XLabel   string     `toml:"xlabel"`
	X        []float64  `toml:"x"`
	Cushion  float64    `toml:"cushion"`
	LabelPad float64    `toml:"label_pad"`
	WidthIn  float64    `toml:"width_in"`
	HeightIn float64    `toml:"height_in"`
	Output   string     `toml:"output"`
	XTicks   []float64  `toml:"xticks"`
	Panels   []panelDef `toml:"panel"`
	Groups   []groupDef `toml:"group"`
}

func loadStacksDef(path string) (stacksDef, error) {
	var d stacksDef
	data, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := toml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// panelDef names one panel and optionally pins its y scale. Limits and
// ticks are mutually exclusive; leaving both out follows the data.
type panelDef struct {
	Name   string    `toml:"name"`
	Limits []float64 `toml:"limits"`
	Ticks  []float64 `toml:"ticks"`
}

func (p panelDef) scale() (charts.Scale, error) {
	switch {
	case len(p.Limits) > 0 && len(p.Ticks) > 0:
		return charts.Scale{}, fmt.Errorf("panel %q: limits and ticks are mutually exclusive", p.Name)
	case len(p.Limits) > 0:
		if len(p.Limits) != 2 {
			return charts.Scale{}, fmt.Errorf("panel %q: limits needs exactly 2 entries, got %d", p.Name, len(p.Limits))
		}
		return charts.Limits(p.Limits[0], p.Limits[1]), nil
	case len(p.Ticks) > 0:
		return charts.Ticks(p.Ticks...), nil
	default:
		return charts.AutoScale(), nil
	}
}

// groupDef contributes one line per panel, either from a CSV whose header
// names the panel columns or from inline series rows in panel order.
type groupDef struct {
	Name   string      `toml:"name"`
	Data   string      `toml:"data"`
	Series [][]float64 `toml:"series"`
}

// group materializes the per-panel series. The returned x is non-nil only
// when it came from a CSV's first column.
func (g groupDef) group(dir string, panels []panelDef) (charts.Group, []float64, error) {
	switch {
	case g.Data != "" && len(g.Series) > 0:
		return nil, nil, fmt.Errorf("group %q: data file and inline series are mutually exclusive", g.Name)
	case g.Data != "":
		x, cols, err := readPanelCSV(resolvePath(dir, g.Data), panels)
		if err != nil {
			return nil, nil, err
		}
		grp := make(charts.Group, len(panels))
		for i := range panels {
			grp[i] = charts.Series{Name: g.Name, Data: cols[i]}
		}
		return grp, x, nil
	case len(g.Series) > 0:
		if len(g.Series) != len(panels) {
			return nil, nil, fmt.Errorf("group %q: %d series for %d panels", g.Name, len(g.Series), len(panels))
		}
		grp := make(charts.Group, len(panels))
		for i, ys := range g.Series {
			grp[i] = charts.Series{Name: g.Name, Data: ys}
		}
		return grp, nil, nil
	default:
		return nil, nil, fmt.Errorf("group %q: needs a data file or inline series", g.Name)
	}
}

func (d stacksDef) options(dir string) (charts.StackOptions, error) {
	o := charts.StackOptions{
		XLabel:   d.XLabel,
		X:        d.X,
		Cushion:  d.Cushion,
		Filename: d.Output,
		XTicks:   d.XTicks,
	}
	if d.LabelPad > 0 {
		o.LabelPad = vg.Length(d.LabelPad)
	}
	if d.WidthIn > 0 {
		o.Width = vg.Length(d.WidthIn) * vg.Inch
	}
	if d.HeightIn > 0 {
		o.Height = vg.Length(d.HeightIn) * vg.Inch
	}
	if len(d.Panels) == 0 {
		return o, fmt.Errorf("stacks definition: no panels")
	}
	if len(d.Groups) == 0 {
		return o, fmt.Errorf("stacks definition: no groups")
	}

	scales := make([]charts.Scale, len(d.Panels))
	for i, p := range d.Panels {
		s, err := p.scale()
		if err != nil {
			return o, err
		}
		scales[i] = s
	}

	for gi, g := range d.Groups {
		grp, x, err := g.group(dir, d.Panels)
		if err != nil {
			return o, err
		}
		// The first group carries the panel names and scale hints.
		if gi == 0 {
			for i := range grp {
				grp[i].Name = d.Panels[i].Name
				grp[i].Scale = scales[i]
			}
		}
		if len(o.X) == 0 {
			o.X = x
		}
		o.Groups = append(o.Groups, grp)
	}
	if len(o.X) == 0 {
		return o, fmt.Errorf("stacks definition: no x data; set x or point a group at a CSV")
	}
	return o, nil
}

// readLabelValueCSV reads label,value records.
func readLabelValueCSV(path string) ([]string, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	recs, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	labels := make([]string, 0, len(recs))
	values := make([]float64, 0, len(recs))
	for i, rec := range recs {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s row %d: bad value %q", path, i+1, rec[1])
		}
		labels = append(labels, strings.TrimSpace(rec[0]))
		values = append(values, v)
	}
	return labels, values, nil
}

// readPanelCSV reads a CSV whose header row names the columns. The first
// column is x whatever it is called; each panel pulls the column matching
// its name, and extra columns are ignored.
func readPanelCSV(path string, panels []panelDef) ([]float64, [][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(recs) < 2 {
		return nil, nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}
	head := recs[0]
	colFor := make([]int, len(panels))
	for i, p := range panels {
		colFor[i] = -1
		for c := 1; c < len(head); c++ {
			if strings.TrimSpace(head[c]) == p.Name {
				colFor[i] = c
				break
			}
		}
		if colFor[i] < 0 {
			return nil, nil, fmt.Errorf("%s: no column named %q", path, p.Name)
		}
	}
	rows := recs[1:]
	parse := func(r, c int) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(rows[r][c]), 64)
		if err != nil {
			return 0, fmt.Errorf("%s row %d: bad value %q", path, r+2, rows[r][c])
		}
		return v, nil
	}
	x := make([]float64, len(rows))
	cols := make([][]float64, len(panels))
	for i := range cols {
		cols[i] = make([]float64, len(rows))
	}
	for r := range rows {
		if x[r], err = parse(r, 0); err != nil {
			return nil, nil, err
		}
		for i, c := range colFor {
			if cols[i][r], err = parse(r, c); err != nil {
				return nil, nil, err
			}
		}
	}
	return x, cols, nil
}

// parseHexColor parses #RRGGBB; the leading # is optional.
func parseHexColor(s string) (color.Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return nil, fmt.Errorf("bad color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad color %q: want #RRGGBB", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
