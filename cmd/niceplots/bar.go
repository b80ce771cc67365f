package main

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eirikurj/niceplots/src/charts"
)

func newBarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bar <definition.toml>",
		Short: "Render a horizontal bar chart to " + charts.BarChartFile,
		Long: `Render a horizontal bar chart into ` + charts.BarChartFile + ` in the current
directory.

Definition keys: header (two column titles, required), labels and values
(inline rows) or data (a label,value CSV next to the definition), and the
optional text_scale, decimals, width_in, row_height_in and marker_color
(hex) tweaks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBar(args[0])
		},
	}
}

func runBar(path string) error {
	d, err := loadBarDef(path)
	if err != nil {
		return err
	}
	header, err := d.header()
	if err != nil {
		return err
	}
	labels, values, err := d.rows(filepath.Dir(path))
	if err != nil {
		return err
	}
	o, err := d.options()
	if err != nil {
		return err
	}
	if err := charts.HorizBar(labels, values, header, o); err != nil {
		return err
	}
	logrus.Infof("wrote %s (%d rows)", charts.BarChartFile, len(labels))
	return nil
}
