package main

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eirikurj/niceplots/src/charts"
)

func newStacksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stacks <definition.toml>",
		Short: "Render stacked line panels to a PNG",
		Long: `Render a column of line panels sharing one x axis into a PNG
(` + charts.DefaultStackFile + ` unless the definition says otherwise).

Each [[panel]] names one axis, top to bottom, and may pin its y scale with
limits or ticks. Each [[group]] adds one line per panel in the next color,
from inline series rows or from a data CSV whose header row names the panel
columns; the CSV's first column supplies x when the definition has no x
array. Figure keys: xlabel, cushion, label_pad, width_in, height_in,
xticks and output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStacks(args[0])
		},
	}
}

func runStacks(path string) error {
	d, err := loadStacksDef(path)
	if err != nil {
		return err
	}
	o, err := d.options(filepath.Dir(path))
	if err != nil {
		return err
	}
	if _, _, err := charts.Stacked(o); err != nil {
		return err
	}
	out := o.Filename
	if out == "" {
		out = charts.DefaultStackFile
	}
	logrus.Infof("wrote %s (%d panels)", out, len(o.Groups[0]))
	return nil
}
