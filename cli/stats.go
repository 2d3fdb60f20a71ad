package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tum-gis/ecoord/frame"
)

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "print per-edge sample windows for an ecoord document",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "ecoord-file-path", Required: true},
	},
	Action: statsAction,
}

func statsAction(c *cli.Context) error {
	tree, err := loadTree(c.String("ecoord-file-path"))
	if err != nil {
		return err
	}

	for id, edge := range tree.Edges {
		switch e := edge.(type) {
		case *frame.StaticEdge:
			fmt.Fprintf(c.App.Writer, "%s: static\n", id)
		case *frame.DynamicEdge:
			fmt.Fprintf(c.App.Writer, "%s: dynamic, interpolation=%s, extrapolation=%s, %d samples, [%s, %s]\n",
				id, e.Interpolation, e.Extrapolation, len(e.Samples), e.FirstSampleTime(), e.LastSampleTime())
		}
	}
	return nil
}
