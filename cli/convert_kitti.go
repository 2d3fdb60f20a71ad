package cli

import (
	"os"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/tum-gis/ecoord/ecoordio"
	"github.com/tum-gis/ecoord/frame"
)

var convertFromKittiCommand = &cli.Command{
	Name:  "convert-from-kitti-format",
	Usage: "convert a KITTI pose trajectory into an ecoord document",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "kitti-file-path", Required: true},
		&cli.StringFlag{Name: "ecoord-file-path", Required: true},
		&cli.StringFlag{Name: "start-date-time", Required: true},
		&cli.StringFlag{Name: "end-date-time", Required: true},
		&cli.StringFlag{Name: "trajectory-parent-frame-id", Value: "map"},
		&cli.StringFlag{Name: "trajectory-child-frame-id", Value: "vehicle"},
		&cli.StringFlag{Name: "global-frame-id", Value: "global"},
		&cli.Float64SliceFlag{Name: "local-origin-offset"},
		&cli.BoolFlag{Name: "pretty"},
	},
	Action: convertFromKittiAction,
}

func convertFromKittiAction(c *cli.Context) error {
	start, err := time.Parse(time.RFC3339, c.String("start-date-time"))
	if err != nil {
		return err
	}
	end, err := time.Parse(time.RFC3339, c.String("end-date-time"))
	if err != nil {
		return err
	}

	opts := ecoordio.KittiOptions{
		Start:                   start.UTC(),
		End:                     end.UTC(),
		TrajectoryParentFrameID: frame.FrameId(c.String("trajectory-parent-frame-id")),
		TrajectoryChildFrameID:  frame.FrameId(c.String("trajectory-child-frame-id")),
		GlobalFrameID:           frame.FrameId(c.String("global-frame-id")),
	}

	if offset := c.Float64Slice("local-origin-offset"); len(offset) > 0 {
		if len(offset) != 3 {
			return errors.New("cli: local-origin-offset requires exactly 3 values")
		}
		v := r3.Vector{X: offset[0], Y: offset[1], Z: offset[2]}
		opts.LocalOriginOffset = &v
	}

	data, err := os.ReadFile(c.String("kitti-file-path"))
	if err != nil {
		return err
	}

	tree, err := ecoordio.DecodeKitti(data, opts)
	if err != nil {
		return err
	}

	return writeTree(c.String("ecoord-file-path"), tree, c.Bool("pretty"))
}

