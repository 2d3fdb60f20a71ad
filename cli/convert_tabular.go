package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/tum-gis/ecoord/ecoordio"
	"github.com/tum-gis/ecoord/frame"
)

var convertFromTabularCommand = &cli.Command{
	Name:  "convert-from-tabular-format",
	Usage: "convert a `;`-delimited trajectory CSV (or a tree of them) into ecoord JSON documents",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "input-path", Required: true},
		&cli.StringFlag{Name: "output-path", Required: true},
		&cli.StringFlag{Name: "trajectory-channel-id", Required: true},
		&cli.StringFlag{Name: "trajectory-frame-id", Required: true},
		&cli.StringFlag{Name: "trajectory-child-frame-id", Required: true},
		&cli.BoolFlag{Name: "pretty"},
	},
	Action: convertFromTabularAction,
}

func convertFromTabularAction(c *cli.Context) error {
	inputPath := c.String("input-path")
	outputPath := c.String("output-path")
	pretty := c.Bool("pretty")

	channelID := frame.ChannelId(c.String("trajectory-channel-id"))
	parentFrameID := frame.FrameId(c.String("trajectory-frame-id"))
	childFrameID := frame.FrameId(c.String("trajectory-child-frame-id"))

	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return err
	}
	if outputInfo, err := os.Stat(outputPath); err == nil && inputInfo.IsDir() != outputInfo.IsDir() {
		return errors.New("cli: input-path and output-path must both be files or both be directories")
	}

	if !inputInfo.IsDir() {
		return convertTabularFile(inputPath, outputPath, channelID, parentFrameID, childFrameID, pretty)
	}

	return filepath.WalkDir(inputPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".csv") {
			return nil
		}

		relPath, err := filepath.Rel(inputPath, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(outputPath, strings.TrimSuffix(relPath, ".csv")+".ecoord.json")
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return err
		}

		return convertTabularFile(path, destPath, channelID, parentFrameID, childFrameID, pretty)
	})
}

func convertTabularFile(inputPath, outputPath string, channelID frame.ChannelId, parentFrameID, childFrameID frame.FrameId, pretty bool) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	edges, err := ecoordio.DecodeSamples(raw)
	if err != nil {
		return err
	}

	id, err := frame.NewTransformId(parentFrameID, childFrameID)
	if err != nil {
		return err
	}

	transforms := make(map[frame.ChannelTransformKey][]frame.TimedTransform)
	for _, e := range edges {
		switch edge := e.(type) {
		case *frame.StaticEdge:
			transforms[frame.ChannelTransformKey{Channel: channelID, TransformID: id}] = []frame.TimedTransform{
				{Transform: edge.Transform},
			}
		case *frame.DynamicEdge:
			transforms[frame.ChannelTransformKey{Channel: channelID, TransformID: id}] = edge.Samples
		}
	}

	rf, err := frame.NewReferenceFrames(transforms, nil, nil, map[frame.TransformId]frame.TransformInfo{
		id: {Interpolation: frame.InterpolationLinear, Extrapolation: frame.ExtrapolationConstant},
	})
	if err != nil {
		return err
	}

	data, err := ecoordio.EncodeReferenceFrames(rf, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
