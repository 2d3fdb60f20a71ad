package ecoordio

import (
	"bufio"
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/tum-gis/ecoord/frame"
)

// ErrIsometryNotDerivable is returned when a KITTI pose row's upper 3x3
// block is not a proper rotation matrix.
var ErrIsometryNotDerivable = errors.New("ecoordio: kitti pose row is not a proper rigid transform")

const rotationOrthogonalityTolerance = 1e-6

// KittiOptions configures how a KITTI pose trajectory is ingested into
// a frame.Tree.
type KittiOptions struct {
	Start                   time.Time
	End                     time.Time
	TrajectoryParentFrameID frame.FrameId
	TrajectoryChildFrameID  frame.FrameId
	GlobalFrameID           frame.FrameId
	LocalOriginOffset       *r3.Vector
}

// DecodeKitti parses whitespace-separated 3x4 KITTI pose rows, one per
// line, synthesizing evenly spaced timestamps across [opts.Start,
// opts.End) and assembling a single Dynamic edge, plus an optional
// Static edge for opts.LocalOriginOffset.
func DecodeKitti(data []byte, opts KittiOptions) (*frame.Tree, error) {
	rows, err := parseKittiRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, frame.ErrNoTransforms
	}

	totalDuration := opts.End.Sub(opts.Start)
	stepDuration := totalDuration / time.Duration(len(rows))

	samples := make([]frame.TimedTransform, len(rows))
	for i, m := range rows {
		transform, err := kittiMatrixToTransform(m)
		if err != nil {
			return nil, err
		}
		timestamp := opts.Start.Add(time.Duration(i) * stepDuration)
		samples[i] = frame.TimedTransform{Timestamp: timestamp, Transform: transform}
	}

	trajectoryEdge, err := frame.NewDynamicEdge(
		opts.TrajectoryParentFrameID, opts.TrajectoryChildFrameID,
		frame.InterpolationLinear, frame.ExtrapolationConstant, samples,
	)
	if err != nil {
		return nil, err
	}
	edges := []frame.Edge{trajectoryEdge}

	if opts.LocalOriginOffset != nil {
		offsetEdge, err := frame.NewStaticEdge(
			opts.GlobalFrameID, opts.TrajectoryParentFrameID,
			frame.NewTransform(*opts.LocalOriginOffset, frame.IdentityQuaternion()),
		)
		if err != nil {
			return nil, err
		}
		edges = append(edges, offsetEdge)
	}

	return frame.NewTree(edges, nil)
}

// kittiPose holds the twelve row-major entries of a 3x4 pose matrix.
type kittiPose [12]float64

func parseKittiRows(data []byte) ([]kittiPose, error) {
	var rows []kittiPose
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 12 {
			return nil, errors.Errorf("ecoordio: kitti row has %d fields, want 12", len(fields))
		}

		var row kittiPose
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func kittiMatrixToTransform(m kittiPose) (frame.Transform, error) {
	rotation := mgl64.Mat3FromRows(
		mgl64.Vec3{m[0], m[1], m[2]},
		mgl64.Vec3{m[4], m[5], m[6]},
		mgl64.Vec3{m[8], m[9], m[10]},
	)
	translation := r3.Vector{X: m[3], Y: m[7], Z: m[11]}

	if !isProperRotation(rotation) {
		return frame.Transform{}, ErrIsometryNotDerivable
	}

	quat := mgl64.Mat4ToQuat(rotation.Mat4())
	return frame.NewTransform(translation, frame.NewUnitQuaternion(quat.X(), quat.Y(), quat.Z(), quat.W)), nil
}

func isProperRotation(m mgl64.Mat3) bool {
	identity := m.Transpose().Mul3(m)
	if !identity.ApproxEqualThreshold(mgl64.Ident3(), rotationOrthogonalityTolerance) {
		return false
	}
	return math.Abs(m.Det()-1) < rotationOrthogonalityTolerance
}
