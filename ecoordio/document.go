// Package ecoordio reads and writes frame.Tree and frame.ReferenceFrames
// values in the JSON and CSV wire formats, reads KITTI pose files (there
// is no KITTI writer), and implements the file-name and compression
// conventions in this package's sibling files.
package ecoordio

import (
	"encoding/json"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/tum-gis/ecoord/frame"
)

var (
	errUnknownEdgeType           = errors.New("ecoordio: unknown transform edge type")
	errUnknownInterpolationValue = errors.New("ecoordio: unknown interpolation method")
	errUnknownExtrapolationValue = errors.New("ecoordio: unknown extrapolation method")
)

type vectorSerde struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type quaternionSerde struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

type transformSerde struct {
	Translation vectorSerde     `json:"translation"`
	Rotation    quaternionSerde `json:"rotation"`
}

type timestampSerde struct {
	Sec     int64  `json:"sec"`
	Nanosec uint32 `json:"nanosec"`
}

type timedTransformSerde struct {
	Timestamp timestampSerde `json:"timestamp"`
	Transform transformSerde `json:"transform"`
}

type frameSerde struct {
	ID          string  `json:"id"`
	Description *string `json:"description,omitempty"`
	CRSEPSG     *uint32 `json:"crs_epsg,omitempty"`
}

type transformEdgeSerde struct {
	Type          string                `json:"type"`
	ParentFrameID string                `json:"parent_frame_id"`
	ChildFrameID  string                `json:"child_frame_id"`
	Transform     *transformSerde       `json:"transform,omitempty"`
	Interpolation *string               `json:"interpolation,omitempty"`
	Extrapolation *string               `json:"extrapolation,omitempty"`
	Samples       []timedTransformSerde `json:"samples,omitempty"`
}

type documentSerde struct {
	Edges  []transformEdgeSerde `json:"edges"`
	Frames []frameSerde         `json:"frames"`
}

func vectorToSerde(v r3.Vector) vectorSerde { return vectorSerde{X: v.X, Y: v.Y, Z: v.Z} }
func vectorFromSerde(v vectorSerde) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func quaternionToSerde(q frame.UnitQuaternion) quaternionSerde {
	return quaternionSerde{X: q.X(), Y: q.Y(), Z: q.Z(), W: q.W()}
}

func quaternionFromSerde(q quaternionSerde) frame.UnitQuaternion {
	return frame.NewUnitQuaternion(q.X, q.Y, q.Z, q.W)
}

func transformToSerde(t frame.Transform) transformSerde {
	return transformSerde{Translation: vectorToSerde(t.Translation), Rotation: quaternionToSerde(t.Rotation)}
}

func transformFromSerde(t transformSerde) frame.Transform {
	return frame.NewTransform(vectorFromSerde(t.Translation), quaternionFromSerde(t.Rotation))
}

func timestampToSerde(t time.Time) timestampSerde {
	return timestampSerde{Sec: t.Unix(), Nanosec: uint32(t.Nanosecond())}
}

func timestampFromSerde(t timestampSerde) time.Time {
	return time.Unix(t.Sec, int64(t.Nanosec)).UTC()
}

func interpolationToSerde(m frame.InterpolationMethod) *string {
	var s string
	switch m {
	case frame.InterpolationStep:
		s = "step"
	case frame.InterpolationLinear:
		s = "linear"
	}
	return &s
}

func interpolationFromSerde(s *string) (frame.InterpolationMethod, error) {
	if s == nil {
		return frame.InterpolationStep, nil
	}
	switch *s {
	case "step":
		return frame.InterpolationStep, nil
	case "linear":
		return frame.InterpolationLinear, nil
	default:
		return 0, errUnknownInterpolationValue
	}
}

func extrapolationToSerde(m frame.ExtrapolationMethod) *string {
	var s string
	switch m {
	case frame.ExtrapolationConstant:
		s = "constant"
	case frame.ExtrapolationLinear:
		s = "linear"
	}
	return &s
}

func extrapolationFromSerde(s *string) (frame.ExtrapolationMethod, error) {
	if s == nil {
		return frame.ExtrapolationConstant, nil
	}
	switch *s {
	case "constant":
		return frame.ExtrapolationConstant, nil
	case "linear":
		return frame.ExtrapolationLinear, nil
	default:
		return 0, errUnknownExtrapolationValue
	}
}

func frameInfoToSerde(f frame.FrameInfo) frameSerde {
	return frameSerde{ID: string(f.ID), Description: f.Description, CRSEPSG: f.CRSEPSG}
}

func frameInfoFromSerde(f frameSerde) frame.FrameInfo {
	return frame.FrameInfo{ID: frame.FrameId(f.ID), Description: f.Description, CRSEPSG: f.CRSEPSG}
}

func edgeToSerde(e frame.Edge) (transformEdgeSerde, error) {
	switch edge := e.(type) {
	case *frame.StaticEdge:
		transform := transformToSerde(edge.Transform)
		return transformEdgeSerde{
			Type:          "static",
			ParentFrameID: string(edge.Parent),
			ChildFrameID:  string(edge.Child),
			Transform:     &transform,
		}, nil
	case *frame.DynamicEdge:
		samples := make([]timedTransformSerde, len(edge.Samples))
		for i, s := range edge.Samples {
			samples[i] = timedTransformSerde{Timestamp: timestampToSerde(s.Timestamp), Transform: transformToSerde(s.Transform)}
		}
		return transformEdgeSerde{
			Type:          "dynamic",
			ParentFrameID: string(edge.Parent),
			ChildFrameID:  string(edge.Child),
			Interpolation: interpolationToSerde(edge.Interpolation),
			Extrapolation: extrapolationToSerde(edge.Extrapolation),
			Samples:       samples,
		}, nil
	default:
		return transformEdgeSerde{}, errUnknownEdgeType
	}
}

func edgeFromSerde(e transformEdgeSerde) (frame.Edge, error) {
	parent := frame.FrameId(e.ParentFrameID)
	child := frame.FrameId(e.ChildFrameID)

	switch e.Type {
	case "static":
		if e.Transform == nil {
			return nil, errUnknownEdgeType
		}
		return frame.NewStaticEdge(parent, child, transformFromSerde(*e.Transform))
	case "dynamic":
		interpolation, err := interpolationFromSerde(e.Interpolation)
		if err != nil {
			return nil, err
		}
		extrapolation, err := extrapolationFromSerde(e.Extrapolation)
		if err != nil {
			return nil, err
		}
		samples := make([]frame.TimedTransform, len(e.Samples))
		for i, s := range e.Samples {
			samples[i] = frame.TimedTransform{Timestamp: timestampFromSerde(s.Timestamp), Transform: transformFromSerde(s.Transform)}
		}
		return frame.NewDynamicEdge(parent, child, interpolation, extrapolation, samples)
	default:
		return nil, errUnknownEdgeType
	}
}

// EncodeTree serializes tree to the TransformTree JSON document format.
func EncodeTree(tree *frame.Tree, pretty bool) ([]byte, error) {
	doc := documentSerde{}
	for _, e := range tree.Edges {
		edgeSerde, err := edgeToSerde(e)
		if err != nil {
			return nil, err
		}
		doc.Edges = append(doc.Edges, edgeSerde)
	}
	for _, f := range tree.Frames {
		doc.Frames = append(doc.Frames, frameInfoToSerde(f))
	}

	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// DecodeTree parses a TransformTree JSON document into a frame.Tree.
func DecodeTree(data []byte) (*frame.Tree, error) {
	var doc documentSerde
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	edges := make([]frame.Edge, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		edge, err := edgeFromSerde(e)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}

	frames := make([]frame.FrameInfo, 0, len(doc.Frames))
	for _, f := range doc.Frames {
		frames = append(frames, frameInfoFromSerde(f))
	}

	return frame.NewTree(edges, frames)
}

type transformElementSerde struct {
	ChannelID    string         `json:"channel_id"`
	FrameID      string         `json:"frame_id"`
	ChildFrameID string         `json:"child_frame_id"`
	Timestamp    timestampSerde `json:"timestamp"`
	Translation  vectorSerde    `json:"translation"`
	Rotation     quaternionSerde `json:"rotation"`
}

type channelInfoElementSerde struct {
	ChannelID string `json:"channel_id"`
	Priority  *int   `json:"priority,omitempty"`
}

type transformInfoElementSerde struct {
	ParentFrameID string  `json:"parent_frame_id"`
	ChildFrameID  string  `json:"child_frame_id"`
	Interpolation *string `json:"interpolation,omitempty"`
	Extrapolation *string `json:"extrapolation,omitempty"`
}

type referenceFramesSerde struct {
	Transforms    []transformElementSerde     `json:"transforms"`
	FrameInfo     []frameSerde                `json:"frame_info"`
	ChannelInfo   []channelInfoElementSerde   `json:"channel_info"`
	TransformInfo []transformInfoElementSerde `json:"transform_info"`
}

// EncodeReferenceFrames serializes rf to the legacy ReferenceFrames JSON
// document format.
func EncodeReferenceFrames(rf *frame.ReferenceFrames, pretty bool) ([]byte, error) {
	doc := referenceFramesSerde{}

	for key, samples := range rf.Transforms {
		for _, s := range samples {
			doc.Transforms = append(doc.Transforms, transformElementSerde{
				ChannelID:    string(key.Channel),
				FrameID:      string(key.TransformID.ParentFrameID),
				ChildFrameID: string(key.TransformID.ChildFrameID),
				Timestamp:    timestampToSerde(s.Timestamp),
				Translation:  vectorToSerde(s.Transform.Translation),
				Rotation:     quaternionToSerde(s.Transform.Rotation),
			})
		}
	}
	for _, f := range rf.FrameInfo {
		doc.FrameInfo = append(doc.FrameInfo, frameInfoToSerde(f))
	}
	for channel, info := range rf.ChannelInfo {
		doc.ChannelInfo = append(doc.ChannelInfo, channelInfoElementSerde{ChannelID: string(channel), Priority: info.Priority})
	}
	for id, info := range rf.TransformInfo {
		doc.TransformInfo = append(doc.TransformInfo, transformInfoElementSerde{
			ParentFrameID: string(id.ParentFrameID),
			ChildFrameID:  string(id.ChildFrameID),
			Interpolation: interpolationToSerde(info.Interpolation),
			Extrapolation: extrapolationToSerde(info.Extrapolation),
		})
	}

	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// DecodeReferenceFrames parses a legacy ReferenceFrames JSON document.
func DecodeReferenceFrames(data []byte) (*frame.ReferenceFrames, error) {
	var doc referenceFramesSerde
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	transforms := make(map[frame.ChannelTransformKey][]frame.TimedTransform)
	for _, el := range doc.Transforms {
		id, err := frame.NewTransformId(frame.FrameId(el.FrameID), frame.FrameId(el.ChildFrameID))
		if err != nil {
			return nil, err
		}
		key := frame.ChannelTransformKey{Channel: frame.ChannelId(el.ChannelID), TransformID: id}
		transforms[key] = append(transforms[key], frame.TimedTransform{
			Timestamp: timestampFromSerde(el.Timestamp),
			Transform: frame.NewTransform(vectorFromSerde(el.Translation), quaternionFromSerde(el.Rotation)),
		})
	}

	frameInfo := make(map[frame.FrameId]frame.FrameInfo, len(doc.FrameInfo))
	for _, f := range doc.FrameInfo {
		frameInfo[frame.FrameId(f.ID)] = frameInfoFromSerde(f)
	}

	channelInfo := make(map[frame.ChannelId]frame.ChannelInfo, len(doc.ChannelInfo))
	for _, c := range doc.ChannelInfo {
		channelInfo[frame.ChannelId(c.ChannelID)] = frame.ChannelInfo{Priority: c.Priority}
	}

	transformInfo := make(map[frame.TransformId]frame.TransformInfo, len(doc.TransformInfo))
	for _, ti := range doc.TransformInfo {
		id, err := frame.NewTransformId(frame.FrameId(ti.ParentFrameID), frame.FrameId(ti.ChildFrameID))
		if err != nil {
			return nil, err
		}
		interpolation, err := interpolationFromSerde(ti.Interpolation)
		if err != nil {
			return nil, err
		}
		extrapolation, err := extrapolationFromSerde(ti.Extrapolation)
		if err != nil {
			return nil, err
		}
		transformInfo[id] = frame.TransformInfo{Interpolation: interpolation, Extrapolation: extrapolation}
	}

	return frame.NewReferenceFrames(transforms, frameInfo, channelInfo, transformInfo)
}
