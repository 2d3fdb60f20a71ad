package frame

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// ChannelId identifies a data source ("channel") in the legacy multi-channel
// model, e.g. a particular sensor or recording session.
type ChannelId string

// ChannelInfo carries per-channel metadata used to resolve collisions
// between channels that both claim the same TransformId.
type ChannelInfo struct {
	// Priority controls which channel wins when more than one channel
	// supplies samples for the same TransformId; higher wins. A nil
	// Priority is treated as 0.
	Priority *int
}

func (c ChannelInfo) priorityOrDefault() int {
	if c.Priority == nil {
		return 0
	}
	return *c.Priority
}

// TransformInfo carries the interpolation/extrapolation method that applies
// to a given TransformId across all channels (the legacy model keeps this
// per transform rather than per edge, unlike TransformTree's DynamicEdge).
type TransformInfo struct {
	Interpolation InterpolationMethod
	Extrapolation ExtrapolationMethod
}

// ChannelTransformKey identifies one channel's sample sequence for one
// transform.
type ChannelTransformKey struct {
	Channel     ChannelId
	TransformID TransformId
}

// ReferenceFrames is the legacy multi-channel model: several channels may
// each supply samples for the same TransformId, and the highest-priority
// channel (tie-broken lexicographically by channel id) is used to resolve
// queries. Grounded on original_source's reference_frames.rs.
type ReferenceFrames struct {
	Transforms    map[ChannelTransformKey][]TimedTransform
	FrameInfo     map[FrameId]FrameInfo
	ChannelInfo   map[ChannelId]ChannelInfo
	TransformInfo map[TransformId]TransformInfo
}

// NewReferenceFrames builds a ReferenceFrames, sorting and validating each
// channel's sample sequence (ascending, unique timestamps).
func NewReferenceFrames(
	transforms map[ChannelTransformKey][]TimedTransform,
	frameInfo map[FrameId]FrameInfo,
	channelInfo map[ChannelId]ChannelInfo,
	transformInfo map[TransformId]TransformInfo,
) (*ReferenceFrames, error) {
	sorted := make(map[ChannelTransformKey][]TimedTransform, len(transforms))
	for key, samples := range transforms {
		cp := append([]TimedTransform(nil), samples...)
		sort.Slice(cp, func(i, j int) bool { return cp[i].Timestamp.Before(cp[j].Timestamp) })
		for i := 1; i < len(cp); i++ {
			if !cp[i-1].Timestamp.Before(cp[i].Timestamp) {
				return nil, &ErrDuplicateTimestamp{Timestamp: cp[i].Timestamp}
			}
		}
		sorted[key] = cp
	}
	return &ReferenceFrames{
		Transforms:    sorted,
		FrameInfo:     frameInfo,
		ChannelInfo:   channelInfo,
		TransformInfo: transformInfo,
	}, nil
}

// ResolveChannel picks the channel that wins for id: highest ChannelInfo
// priority, ties broken by the lexicographically smallest channel id.
func (rf *ReferenceFrames) ResolveChannel(id TransformId) (ChannelId, []TimedTransform, bool) {
	type candidate struct {
		channel ChannelId
		samples []TimedTransform
	}
	candidates := lo.FilterMap(
		lo.Keys(rf.Transforms),
		func(key ChannelTransformKey, _ int) (candidate, bool) {
			if key.TransformID != id {
				return candidate{}, false
			}
			return candidate{channel: key.Channel, samples: rf.Transforms[key]}, true
		},
	)
	if len(candidates) == 0 {
		return "", nil, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		pi := rf.ChannelInfo[candidates[i].channel].priorityOrDefault()
		pj := rf.ChannelInfo[candidates[j].channel].priorityOrDefault()
		if pi != pj {
			return pi > pj
		}
		return candidates[i].channel < candidates[j].channel
	})
	return candidates[0].channel, candidates[0].samples, true
}

// GetTransformAtTime resolves id's winning channel's samples at time `at`.
func (rf *ReferenceFrames) GetTransformAtTime(id TransformId, at time.Time) (Transform, error) {
	_, samples, ok := rf.ResolveChannel(id)
	if !ok {
		return Transform{}, &ErrInvalidFrameId{FrameID: id.ChildFrameID}
	}
	info := rf.TransformInfo[id]
	return interpolate(samples, at, info.Interpolation, info.Extrapolation)
}
