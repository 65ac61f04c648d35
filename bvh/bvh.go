package bvh

import (
	"io"
	"os"

	"github.com/mocapkit/bvhrig/geom"
)

// Channel is one animatable degree of freedom of a joint. The constant
// names are the channel keywords of the BVH format.
type Channel int

const (
	Xposition Channel = iota
	Yposition
	Zposition
	Xrotation
	Yrotation
	Zrotation
)

var channelNames = [...]string{"Xposition", "Yposition", "Zposition", "Xrotation", "Yrotation", "Zrotation"}

var channelByName = map[string]Channel{
	"Xposition": Xposition,
	"Yposition": Yposition,
	"Zposition": Zposition,
	"Xrotation": Xrotation,
	"Yrotation": Yrotation,
	"Zrotation": Zrotation,
}

func (c Channel) String() string {
	return channelNames[c]
}

func (c Channel) IsRotation() bool {
	return c >= Xrotation
}

func (c Channel) IsTranslation() bool {
	return c < Xrotation
}

// Axis returns 0 for X, 1 for Y, 2 for Z.
func (c Channel) Axis() int {
	return int(c) % 3
}

// Joint is one node of the skeleton tree. End sites are stored as joints
// with End set, an offset, and no name, channels or children.
type Joint struct {
	Name     string
	Offset   geom.Vector3
	Channels []Channel
	Children []*Joint
	Parent   *Joint
	End      bool
}

// RotationOrder returns the Euler rotation order inferred from the joint's
// channel list, or XYZ if the joint declares fewer than three rotation
// channels.
func (j *Joint) RotationOrder() geom.RotationOrder {
	order, _ := RotationOrderFromChannels(j.Channels)
	return order
}

// RotationOrderFromChannels derives the rotation order from the order the
// three rotation channels appear in, ignoring translation channels. ok is
// false when the list declares fewer (or more) than three rotation channels;
// the order is then XYZ and the caller decides whether to substitute its own
// default.
func RotationOrderFromChannels(channels []Channel) (order geom.RotationOrder, ok bool) {
	var axes [3]int
	n := 0
	for _, ch := range channels {
		if ch.IsRotation() {
			if n < 3 {
				axes[n] = ch.Axis()
			}
			n++
		}
	}
	if n != 3 {
		return geom.RotationOrderXYZ, false
	}
	for o := geom.RotationOrderXYZ; o <= geom.RotationOrderXZY; o++ {
		if o.Axes() == axes {
			return o, true
		}
	}
	// duplicated axis, e.g. Xrotation twice
	return geom.RotationOrderXYZ, false
}

// ChannelRange locates a joint's columns in the motion value matrix.
type ChannelRange struct {
	Offset int
	Count  int
}

type Skeleton struct {
	Root *Joint

	totalChannels int
	channelRanges map[string]ChannelRange
	joints        []*Joint
}

// NewSkeleton builds the channel layout for a joint tree. The layout is
// fixed afterwards; columns are assigned in hierarchy (depth-first) order.
func NewSkeleton(root *Joint) *Skeleton {
	s := &Skeleton{Root: root, channelRanges: map[string]ChannelRange{}}
	var walk func(j *Joint)
	walk = func(j *Joint) {
		if j.End {
			return
		}
		s.joints = append(s.joints, j)
		s.channelRanges[j.Name] = ChannelRange{Offset: s.totalChannels, Count: len(j.Channels)}
		s.totalChannels += len(j.Channels)
		for _, c := range j.Children {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return s
}

// Joints returns all joints in hierarchy order, excluding end sites.
func (s *Skeleton) Joints() []*Joint {
	return s.joints
}

func (s *Skeleton) Joint(name string) *Joint {
	for _, j := range s.joints {
		if j.Name == name {
			return j
		}
	}
	return nil
}

// TotalChannels is the width of the motion value matrix.
func (s *Skeleton) TotalChannels() int {
	return s.totalChannels
}

func (s *Skeleton) ChannelRange(name string) (ChannelRange, bool) {
	r, ok := s.channelRanges[name]
	return r, ok
}

// Motion holds the per-frame channel values. Each row is
// Skeleton.TotalChannels() wide.
type Motion struct {
	FrameTime float64
	Frames    [][]float64
}

func (m *Motion) FrameCount() int {
	return len(m.Frames)
}

type Document struct {
	Skeleton *Skeleton
	Motion   *Motion
}

func Load(path string) (*Document, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer r.Close()
	return NewParser(r, path).Parse()
}

func Parse(r io.Reader) (*Document, error) {
	return NewParser(r, "").Parse()
}
