package rig

import (
	"fmt"
	"math"

	"github.com/mocapkit/bvhrig/bvh"
	"github.com/mocapkit/bvhrig/geom"
)

// InvalidParameterError reports a caller-supplied argument the rig layer
// rejects before doing any work.
type InvalidParameterError struct {
	Param string
	Msg   string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("rig: invalid %s: %s", e.Param, e.Msg)
}

// JointTransform is one joint's local transform for one frame. Rotation
// angles are radians; Rotation.Order is the composition order the host must
// set on its joint node before assigning the values.
type JointTransform struct {
	Joint       *bvh.Joint
	Translation geom.Vector3
	Rotation    *geom.EulerAngles
}

func (t *JointTransform) Quaternion() *geom.Quaternion {
	return t.Rotation.ToQuaternion()
}

func (t *JointTransform) LocalMatrix() *geom.Matrix4 {
	tr := geom.NewTranslateMatrix4(t.Translation.X, t.Translation.Y, t.Translation.Z)
	return tr.Mul(t.Rotation.ToMatrix4())
}

// Builder turns a parsed document into per-frame joint transforms.
// Scale applies to offsets and translation channels only. Joints that
// declare fewer than three rotation channels fall back to
// DefaultRotationOrder.
type Builder struct {
	Scale                float64
	DefaultRotationOrder geom.RotationOrder
	NamePrefix           string
}

func NewBuilder(scale float64) *Builder {
	return &Builder{Scale: scale}
}

type jointInfo struct {
	joint  *bvh.Joint
	order  geom.RotationOrder
	offset int
}

func (b *Builder) Build(doc *bvh.Document) (*Animation, error) {
	if doc == nil || doc.Skeleton == nil || doc.Skeleton.Root == nil {
		return nil, &InvalidParameterError{Param: "document", Msg: "no skeleton"}
	}
	if !(b.Scale > 0) || math.IsInf(b.Scale, 1) {
		return nil, &InvalidParameterError{Param: "scale", Msg: fmt.Sprintf("must be a positive number, got %v", b.Scale)}
	}

	a := &Animation{
		skeleton: doc.Skeleton,
		motion:   doc.Motion,
		scale:    geom.Element(b.Scale),
		prefix:   b.NamePrefix,
	}
	for _, j := range doc.Skeleton.Joints() {
		order, ok := bvh.RotationOrderFromChannels(j.Channels)
		if !ok {
			order = b.DefaultRotationOrder
		}
		r, _ := doc.Skeleton.ChannelRange(j.Name)
		a.infos = append(a.infos, jointInfo{joint: j, order: order, offset: r.Offset})
	}
	return a, nil
}

// Animation is a finite, restartable sequence of per-frame joint transform
// sets. Frames are computed on demand; At is deterministic and frames are
// independent of each other.
type Animation struct {
	skeleton *bvh.Skeleton
	motion   *bvh.Motion
	scale    geom.Element
	prefix   string
	infos    []jointInfo
}

func (a *Animation) Skeleton() *bvh.Skeleton {
	return a.skeleton
}

func (a *Animation) FrameCount() int {
	if a.motion == nil {
		return 0
	}
	return a.motion.FrameCount()
}

func (a *Animation) FrameTime() float64 {
	if a.motion == nil {
		return 0
	}
	return a.motion.FrameTime
}

// RotationOrder returns the order assigned to a joint, after the default
// fallback for joints without three rotation channels.
func (a *Animation) RotationOrder(name string) (geom.RotationOrder, bool) {
	for _, info := range a.infos {
		if info.joint.Name == name {
			return info.order, true
		}
	}
	return geom.RotationOrderXYZ, false
}

// At computes the local transforms for one frame, one per joint in
// hierarchy order.
func (a *Animation) At(frame int) ([]*JointTransform, error) {
	if frame < 0 || frame >= a.FrameCount() {
		return nil, &InvalidParameterError{Param: "frame", Msg: fmt.Sprintf("out of range [0, %d)", a.FrameCount())}
	}
	row := a.motion.Frames[frame]

	transforms := make([]*JointTransform, len(a.infos))
	for i, info := range a.infos {
		translation := info.joint.Offset
		var rot [3]float64
		col := info.offset
		for _, ch := range info.joint.Channels {
			v := row[col]
			col++
			if ch.IsTranslation() {
				switch ch.Axis() {
				case 0:
					translation.X += geom.Element(v)
				case 1:
					translation.Y += geom.Element(v)
				case 2:
					translation.Z += geom.Element(v)
				}
			} else {
				rot[ch.Axis()] = v
			}
		}
		euler := geom.NewEuler(radians(rot[0]), radians(rot[1]), radians(rot[2]), info.order)
		transforms[i] = &JointTransform{
			Joint:       info.joint,
			Translation: *translation.Scale(a.scale),
			Rotation:    euler,
		}
	}
	return transforms, nil
}

func radians(deg float64) geom.Element {
	return geom.Element(deg * math.Pi / 180)
}

// Import parses a BVH file and prepares its rig at the given scale. This is
// the one-call entry point; use bvh.Parse and Builder directly for more
// control.
func Import(path string, scale float64) (*Animation, error) {
	doc, err := bvh.Load(path)
	if err != nil {
		return nil, err
	}
	return NewBuilder(scale).Build(doc)
}
