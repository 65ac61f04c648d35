package rig

import (
	"github.com/mocapkit/bvhrig/bvh"
	"github.com/mocapkit/bvhrig/geom"
)

// JointSink is the capability a host application provides to receive a rig.
// The core never talks to a host API directly; a Maya-style importer, a
// headless renderer or a test harness all implement this interface.
type JointSink interface {
	// CreateJoint creates a joint node under parent. parent is "" for the
	// root. The offset is already scaled.
	CreateJoint(parent, name string, offset *geom.Vector3) error

	// SetFrameTransform assigns one joint's local transform for one frame.
	// The host should set its node's rotation order from
	// transform.Rotation.Order before assigning rotation values.
	SetFrameTransform(joint string, frame int, transform *JointTransform) error
}

// Apply feeds the rig into sink: the joint tree first, in hierarchy order
// (end sites are named after their parent with a "_tip" suffix), then every
// frame of every animated joint. Apply may be called again with the same
// sink to re-import a file; the sink decides whether to reuse its nodes.
func Apply(a *Animation, sink JointSink) error {
	var create func(j *bvh.Joint, parent string) error
	create = func(j *bvh.Joint, parent string) error {
		name := a.prefix + j.Name
		if j.End {
			name = parent + "_tip"
		}
		if err := sink.CreateJoint(parent, name, j.Offset.Scale(a.scale)); err != nil {
			return err
		}
		for _, c := range j.Children {
			if err := create(c, name); err != nil {
				return err
			}
		}
		return nil
	}
	if err := create(a.skeleton.Root, ""); err != nil {
		return err
	}

	for frame := 0; frame < a.FrameCount(); frame++ {
		transforms, err := a.At(frame)
		if err != nil {
			return err
		}
		for _, t := range transforms {
			if err := sink.SetFrameTransform(a.prefix+t.Joint.Name, frame, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordedJoint is one CreateJoint call seen by a RecorderSink.
type RecordedJoint struct {
	Parent string
	Name   string
	Offset geom.Vector3
}

// RecorderSink records the calls a real host would receive. Existing joints
// are reused on re-import and frame transforms are overwritten, matching
// what an application-side sink is expected to do.
type RecorderSink struct {
	Joints     []RecordedJoint
	Transforms map[string]map[int]*JointTransform
}

func (s *RecorderSink) CreateJoint(parent, name string, offset *geom.Vector3) error {
	for _, j := range s.Joints {
		if j.Name == name {
			return nil
		}
	}
	s.Joints = append(s.Joints, RecordedJoint{Parent: parent, Name: name, Offset: *offset})
	return nil
}

func (s *RecorderSink) SetFrameTransform(joint string, frame int, transform *JointTransform) error {
	if s.Transforms == nil {
		s.Transforms = map[string]map[int]*JointTransform{}
	}
	if s.Transforms[joint] == nil {
		s.Transforms[joint] = map[int]*JointTransform{}
	}
	s.Transforms[joint][frame] = transform
	return nil
}
