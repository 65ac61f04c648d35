package rig

import (
	"testing"

	"github.com/mocapkit/bvhrig/geom"
)

func TestApply(t *testing.T) {
	doc := parseTestDoc(t)
	a, err := NewBuilder(2.0).Build(doc)
	if err != nil {
		t.Fatal(err)
	}

	sink := &RecorderSink{}
	if err := Apply(a, sink); err != nil {
		t.Fatal(err)
	}

	if len(sink.Joints) != 3 {
		t.Fatal("joints: ", sink.Joints)
	}
	if sink.Joints[0] != (RecordedJoint{Parent: "", Name: "Hips"}) {
		t.Error("root: ", sink.Joints[0])
	}
	if sink.Joints[1].Parent != "Hips" || sink.Joints[1].Name != "Chest" {
		t.Error("chest: ", sink.Joints[1])
	}
	// end sites are named after their parent, offsets are scaled
	if sink.Joints[2].Parent != "Chest" || sink.Joints[2].Name != "Chest_tip" {
		t.Error("tip: ", sink.Joints[2])
	}
	if sink.Joints[2].Offset != (geom.Vector3{X: 0, Y: 5, Z: 0}) {
		t.Error("tip offset: ", sink.Joints[2].Offset)
	}

	if len(sink.Transforms) != 2 {
		t.Fatal("animated joints: ", len(sink.Transforms))
	}
	if len(sink.Transforms["Hips"]) != 2 || len(sink.Transforms["Chest"]) != 2 {
		t.Error("frames per joint: ", sink.Transforms)
	}
	if sink.Transforms["Chest"][1].Rotation.Order != geom.RotationOrderZXY {
		t.Error("chest order: ", sink.Transforms["Chest"][1].Rotation.Order)
	}

	// re-import over the same sink reuses joints
	if err := Apply(a, sink); err != nil {
		t.Fatal(err)
	}
	if len(sink.Joints) != 3 {
		t.Error("joints after re-import: ", len(sink.Joints))
	}
	if len(sink.Transforms["Hips"]) != 2 {
		t.Error("frames after re-import: ", len(sink.Transforms["Hips"]))
	}
}

func TestApplyNamePrefix(t *testing.T) {
	doc := parseTestDoc(t)
	b := NewBuilder(1.0)
	b.NamePrefix = "mocap_"
	a, err := b.Build(doc)
	if err != nil {
		t.Fatal(err)
	}

	sink := &RecorderSink{}
	if err := Apply(a, sink); err != nil {
		t.Fatal(err)
	}
	if sink.Joints[0].Name != "mocap_Hips" {
		t.Error("root: ", sink.Joints[0].Name)
	}
	if sink.Joints[2].Name != "mocap_Chest_tip" {
		t.Error("tip: ", sink.Joints[2].Name)
	}
	if _, ok := sink.Transforms["mocap_Chest"]; !ok {
		t.Error("transforms should use prefixed names")
	}
}
