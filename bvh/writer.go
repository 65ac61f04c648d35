package bvh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Write serializes a Document back into BVH text. The joint tree, channel
// order and motion values survive a parse/write/parse round trip.
func Write(doc *Document, ww io.Writer) error {
	w := bufio.NewWriter(ww)
	w.WriteString("HIERARCHY\n")
	writeJoint(w, doc.Skeleton.Root, 0, "ROOT")
	w.WriteString("MOTION\n")
	frames := 0
	frameTime := 0.0
	if doc.Motion != nil {
		frames = doc.Motion.FrameCount()
		frameTime = doc.Motion.FrameTime
	}
	fmt.Fprintf(w, "Frames: %d\n", frames)
	fmt.Fprintf(w, "Frame Time: %g\n", frameTime)
	if doc.Motion != nil {
		for _, row := range doc.Motion.Frames {
			for i, v := range row {
				if i > 0 {
					w.WriteString(" ")
				}
				fmt.Fprintf(w, "%g", v)
			}
			w.WriteString("\n")
		}
	}
	return w.Flush()
}

func writeJoint(w *bufio.Writer, j *Joint, depth int, keyword string) {
	indent := strings.Repeat("\t", depth)
	if j.End {
		fmt.Fprintf(w, "%sEnd Site\n%s{\n", indent, indent)
		fmt.Fprintf(w, "%s\tOFFSET %g %g %g\n", indent, j.Offset.X, j.Offset.Y, j.Offset.Z)
		fmt.Fprintf(w, "%s}\n", indent)
		return
	}
	fmt.Fprintf(w, "%s%s %s\n%s{\n", indent, keyword, j.Name, indent)
	fmt.Fprintf(w, "%s\tOFFSET %g %g %g\n", indent, j.Offset.X, j.Offset.Y, j.Offset.Z)
	if len(j.Channels) > 0 {
		fmt.Fprintf(w, "%s\tCHANNELS %d", indent, len(j.Channels))
		for _, c := range j.Channels {
			fmt.Fprintf(w, " %s", c)
		}
		w.WriteString("\n")
	}
	for _, c := range j.Children {
		writeJoint(w, c, depth+1, "JOINT")
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

func Save(doc *Document, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return Write(doc, w)
}
