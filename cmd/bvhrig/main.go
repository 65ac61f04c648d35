package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mocapkit/bvhrig/bvh"
	"github.com/mocapkit/bvhrig/rig"
)

func defaultCsvFile(input string) string {
	ext := filepath.Ext(input)
	return input[0:len(input)-len(ext)] + "_rot.csv"
}

func writeRotationCsv(a *rig.Animation, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	header := []string{"time"}
	for _, j := range a.Skeleton().Joints() {
		order, _ := a.RotationOrder(j.Name)
		name := strings.ToLower(order.String())
		for i := 0; i < 3; i++ {
			header = append(header, fmt.Sprintf("%s.r%c", j.Name, name[i]))
		}
	}
	fmt.Fprintf(bw, "%s\n", strings.Join(header, ","))

	for frame := 0; frame < a.FrameCount(); frame++ {
		transforms, err := a.At(frame)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%.5f", float64(frame)*a.FrameTime())
		for _, t := range transforms {
			const radToDeg = 180 / math.Pi
			values := [3]float32{t.Rotation.X * radToDeg, t.Rotation.Y * radToDeg, t.Rotation.Z * radToDeg}
			for _, axis := range t.Rotation.Order.Axes() {
				fmt.Fprintf(bw, ",%10.5f", values[axis])
			}
		}
		fmt.Fprintf(bw, "\n")
	}
	return nil
}

func printInfo(doc *bvh.Document, a *rig.Animation) {
	joints := doc.Skeleton.Joints()
	fmt.Printf("joints: %d\n", len(joints))
	fmt.Printf("channels: %d\n", doc.Skeleton.TotalChannels())
	fmt.Printf("frames: %d (%.5fs per frame)\n", a.FrameCount(), a.FrameTime())
	for _, j := range joints {
		order, _ := a.RotationOrder(j.Name)
		depth := 0
		for p := j.Parent; p != nil; p = p.Parent {
			depth++
		}
		fmt.Printf("%s%s (%s)\n", strings.Repeat("  ", depth), j.Name, order)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.bvh\n", os.Args[0])
		flag.PrintDefaults()
	}
	scale := flag.Float64("scale", 0, "0:use config or 1.0")
	conf := flag.String("config", "", "import config file (yaml)")
	csv := flag.String("csv", "", "write joint rotations as csv")
	out := flag.String("out", "", "re-emit the parsed file as bvh")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	input := flag.Arg(0)

	builder := rig.NewBuilder(1.0)
	if *conf != "" {
		c, err := rig.LoadImportConfig(*conf)
		if err != nil {
			log.Fatal(err)
		}
		builder, err = c.Builder()
		if err != nil {
			log.Fatal(err)
		}
	}
	if *scale != 0 {
		builder.Scale = *scale
	}

	doc, err := bvh.Load(input)
	if err != nil {
		log.Fatal(err)
	}
	anim, err := builder.Build(doc)
	if err != nil {
		log.Fatal(err)
	}

	printInfo(doc, anim)

	if *csv != "" {
		path := *csv
		if path == "." {
			path = defaultCsvFile(input)
		}
		log.Print("csv: ", path)
		if err := writeRotationCsv(anim, path); err != nil {
			log.Fatal(err)
		}
	}

	if *out != "" {
		log.Print("out: ", *out)
		if err := bvh.Save(doc, *out); err != nil {
			log.Fatal(err)
		}
	}
}
