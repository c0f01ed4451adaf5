package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/threemfconv/converter"
	"github.com/binzume/threemfconv/threemf"
	"github.com/qmuntal/gltf"
)

func defaultOutputFile(input string) string {
	ext := strings.ToLower(filepath.Ext(input))
	return input[0:len(input)-len(ext)] + ".glb"
}

func dumpDocument(doc *threemf.Document) {
	log.Println("unit:", doc.Unit)
	for _, m := range doc.Metadata {
		log.Println("metadata:", m.Name, "=", m.Value)
	}
	for _, n := range doc.Root.Children {
		log.Println("object:", n.Name, "meshes:", len(n.Meshes))
		for _, mi := range n.Meshes {
			mesh := doc.Meshes[mi]
			mat := "none"
			if mesh.Material >= 0 && mesh.Material < len(doc.Materials) {
				mat = doc.Materials[mesh.Material].Name
			}
			log.Printf("  mesh %d: %d vertexes, %d faces, material: %s", mi, len(mesh.Vertexes), len(mesh.Faces), mat)
		}
	}
	for i, m := range doc.Materials {
		if m.Color != nil {
			log.Printf("material %d: %s #%02X%02X%02X%02X", i, m.Name,
				int(m.Color.X*255), int(m.Color.Y*255), int(m.Color.Z*255), int(m.Color.W*255))
		} else {
			log.Printf("material %d: %s", i, m.Name)
		}
	}
}

func main() {
	confFile := flag.String("conf", "", "Config file (.yaml)")
	output := flag.String("o", "", "Output file (.glb or .gltf)")
	scale := flag.Float64("scale", 0, "Scale factor (0: use model unit)")
	unlit := flag.Bool("unlit", false, "Use unlit materials")
	dump := flag.Bool("dump", false, "Print document summary and exit")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("usage: threemfconv [options] input.3mf")
		flag.PrintDefaults()
		os.Exit(1)
	}
	input := flag.Arg(0)

	if !threemf.IsPackage(input) {
		log.Fatal("not a 3mf package: ", input)
	}
	doc, err := threemf.Load(input)
	if err != nil {
		log.Fatal(err)
	}

	if *dump {
		dumpDocument(doc)
		return
	}

	options := &converter.ThreeMFToGLTFOption{Scale: float32(*scale), ForceUnlit: *unlit}
	if *confFile != "" {
		conf, err := converter.LoadConfig(*confFile)
		if err != nil {
			log.Fatal(err)
		}
		converter.ApplyConfig(doc, conf)
		options = conf.Option()
		if *scale != 0 {
			options.Scale = float32(*scale)
		}
		options.ForceUnlit = options.ForceUnlit || *unlit
	}

	gltfdoc, err := converter.NewThreeMFToGLTFConverter(options).Convert(doc)
	if err != nil {
		log.Fatal(err)
	}

	out := *output
	if out == "" {
		out = defaultOutputFile(input)
	}
	if strings.ToLower(filepath.Ext(out)) == ".gltf" {
		err = gltf.Save(gltfdoc, out)
	} else {
		err = gltf.SaveBinary(gltfdoc, out)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Println("ok:", out)
}
