package converter

import (
	"testing"

	"github.com/binzume/threemfconv/geom"
	"github.com/binzume/threemfconv/threemf"
)

func testDocument() *threemf.Document {
	doc := &threemf.Document{
		Unit: "millimeter",
		Root: &threemf.Node{Name: "3MF"},
		Materials: []*threemf.Material{
			{Name: "id1_Red", Color: &geom.Vector4{X: 1, W: 1}},
			{Name: "id1_NoColor"},
		},
		Meshes: []*threemf.Mesh{
			{
				Name: "cube",
				Vertexes: []*geom.Vector3{
					{X: 0, Y: 0, Z: 0}, {X: 1000, Y: 0, Z: 0}, {X: 0, Y: 1000, Z: 0},
				},
				Faces:    []*threemf.Face{{Verts: [3]int{0, 1, 2}}},
				Material: 0,
			},
		},
	}
	doc.Root.AddChild(&threemf.Node{Name: "cube", Meshes: []int{0}})
	return doc
}

func TestConvert(t *testing.T) {
	conv := NewThreeMFToGLTFConverter(nil)
	gltfdoc, err := conv.Convert(testDocument())
	if err != nil {
		t.Fatal(err)
	}
	if len(gltfdoc.Nodes) != 1 || gltfdoc.Nodes[0].Name != "cube" {
		t.Fatal("nodes:", len(gltfdoc.Nodes))
	}
	if len(gltfdoc.Scenes[0].Nodes) != 1 {
		t.Error("scene nodes:", gltfdoc.Scenes[0].Nodes)
	}
	if len(gltfdoc.Meshes) != 1 || len(gltfdoc.Meshes[0].Primitives) != 1 {
		t.Fatal("meshes:", len(gltfdoc.Meshes))
	}
	prim := gltfdoc.Meshes[0].Primitives[0]
	if prim.Material == nil || *prim.Material != 0 {
		t.Error("primitive material:", prim.Material)
	}
	if len(gltfdoc.Materials) != 2 {
		t.Fatal("materials:", len(gltfdoc.Materials))
	}
	if c := gltfdoc.Materials[0].PBRMetallicRoughness.BaseColorFactor; *c != [4]float32{1, 0, 0, 1} {
		t.Error("base color:", c)
	}
	if c := gltfdoc.Materials[1].PBRMetallicRoughness.BaseColorFactor; *c != [4]float32{1, 1, 1, 1} {
		t.Error("default base color:", c)
	}
}

func TestConvert_Unlit(t *testing.T) {
	conv := NewThreeMFToGLTFConverter(&ThreeMFToGLTFOption{ForceUnlit: true})
	gltfdoc, err := conv.Convert(testDocument())
	if err != nil {
		t.Fatal(err)
	}
	if gltfdoc.Materials[0].Extensions["KHR_materials_unlit"] == nil {
		t.Error("unlit extension not set")
	}
	found := false
	for _, e := range gltfdoc.ExtensionsUsed {
		found = found || e == "KHR_materials_unlit"
	}
	if !found {
		t.Error("ExtensionsUsed:", gltfdoc.ExtensionsUsed)
	}
}

func TestApplyConfig(t *testing.T) {
	doc := testDocument()
	conf := &Config{
		Scale: 1,
		MaterialSettings: map[string]*MaterialSetting{
			"id1_NoColor": {Color: "#0000FF"},
			"id1_Red":     {Color: "bad color"},
		},
	}
	ApplyConfig(doc, conf)
	if c := doc.Materials[1].Color; c == nil || *c != (geom.Vector4{Z: 1, W: 1}) {
		t.Error("color override:", c)
	}
	if c := doc.Materials[0].Color; *c != (geom.Vector4{X: 1, W: 1}) {
		t.Error("invalid color should be ignored:", c)
	}
	if conf.Option().Scale != 1 {
		t.Error("option scale")
	}
}
