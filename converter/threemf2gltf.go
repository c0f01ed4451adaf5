package converter

import (
	"github.com/binzume/threemfconv/threemf"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var unitScale = map[string]float32{
	"micron":     0.000001,
	"millimeter": 0.001,
	"centimeter": 0.01,
	"inch":       0.0254,
	"foot":       0.3048,
	"meter":      1,
}

type ThreeMFToGLTFOption struct {
	Scale      float32 // Default: based on the model unit
	ForceUnlit bool

	MaterialSettings map[string]*MaterialSetting
}

type threemfToGltf struct {
	*ThreeMFToGLTFOption
	*gltf.Document
	useUnlit bool
}

func NewThreeMFToGLTFConverter(options *ThreeMFToGLTFOption) *threemfToGltf {
	if options == nil {
		options = &ThreeMFToGLTFOption{}
	}
	return &threemfToGltf{
		ThreeMFToGLTFOption: options,
		Document:            gltf.NewDocument(),
	}
}

func (m *threemfToGltf) convertMaterial(mat *threemf.Material) *gltf.Material {
	var unlitMaterialExt = "KHR_materials_unlit"
	var rf float32 = 0.9
	var mf float32 = 0
	color := [4]float32{1, 1, 1, 1}
	if mat.Color != nil {
		color = [4]float32{mat.Color.X, mat.Color.Y, mat.Color.Z, mat.Color.W}
	}
	mm := &gltf.Material{
		Name: mat.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			RoughnessFactor: &rf,
			MetallicFactor:  &mf,
		},
	}
	if color[3] < 0.99 {
		mm.AlphaMode = gltf.AlphaBlend
	}
	unlit := m.ForceUnlit
	if s, ok := m.MaterialSettings[mat.Name]; ok {
		if s.AlphaMode == "blend" {
			mm.AlphaMode = gltf.AlphaBlend
		} else if s.AlphaMode == "opaque" {
			mm.AlphaMode = gltf.AlphaOpaque
		}
		unlit = unlit || s.ForceUnlit
	}
	if unlit {
		mm.Extensions = map[string]interface{}{unlitMaterialExt: map[string]string{}}
		m.useUnlit = true
	}
	return mm
}

func (m *threemfToGltf) convertMesh(mesh *threemf.Mesh, scale float32, materialMap map[int]uint32) *gltf.Primitive {
	vertexes := make([][3]float32, len(mesh.Vertexes))
	for i, v := range mesh.Vertexes {
		vertexes[i] = [3]float32{v.X * scale, v.Y * scale, v.Z * scale}
	}
	indices := make([]uint32, 0, len(mesh.Faces)*3)
	for _, f := range mesh.Faces {
		indices = append(indices, uint32(f.Verts[0]), uint32(f.Verts[1]), uint32(f.Verts[2]))
	}
	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			"POSITION": modeler.WritePosition(m.Document, vertexes),
		},
		Indices: gltf.Index(modeler.WriteIndices(m.Document, indices)),
	}
	if mat, ok := materialMap[mesh.Material]; ok {
		prim.Material = gltf.Index(mat)
	}
	return prim
}

func (m *threemfToGltf) Convert(doc *threemf.Document) (*gltf.Document, error) {
	scale := m.Scale
	if scale == 0 {
		if s, ok := unitScale[doc.Unit]; ok {
			scale = s
		} else {
			scale = 0.001
		}
	}

	materialMap := map[int]uint32{}
	for i, mat := range doc.Materials {
		materialMap[i] = uint32(len(m.Document.Materials))
		m.Document.Materials = append(m.Document.Materials, m.convertMaterial(mat))
	}

	for _, node := range doc.Root.Children {
		gnode := &gltf.Node{Name: node.Name}
		if len(node.Meshes) > 0 {
			gmesh := &gltf.Mesh{Name: node.Name}
			for _, mi := range node.Meshes {
				gmesh.Primitives = append(gmesh.Primitives, m.convertMesh(doc.Meshes[mi], scale, materialMap))
			}
			gnode.Mesh = gltf.Index(uint32(len(m.Document.Meshes)))
			m.Document.Meshes = append(m.Document.Meshes, gmesh)
		}
		m.Scenes[0].Nodes = append(m.Scenes[0].Nodes, uint32(len(m.Nodes)))
		m.Nodes = append(m.Nodes, gnode)
	}

	if title := doc.GetMetadata("Title"); title != "" {
		m.Scenes[0].Name = title
	}
	if m.useUnlit {
		m.ExtensionsUsed = append(m.ExtensionsUsed, "KHR_materials_unlit")
	}
	return m.Document, nil
}
