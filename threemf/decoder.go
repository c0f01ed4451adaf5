package threemf

import (
	"fmt"
	"log"
	"strconv"

	"github.com/binzume/threemfconv/geom"
)

type resourceKind int

const (
	kindUnknown resourceKind = iota
	kindObject
	kindBaseMaterials
	kindMetadata
	kindBuild
)

var resourceKinds = map[string]resourceKind{
	"object":        kindObject,
	"basematerials": kindBaseMaterials,
	"metadata":      kindMetadata,
	"build":         kindBuild,
}

func resourceKindOf(name string) resourceKind {
	return resourceKinds[name]
}

// decoder accumulates resources while walking a <model> tree.
// Materials are stored flat in declaration order; groups hold indices
// into that slice, so re-declaring a group id never invalidates
// already assigned material indices.
type decoder struct {
	doc    *Document
	groups map[int][]int
}

func newDecoder() *decoder {
	return &decoder{
		doc:    &Document{Root: &Node{Name: "3MF"}},
		groups: map[int][]int{},
	}
}

// Decode builds a Document from a parsed <model> element.
// A missing model or resources element yields an empty document.
// Material groups are collected before any object is read, so an
// object may reference a group declared later in the file.
func (d *decoder) Decode(model *Element) (*Document, error) {
	if model == nil || model.Name != "model" {
		return d.doc, nil
	}
	d.doc.Unit = model.AttrString("unit", "millimeter")

	for _, c := range model.GetChildren() {
		if resourceKindOf(c.Name) == kindMetadata {
			d.readMetadata(c)
		}
	}

	resources := model.FindChild("resources")
	for _, c := range resources.GetChildren() {
		switch resourceKindOf(c.Name) {
		case kindBaseMaterials:
			d.readBaseMaterials(c)
		case kindMetadata:
			d.readMetadata(c)
		}
	}
	for _, c := range resources.GetChildren() {
		if resourceKindOf(c.Name) == kindObject {
			if node := d.readObject(c); node != nil {
				d.doc.Root.AddChild(node)
			}
		}
	}
	return d.doc, nil
}

func (d *decoder) readMetadata(elem *Element) {
	name := elem.AttrString("name", "")
	if name == "" {
		return
	}
	d.doc.Metadata = append(d.doc.Metadata, &MetaEntry{Name: name, Value: elem.Text})
}

func (d *decoder) readBaseMaterials(elem *Element) {
	id, ok := elem.Attr("id")
	if !ok {
		return
	}
	gid, err := strconv.Atoi(id)
	if err != nil {
		gid = 0
	}
	var indices []int
	for _, c := range elem.GetChildren() {
		if c.Name != "base" {
			continue
		}
		name := c.AttrString("name", "")
		if name == "" {
			name = fmt.Sprintf("id%d_base%d", gid, len(indices))
		} else {
			name = fmt.Sprintf("id%d_%s", gid, name)
		}
		mat := &Material{Name: name}
		if col, ok := ParseColor(c.AttrString("displaycolor", "")); ok {
			mat.Color = &col
		}
		indices = append(indices, len(d.doc.Materials))
		d.doc.Materials = append(d.doc.Materials, mat)
	}
	// last declaration wins
	d.groups[gid] = indices
}

func (d *decoder) readObject(elem *Element) *Node {
	id, ok := elem.Attr("id")
	if !ok || id == "" {
		log.Println("skip object: no id")
		return nil
	}

	material := -1
	if pid, ok := elem.Attr("pid"); ok {
		if pindex, ok := elem.Attr("pindex"); ok {
			if m, ok := d.lookupMaterial(pid, pindex); ok {
				material = m
			}
		}
	}

	node := &Node{Name: id}
	for _, c := range elem.GetChildren() {
		if c.Name != "mesh" {
			continue
		}
		mesh := d.readMesh(c, material)
		mesh.Name = id
		node.Meshes = append(node.Meshes, len(d.doc.Meshes))
		d.doc.Meshes = append(d.doc.Meshes, mesh)
	}
	return node
}

// readMesh reads vertices and triangles in document order. A triangle
// with a resolvable pid/p1 pair overrides the mesh material; the last
// one wins. Vertex indices are not checked against the vertex count.
func (d *decoder) readMesh(elem *Element, material int) *Mesh {
	mesh := &Mesh{Material: material}
	for _, c := range elem.FindChild("vertices").GetChildren() {
		if c.Name != "vertex" {
			continue
		}
		mesh.Vertexes = append(mesh.Vertexes, &geom.Vector3{
			X: c.AttrFloat("x", 0),
			Y: c.AttrFloat("y", 0),
			Z: c.AttrFloat("z", 0),
		})
	}
	for _, c := range elem.FindChild("triangles").GetChildren() {
		if c.Name != "triangle" {
			continue
		}
		mesh.Faces = append(mesh.Faces, &Face{
			Verts: [3]int{c.AttrInt("v1", 0), c.AttrInt("v2", 0), c.AttrInt("v3", 0)},
		})
		if pid, ok := c.Attr("pid"); ok {
			if p1, ok := c.Attr("p1"); ok {
				if m, ok := d.lookupMaterial(pid, p1); ok {
					mesh.Material = m
				}
			}
		}
	}
	return mesh
}

func (d *decoder) lookupMaterial(pid, pindex string) (int, bool) {
	gid, err := strconv.Atoi(pid)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(pindex)
	if err != nil {
		return 0, false
	}
	group, ok := d.groups[gid]
	if !ok || n < 0 || n >= len(group) {
		return 0, false
	}
	return group[n], true
}

// ParseColor parses a "#RRGGBB" or "#RRGGBBAA" color string.
// Components are mapped to 0.0-1.0, alpha defaults to 1.0.
func ParseColor(s string) (geom.Vector4, bool) {
	if len(s) != 7 && len(s) != 9 || s[0] != '#' {
		return geom.Vector4{}, false
	}
	var c [4]uint64
	c[3] = 255
	for i := 0; i*2+1 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2+1:i*2+3], 16, 8)
		if err != nil {
			return geom.Vector4{}, false
		}
		c[i] = v
	}
	return geom.Vector4{
		X: float32(c[0]) / 255,
		Y: float32(c[1]) / 255,
		Z: float32(c[2]) / 255,
		W: float32(c[3]) / 255,
	}, true
}
