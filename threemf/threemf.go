// Package threemf reads 3MF (3D Manufacturing Format) files.
package threemf

import (
	"io"

	"github.com/binzume/threemfconv/geom"
)

// Document is a decoded 3MF model.
type Document struct {
	Unit      string
	Root      *Node
	Meshes    []*Mesh
	Materials []*Material
	Metadata  []*MetaEntry
}

type Node struct {
	Name     string
	Parent   *Node
	Children []*Node
	Meshes   []int // indices into Document.Meshes
}

type Mesh struct {
	Name     string
	Vertexes []*geom.Vector3
	Faces    []*Face
	Material int // index into Document.Materials. -1: no material
}

type Face struct {
	Verts [3]int
}

type Material struct {
	Name  string
	Color *geom.Vector4 // RGBA. nil: not specified
}

type MetaEntry struct {
	Name  string
	Value string
}

// GetMetadata returns the first metadata value for name.
func (doc *Document) GetMetadata(name string) string {
	for _, m := range doc.Metadata {
		if m.Name == name {
			return m.Value
		}
	}
	return ""
}

func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Load reads a .3mf package file.
func Load(path string) (*Document, error) {
	pkg, err := OpenPackage(path)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()
	r, err := pkg.RootStream()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Parse(r)
}

// Parse reads a bare 3D model XML stream (the primary part of a package).
func Parse(r io.Reader) (*Document, error) {
	root, err := parseXML(r)
	if err != nil {
		return nil, err
	}
	return newDecoder().Decode(root)
}
