package threemfconv

import (
	"github.com/binzume/threemfconv/converter"
	"github.com/binzume/threemfconv/threemf"
	"github.com/qmuntal/gltf"
)

// Load reads a .3mf package file.
func Load(path string) (*threemf.Document, error) {
	return threemf.Load(path)
}

// ToGLB converts a decoded document and writes it as a .glb file.
func ToGLB(doc *threemf.Document, output string, options *converter.ThreeMFToGLTFOption) error {
	gltfdoc, err := converter.NewThreeMFToGLTFConverter(options).Convert(doc)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(gltfdoc, output)
}
