package threemf

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	relsPath         = "_rels/.rels"
	modelRelType     = "http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"
	thumbnailRelType = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/thumbnail"
)

var zipSignature = []byte{'P', 'K', 0x03, 0x04}

// Package is an opened 3MF (OPC) container.
type Package struct {
	ModelPath     string
	ThumbnailPath string

	zr    *zip.ReadCloser
	files map[string]*zip.File
}

// IsPackage returns true if the file starts with a zip signature.
func IsPackage(path string) bool {
	r, err := os.Open(path)
	if err != nil {
		return false
	}
	defer r.Close()
	sig := make([]byte, len(zipSignature))
	if _, err := io.ReadFull(r, sig); err != nil {
		return false
	}
	return bytes.Equal(sig, zipSignature)
}

// OpenPackage opens a .3mf file and locates the primary 3D model part.
func OpenPackage(path string) (*Package, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	pkg := &Package{zr: zr, files: map[string]*zip.File{}}
	for _, f := range zr.File {
		pkg.files[f.Name] = f
	}
	pkg.readRelationships()
	if pkg.ModelPath == "" {
		// some packages have broken relationships
		for _, f := range zr.File {
			if strings.HasSuffix(f.Name, ".model") {
				pkg.ModelPath = f.Name
				break
			}
		}
	}
	if pkg.ModelPath == "" {
		pkg.Close()
		return nil, fmt.Errorf("no 3D model part: %s", path)
	}
	return pkg, nil
}

func (p *Package) readRelationships() {
	f := p.files[relsPath]
	if f == nil {
		return
	}
	r, err := f.Open()
	if err != nil {
		return
	}
	defer r.Close()
	rels, err := parseXML(r)
	if err != nil {
		return
	}
	for _, rel := range rels.GetChildren() {
		if rel.Name != "Relationship" {
			continue
		}
		target := strings.TrimPrefix(rel.AttrString("Target", ""), "/")
		switch rel.AttrString("Type", "") {
		case modelRelType:
			p.ModelPath = target
		case thumbnailRelType:
			p.ThumbnailPath = target
		}
	}
}

// Open opens a part of the package by name.
func (p *Package) Open(name string) (io.ReadCloser, error) {
	f := p.files[strings.TrimPrefix(name, "/")]
	if f == nil {
		return nil, os.ErrNotExist
	}
	return f.Open()
}

// RootStream opens the primary 3D model part.
func (p *Package) RootStream() (io.ReadCloser, error) {
	return p.Open(p.ModelPath)
}

// Thumbnail returns the raw bytes of the package thumbnail, if any.
func (p *Package) Thumbnail() ([]byte, error) {
	if p.ThumbnailPath == "" {
		return nil, os.ErrNotExist
	}
	r, err := p.Open(p.ThumbnailPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (p *Package) Close() error {
	return p.zr.Close()
}
