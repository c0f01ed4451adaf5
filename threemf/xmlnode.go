package threemf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/ianaindex"
)

// Element is a parsed XML element. Methods are nil-safe so that
// missing children or attributes read as default values.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

type Attr struct {
	Name  string
	Value string
}

func (e *Element) FindChild(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (e *Element) GetChildren() []*Element {
	if e == nil {
		return nil
	}
	return e.Children
}

func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *Element) AttrString(name, defvalue string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return defvalue
}

func (e *Element) AttrInt(name string, defvalue int) int {
	if v, ok := e.Attr(name); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defvalue
}

func (e *Element) AttrFloat(name string, defvalue float32) float32 {
	if v, ok := e.Attr(name); ok {
		if n, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(n)
		}
	}
	return defvalue
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset: %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}

func parseXML(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader

	var root *Element
	var stack []*Element
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &Element{Name: t.Name.Local}
			for _, a := range t.Attr {
				e.Attrs = append(e.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			} else if root == nil {
				root = e
			}
			stack = append(stack, e)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("empty document")
	}
	return root, nil
}
