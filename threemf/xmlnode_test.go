package threemf

import (
	"strings"
	"testing"
)

func TestParseXML(t *testing.T) {
	root, err := parseXML(strings.NewReader(
		`<a attr1="hello" attr2="1.5"><b n="1"/><b n="2">text</b><c/></a>`))
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "a" || len(root.Children) != 3 {
		t.Fatal("root:", root.Name, len(root.Children))
	}
	if root.AttrString("attr1", "") != "hello" {
		t.Error("attr1")
	}
	if root.AttrFloat("attr2", 0) != 1.5 {
		t.Error("attr2")
	}
	if root.FindChild("b").AttrInt("n", 0) != 1 {
		t.Error("FindChild should return the first match")
	}
	if root.Children[1].Text != "text" {
		t.Error("text:", root.Children[1].Text)
	}
	if root.FindChild("x") != nil {
		t.Error("FindChild should return nil")
	}
}

func TestParseXML_NilSafety(t *testing.T) {
	var e *Element
	if e.FindChild("a") != nil || e.GetChildren() != nil {
		t.Error("nil element")
	}
	if e.AttrString("a", "def") != "def" || e.AttrInt("a", 7) != 7 || e.AttrFloat("a", 1) != 1 {
		t.Error("nil element attrs")
	}
}

func TestParseXML_Defaults(t *testing.T) {
	root, _ := parseXML(strings.NewReader(`<a n="12x" f="zzz"/>`))
	if root.AttrInt("n", 0) != 0 {
		t.Error("malformed int should use the default")
	}
	if root.AttrFloat("f", 0) != 0 {
		t.Error("malformed float should use the default")
	}
}

func TestParseXML_Errors(t *testing.T) {
	if _, err := parseXML(strings.NewReader(``)); err == nil {
		t.Error("empty document should fail")
	}
	if _, err := parseXML(strings.NewReader(`<a><b></a>`)); err == nil {
		t.Error("mismatched tags should fail")
	}
}
