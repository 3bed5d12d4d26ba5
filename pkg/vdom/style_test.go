package vdom

import "testing"

func TestParseStyle(t *testing.T) {
	st := ParseStyle(" width: 10px ;opacity:0.5;; broken ; :x")

	if got := st.Get("width"); got != "10px" {
		t.Errorf("width = %q", got)
	}
	if got := st.Get("opacity"); got != "0.5" {
		t.Errorf("opacity = %q", got)
	}
	if got := st.String(); got != "width: 10px; opacity: 0.5" {
		t.Errorf("String() = %q", got)
	}
}

func TestSetStyleKeepsOrder(t *testing.T) {
	n := Div(StyleAttr("width: 10px; height: 4px"))

	n.SetStyle("width", "20px")
	n.SetStyle("opacity", "0.5")

	if got, _ := n.GetAttr("style"); got != "width: 20px; height: 4px; opacity: 0.5" {
		t.Errorf("style = %q", got)
	}
	if got := n.StyleValue("opacity"); got != "0.5" {
		t.Errorf("StyleValue(opacity) = %q", got)
	}
}

func TestSetStyleEmptyRemoves(t *testing.T) {
	n := Div(StyleAttr("opacity: 0.5"))
	n.SetStyle("opacity", "")
	if n.HasAttr("style") {
		t.Error("removing the last declaration should drop the style attribute")
	}
}
