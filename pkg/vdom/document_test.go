package vdom

import (
	"slices"
	"testing"
)

type recordingObserver struct {
	mounted []*VNode
	removed []*VNode
}

func (r *recordingObserver) NodeMounted(_, n *VNode) { r.mounted = append(r.mounted, n) }
func (r *recordingObserver) NodeRemoved(_, n *VNode) { r.removed = append(r.removed, n) }

func TestNewDocumentAssignsHIDs(t *testing.T) {
	doc := NewDocument(Body(Div(ID("a"), Span()), Text("x")))

	var hids []string
	Walk(doc.Body, func(n *VNode) bool {
		if n.HID != "" {
			hids = append(hids, n.HID)
		}
		return true
	})
	if want := []string{"h1", "h2", "h3"}; !slices.Equal(hids, want) {
		t.Errorf("HIDs = %v, want %v (body, div, span)", hids, want)
	}
	if doc.GetElementByID("a") == nil {
		t.Error("GetElementByID(a) = nil")
	}
	if doc.GetElementByID("missing") != nil || doc.GetElementByID("") != nil {
		t.Error("unknown ids should resolve to nil")
	}
}

func TestDocumentAppendRemove(t *testing.T) {
	doc := NewDocument(nil)
	obs := &recordingObserver{}
	doc.SetObserver(obs)

	n := Div(Span())
	doc.Append(doc.Body, n)

	if n.HID == "" || n.Children[0].HID == "" {
		t.Error("mounted subtree should receive HIDs")
	}
	if doc.FindByHID(n.HID) != n {
		t.Error("FindByHID should resolve the mounted node")
	}
	if !doc.Contains(n) {
		t.Error("Contains() = false after Append")
	}

	if !doc.Remove(n) {
		t.Fatal("Remove() = false")
	}
	if doc.Remove(n) {
		t.Error("second Remove() should report false")
	}
	if doc.Contains(n) {
		t.Error("Contains() = true after Remove")
	}
	if len(obs.mounted) != 1 || len(obs.removed) != 1 {
		t.Errorf("observer saw %d mounts and %d removals, want 1 and 1", len(obs.mounted), len(obs.removed))
	}
}

func TestHIDGenerator(t *testing.T) {
	gen := NewHIDGenerator()
	if h := gen.Next(); h != "h1" {
		t.Errorf("Next() = %v, want h1", h)
	}
	if h := gen.Next(); h != "h2" {
		t.Errorf("Next() = %v, want h2", h)
	}
}

func TestAssignHIDsKeepsExisting(t *testing.T) {
	keep := Div()
	keep.HID = "h42"
	root := Div(keep, Div())

	AssignHIDs(root, NewHIDGenerator())

	if keep.HID != "h42" {
		t.Errorf("existing HID changed to %s", keep.HID)
	}
	if root.HID != "h1" || root.Children[1].HID != "h2" {
		t.Errorf("new HIDs = %s, %s, want h1, h2", root.HID, root.Children[1].HID)
	}
	if FindByHID(root, "h42") != keep {
		t.Error("FindByHID(h42) should resolve the kept node")
	}
	if FindByHID(root, "h9") != nil {
		t.Error("FindByHID(h9) should be nil")
	}
}
