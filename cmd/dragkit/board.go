package main

import (
	"github.com/vango-dev/dragkit/pkg/drag"
	"github.com/vango-dev/dragkit/pkg/dragserver"
	"github.com/vango-dev/dragkit/pkg/vdom"
)

type demoCard struct {
	id       string
	title    string
	selected bool
	locked   bool
}

var demoColumns = []struct {
	id    string
	title string
	cards []demoCard
}{
	{"todo", "To do", []demoCard{
		{id: "card-1", title: "Write release notes", selected: true},
		{id: "card-2", title: "Triage inbox", selected: true},
		{id: "card-3", title: "Pin dependencies", locked: true},
	}},
	{"doing", "Doing", []demoCard{
		{id: "card-4", title: "Autoscroll tuning"},
	}},
	{"done", "Done", []demoCard{
		{id: "card-5", title: "Clone rotation"},
	}},
}

// demoBoard renders the board. Selected cards drag together; locked cards
// carry a handle that vetoes the drag.
func demoBoard() *vdom.VNode {
	columns := make([]*vdom.VNode, 0, len(demoColumns))
	for _, col := range demoColumns {
		cards := make([]*vdom.VNode, 0, len(col.cards))
		for _, c := range col.cards {
			class := []string{"card"}
			if c.selected {
				class = append(class, drag.SelectedClass)
			}
			var lock *vdom.VNode
			if c.locked {
				lock = vdom.Button(vdom.Class("lock"), vdom.Flag(drag.NoDragAttr), vdom.Text("locked"))
			}
			cards = append(cards, vdom.Li(
				vdom.ID(c.id),
				vdom.Class(class...),
				vdom.Span(vdom.Class("title"), vdom.Text(c.title)),
				vdom.Span(vdom.Class("meta"), vdom.Flag(drag.ExcludeAttr), vdom.Text(c.id)),
				lock,
			))
		}
		columns = append(columns, vdom.Section(
			vdom.ID(col.id),
			vdom.Class("column"),
			vdom.Span(vdom.Class("heading"), vdom.Text(col.title)),
			vdom.Ul(vdom.Class("cards"), cards),
		))
	}
	return vdom.Div(vdom.ID("board"), vdom.Class("board"), columns)
}

// buildDemo mounts the demo board into a session and wires every column as
// a drop target that outlines itself while a drag is in progress.
func buildDemo(s *dragserver.Session) {
	doc := s.Document()
	doc.Append(doc.Body, demoBoard())

	for _, col := range demoColumns {
		column := doc.GetElementByID(col.id)
		name := col.id
		s.Targets().Add(name, drag.FuncTarget{
			OnRegister: func(p drag.Payload) {
				v, _ := drag.Value(p)
				s.Logger().Debug("drop target armed", "column", name, "payload", v)
				s.SetStyle(column, "outline", "2px dashed #4a90d9")
			},
			OnUnregister: func() {
				s.SetStyle(column, "outline", "")
			},
		})

		for _, c := range col.cards {
			s.Controller().Attach(doc.GetElementByID(c.id), drag.Config{
				Selector:        "." + drag.SelectedClass,
				Payload:         drag.Immediate{Value: c.id},
				ViewportID:      "board",
				ExtendWithClass: "card-ghost",
			})
		}
	}
}
