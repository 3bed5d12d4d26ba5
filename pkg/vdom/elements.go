package vdom

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *VNode, []*VNode, string.
// Children are linked to the new node through their Parent field.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			applyAttr(node, v)

		case []Attr:
			for _, a := range v {
				applyAttr(node, a)
			}

		case EventHandler:
			node.Props[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				AppendChild(node, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					AppendChild(node, child)
				}
			}

		case string:
			AppendChild(node, Text(v))
		}
	}

	return node
}

func applyAttr(node *VNode, a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == layoutProp {
		if r, ok := a.Value.(Rect); ok {
			node.Layout = r
		}
		return
	}
	node.Props[a.Key] = a.Value
}

// El creates an element with an arbitrary tag name.
func El(tag string, args ...any) *VNode { return createElement(tag, args) }

// Body creates a <body> element.
func Body(args ...any) *VNode { return createElement("body", args) }

// Div creates a <div> element.
func Div(args ...any) *VNode { return createElement("div", args) }

// Span creates a <span> element.
func Span(args ...any) *VNode { return createElement("span", args) }

// Section creates a <section> element.
func Section(args ...any) *VNode { return createElement("section", args) }

// Ul creates a <ul> element.
func Ul(args ...any) *VNode { return createElement("ul", args) }

// Li creates a <li> element.
func Li(args ...any) *VNode { return createElement("li", args) }

// Button creates a <button> element.
func Button(args ...any) *VNode { return createElement("button", args) }

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}
