package vdom

import "testing"

func TestText(t *testing.T) {
	n := Textf("count: %d", 3)
	if n.Kind != KindText || n.Text != "count: 3" {
		t.Errorf("Textf() = %+v", n)
	}
}

func TestFragmentChildren(t *testing.T) {
	comp := Func(func() *VNode { return Text("c") })
	n := Fragment(
		nil,
		Div(),
		"text",
		[]*VNode{Span(), nil},
		comp,
	)

	if n.Kind != KindFragment {
		t.Fatalf("Kind = %v, want Fragment", n.Kind)
	}
	if len(n.Children) != 4 {
		t.Fatalf("len(Children) = %d, want 4", len(n.Children))
	}
	if n.Children[1].Kind != KindText {
		t.Errorf("string child Kind = %v, want Text", n.Children[1].Kind)
	}
	if n.Children[3].Kind != KindComponent || n.Children[3].Comp == nil {
		t.Errorf("component child = %+v", n.Children[3])
	}
}

func TestElAttributes(t *testing.T) {
	n := Div(Class("a", "b"), ID("main"), Key(7), P(Text("x")))

	if n.Tag != "div" {
		t.Errorf("Tag = %q, want div", n.Tag)
	}
	if n.Props["class"] != "a b" {
		t.Errorf("class = %v, want 'a b'", n.Props["class"])
	}
	if n.Props["id"] != "main" {
		t.Errorf("id = %v, want main", n.Props["id"])
	}
	if n.Key != "7" {
		t.Errorf("Key = %q, want 7", n.Key)
	}
	if _, ok := n.Props["key"]; ok {
		t.Error("key stored as a prop")
	}
	if len(n.Children) != 1 {
		t.Errorf("len(Children) = %d, want 1", len(n.Children))
	}
}

func TestVoidElementDropsChildren(t *testing.T) {
	n := El("br", Text("ignored"))
	if len(n.Children) != 0 {
		t.Errorf("void element kept %d children", len(n.Children))
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil", nil, true},
		{"empty", Empty(), true},
		{"nested empty", Fragment(Empty(), Fragment()), true},
		{"text", Text(""), false},
		{"fragment with element", Fragment(Div()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.node); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindComponent.String() != "Component" {
		t.Errorf("KindComponent.String() = %q", KindComponent.String())
	}
	if Kind(99).String() != "Unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
