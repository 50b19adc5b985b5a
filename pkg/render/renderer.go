package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/vango-dev/declarative/pkg/vdom"
)

// Config configures a Renderer.
type Config struct {
	// Pretty indents elements, one per line. Development only.
	Pretty bool

	// Indent is one indentation level in pretty mode. Defaults to two spaces.
	Indent string
}

// Renderer writes VNode trees as HTML.
//
// Component nodes are rendered by calling Render, so rendering a tree that
// contains reactive regions reads their current output. Inside an effect
// those reads are tracked and the effect re-runs when a region re-renders.
type Renderer struct {
	config Config
}

// New returns a renderer for config.
func New(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// String renders node with a compact default renderer.
func String(node *vdom.VNode) string {
	s, _ := New(Config{}).RenderToString(node)
	return s
}

// RenderToString renders node into a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams node to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.node(w, node, 0)
}

func (r *Renderer) node(w io.Writer, n *vdom.VNode, depth int) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case vdom.KindElement:
		return r.element(w, n, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(n.Text))
		return err
	case vdom.KindRaw:
		_, err := io.WriteString(w, n.Text)
		return err
	case vdom.KindFragment:
		for _, c := range n.Children {
			if err := r.node(w, c, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if n.Comp == nil {
			return nil
		}
		return r.node(w, n.Comp.Render(), depth)
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind)
	}
}

func (r *Renderer) element(w io.Writer, n *vdom.VNode, depth int) error {
	if r.config.Pretty {
		r.indent(w, depth)
	}
	if _, err := io.WriteString(w, "<"+n.Tag); err != nil {
		return err
	}
	if err := r.attributes(w, n.Props); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if vdom.IsVoidElement(n.Tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := r.config.Pretty && hasElementChild(n)
	if block {
		io.WriteString(w, "\n")
	}
	for _, c := range n.Children {
		if err := r.node(w, c, depth+1); err != nil {
			return err
		}
	}
	if block {
		r.indent(w, depth)
	}
	if _, err := io.WriteString(w, "</"+n.Tag+">"); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// attributes writes props in key order so output is deterministic.
func (r *Renderer) attributes(w io.Writer, props vdom.Props) error {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := props[k].(type) {
		case nil:
		case bool:
			if v {
				if _, err := io.WriteString(w, " "+k); err != nil {
					return err
				}
			}
		default:
			if _, err := fmt.Fprintf(w, ` %s="%s"`, k, escapeAttr(attrString(v))); err != nil {
				return err
			}
		}
	}
	return nil
}

func attrString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func hasElementChild(n *vdom.VNode) bool {
	for _, c := range n.Children {
		if c != nil && c.Kind != vdom.KindText {
			return true
		}
	}
	return false
}

func (r *Renderer) indent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
