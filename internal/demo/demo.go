package demo

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/declarative/internal/errors"
	. "github.com/vango-dev/declarative/pkg/declarative"
	"github.com/vango-dev/declarative/pkg/reactive"
	. "github.com/vango-dev/declarative/pkg/vdom"
)

// Signal names understood by Set and Apply.
const (
	Maintenance = "maintenance"
	LoggedIn    = "loggedIn"
	Admin       = "admin"
	Guest       = "guest"
	Banner      = "banner"
)

// Portal identifiers. Each is its own type, so slots never collide.
type (
	toolbarSlot struct{}
	bannerSlot  struct{}
)

// Dashboard is a small application exercising every construct: a chained
// If, a nested If and two portals whose inputs live inside branches.
//
// A Dashboard is not safe for concurrent use. Create it, write its signals
// and render it from one goroutine.
type Dashboard struct {
	owner   *reactive.Owner
	signals map[string]*reactive.Signal[bool]
	view    *VNode

	main *Conditional
}

// New builds the dashboard under the current owner. The defaults show the
// signed-out page with the sale banner.
func New() *Dashboard {
	d := &Dashboard{
		owner: reactive.NewOwner(reactive.CurrentOwner()),
		signals: map[string]*reactive.Signal[bool]{
			Maintenance: reactive.NewSignal(false),
			LoggedIn:    reactive.NewSignal(false),
			Admin:       reactive.NewSignal(false),
			Guest:       reactive.NewSignal(false),
			Banner:      reactive.NewSignal(true),
		},
	}
	d.owner.Run(func() {
		d.view = PortalProvider(d.layout)
	})
	return d
}

func (d *Dashboard) layout() *VNode {
	s := d.signals

	d.main = If(s[Maintenance].Get,
		Then(withoutToolbar(P(Class("notice"), "Down for maintenance"))),
		ElseIf(s[LoggedIn].Get, d.account),
		ElseIf(s[Guest].Get, withoutToolbar(P("Browsing as guest"))),
		Else(withoutToolbar(P("Please sign in"), Button(Data("signal", LoggedIn), "Sign in"))),
	)

	banner := If(s[Banner].Get,
		Then(func() *VNode {
			return PortalInput(bannerSlot{}, Static(Strong("Spring sale: 20% off")))
		}),
		Else(func() *VNode {
			return PortalInput(bannerSlot{}, nil)
		}),
	)

	return Div(Class("app"),
		Header(H1("Dashboard"), Nav(PortalOutput(toolbarSlot{}))),
		Main(d.main),
		Section(Class("hidden"), banner),
		Footer(PortalOutput(bannerSlot{})),
	)
}

// account renders the signed-in view. The toolbar portal is written from
// here, far from where it is displayed.
func (d *Dashboard) account() *VNode {
	admin := d.signals[Admin]
	return Div(Class("account"),
		P("Welcome back"),
		If(admin.Get,
			Then(func() *VNode {
				return Fragment(
					PortalInput(toolbarSlot{}, Static(Button("Admin tools"))),
					Ul(Li("Users"), Li("Billing")),
				)
			}),
			Else(func() *VNode {
				return PortalInput(toolbarSlot{}, Static(Button("Profile")))
			}),
		),
	)
}

// withoutToolbar clears the toolbar portal before rendering children.
func withoutToolbar(children ...any) Content {
	return func() *VNode {
		return Fragment(
			PortalInput(toolbarSlot{}, nil),
			Fragment(children...),
		)
	}
}

// View returns the dashboard tree. Rendering it inside an effect subscribes
// the effect to every region in the tree.
func (d *Dashboard) View() *VNode {
	return d.view
}

// Selected reports the kind of the main branch currently shown.
func (d *Dashboard) Selected() string {
	if k, ok := d.main.SelectedKind(); ok {
		return k.String()
	}
	return "none"
}

// Names returns the signal names in sorted order.
func (d *Dashboard) Names() []string {
	names := make([]string, 0, len(d.signals))
	for name := range d.signals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// State returns a copy of every signal's value.
func (d *Dashboard) State() map[string]bool {
	state := make(map[string]bool, len(d.signals))
	for name, s := range d.signals {
		state[name] = s.Peek()
	}
	return state
}

// Get returns the value of the named signal.
func (d *Dashboard) Get(name string) (bool, error) {
	s, err := d.signal(name)
	if err != nil {
		return false, err
	}
	return s.Peek(), nil
}

// Set writes the named signal.
func (d *Dashboard) Set(name string, value bool) error {
	s, err := d.signal(name)
	if err != nil {
		return err
	}
	s.Set(value)
	return nil
}

// Toggle flips the named signal and returns its new value.
func (d *Dashboard) Toggle(name string) (bool, error) {
	s, err := d.signal(name)
	if err != nil {
		return false, err
	}
	v := !s.Peek()
	s.Set(v)
	return v, nil
}

// Apply performs an assignment of the form name=true, name=false or
// name=toggle.
func (d *Dashboard) Apply(assignment string) error {
	name, value, ok := strings.Cut(assignment, "=")
	if !ok || name == "" {
		return errors.New("E151").
			WithDetail("Cannot parse " + strconv.Quote(assignment) + "; expected name=value.")
	}
	return d.ApplyValue(strings.TrimSpace(name), strings.TrimSpace(value))
}

// ApplyValue assigns value ("true", "false", "toggle" or anything
// strconv.ParseBool accepts) to the named signal.
func (d *Dashboard) ApplyValue(name, value string) error {
	if _, err := d.signal(name); err != nil {
		return err
	}
	if strings.EqualFold(value, "toggle") {
		_, err := d.Toggle(name)
		return err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return errors.New("E151").
			WithDetail(strconv.Quote(value) + " is not true, false or toggle.").
			Wrap(err)
	}
	return d.Set(name, b)
}

// ApplyAll applies every assignment in one batch, so the tree re-evaluates
// once.
func (d *Dashboard) ApplyAll(assignments []string) error {
	var err error
	reactive.Batch(func() {
		for _, a := range assignments {
			if err = d.Apply(a); err != nil {
				return
			}
		}
	})
	return err
}

// Dispose releases every region in the tree.
func (d *Dashboard) Dispose() {
	d.owner.Dispose()
}

func (d *Dashboard) signal(name string) (*reactive.Signal[bool], error) {
	s, ok := d.signals[name]
	if !ok {
		return nil, errors.New("E150").
			WithDetail("No signal named " + strconv.Quote(name) + "; known signals: " + strings.Join(d.Names(), ", ") + ".")
	}
	return s, nil
}
