package declarative

import (
	"reflect"
	"sync"

	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/metrics"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// PortalRegistry maps portal identifiers to reactive content slots. One is
// created by each PortalProvider and shared by every input and output below
// it.
type PortalRegistry struct {
	mu    sync.Mutex
	slots []*portalSlot
}

type portalSlot struct {
	id      any
	content *reactive.Signal[Content]
}

var portalContext = reactive.CreateContext[*PortalRegistry]("PortalRegistry", nil)

// slot returns the slot for id, creating an empty one on first use.
func (r *PortalRegistry) slot(id any) *portalSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.id == id {
			return s
		}
	}
	s := &portalSlot{
		id: id,
		// Content functions are not comparable; every write is a change.
		content: reactive.NewSignal[Content](nil).WithEquals(func(a, b Content) bool { return false }),
	}
	r.slots = append(r.slots, s)
	metrics.RecordPortalSlots(1)
	return s
}

func (r *PortalRegistry) write(id any, content Content) {
	s := r.slot(id)
	// Set runs effects synchronously; never hold mu across it.
	s.content.Set(content)
	metrics.RecordPortalWrite()
}

// Len returns the number of slots.
func (r *PortalRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// IDs returns the slot identifiers in creation order.
func (r *PortalRegistry) IDs() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]any, len(r.slots))
	for i, s := range r.slots {
		ids[i] = s.id
	}
	return ids
}

// Has reports whether a slot exists for id.
func (r *PortalRegistry) Has(id any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.id == id {
			return true
		}
	}
	return false
}

func (r *PortalRegistry) release() {
	r.mu.Lock()
	n := len(r.slots)
	r.slots = nil
	r.mu.Unlock()
	metrics.RecordPortalSlots(-n)
}

// PortalProvider makes a fresh registry available to children and
// renders them. Nested providers shadow outer ones.
func PortalProvider(children Content) *vdom.VNode {
	reg := &PortalRegistry{}
	scope := reactive.NewOwner(reactive.CurrentOwner())
	portalContext.ProvideOn(scope, reg)
	scope.OnCleanup(reg.release)

	var node *vdom.VNode
	scope.Run(func() {
		node = children.node()
	})
	return node
}

// CurrentPortals returns the registry of the nearest PortalProvider, if any.
func CurrentPortals() (*PortalRegistry, bool) {
	reg, ok := portalContext.Lookup()
	return reg, ok && reg != nil
}

// PortalInput stores content under id. It renders nothing at its own
// position; the content appears wherever PortalOutput(id) is mounted.
// Writing the same id again replaces the content and re-renders the output.
func PortalInput[ID comparable](id ID, content Content) *vdom.VNode {
	reg := lookupRegistry("PortalInput")
	checkPortalID("PortalInput", id)
	reg.write(id, content)
	return nil
}

// Portal is the region produced by PortalOutput.
type Portal struct {
	slot   *portalSlot
	region *region
}

// PortalOutput renders whatever content is currently stored under id, or
// nothing until an input writes it.
func PortalOutput[ID comparable](id ID) *Portal {
	reg := lookupRegistry("PortalOutput")
	checkPortalID("PortalOutput", id)
	p := &Portal{slot: reg.slot(id)}
	p.region = newRegion("portal", func() *vdom.VNode {
		return p.slot.content.Get().node()
	})
	return p
}

// Render returns the portal's current content.
func (p *Portal) Render() *vdom.VNode {
	return p.region.Render()
}

// HasContent reports whether an input has written to this portal.
func (p *Portal) HasContent() bool {
	return p.slot.content.Peek() != nil
}

// Evaluations reports how many times the output has been evaluated.
func (p *Portal) Evaluations() uint64 {
	return p.region.Evaluations()
}

// Dispose stops the output from tracking its slot.
func (p *Portal) Dispose() {
	p.region.Dispose()
}

var _ vdom.Component = (*Portal)(nil)

func lookupRegistry(site string) *PortalRegistry {
	reg, ok := CurrentPortals()
	if !ok {
		err := errors.New("E110").
			WithCaller(2).
			WithDetail(site + " was called outside of any PortalProvider.").
			WithSuggestion("Wrap the tree that uses portals in declarative.PortalProvider(...)")
		logger().Error("portal provider missing", "site", site, "location", err.Location)
		panic(err)
	}
	return reg
}

// checkPortalID rejects identifiers whose dynamic value cannot be compared,
// such as a slice stored in an interface-typed ID.
func checkPortalID(site string, id any) {
	if id == nil || reflect.ValueOf(id).Comparable() {
		return
	}
	err := errors.New("E111").
		WithCaller(2).
		WithDetail(site + " was given an identifier of type " + reflect.TypeOf(id).String() + ".").
		WithSuggestion("Use a comparable identifier, typically an empty struct type: type modal struct{}")
	logger().Error("portal identifier not comparable", "site", site, "type", reflect.TypeOf(id).String())
	panic(err)
}
