package reactive

// Context is a typed ambient value threaded through the owner tree. A
// provider stores a value on an owner; descendants created under that owner
// look it up without it being passed explicitly.
//
//	var Theme = reactive.CreateContext("theme", "light")
//
//	scope := reactive.NewOwner(reactive.CurrentOwner())
//	scope.Run(func() {
//	    Theme.Provide("dark")
//	    child() // Theme.Use() == "dark"
//	})
type Context[T any] struct {
	name string
	def  T
	key  *contextKey
}

type contextKey struct{ name string }

// CreateContext declares a context. name appears in diagnostics only.
func CreateContext[T any](name string, def T) *Context[T] {
	return &Context[T]{
		name: name,
		def:  def,
		key:  &contextKey{name: name},
	}
}

// Name returns the diagnostic name given to CreateContext.
func (c *Context[T]) Name() string {
	return c.name
}

// Default returns the value Use falls back to.
func (c *Context[T]) Default() T {
	return c.def
}

// Provide stores value on the current owner. It reports false when there is
// no current owner to hold it.
func (c *Context[T]) Provide(value T) bool {
	o := CurrentOwner()
	if o == nil {
		return false
	}
	c.ProvideOn(o, value)
	return true
}

// ProvideOn stores value on o.
func (c *Context[T]) ProvideOn(o *Owner, value T) {
	o.SetValue(c.key, value)
}

// Lookup returns the value from the nearest providing owner.
func (c *Context[T]) Lookup() (T, bool) {
	o := CurrentOwner()
	if o == nil {
		return c.def, false
	}
	v, ok := o.Value(c.key)
	if !ok {
		return c.def, false
	}
	typed, ok := v.(T)
	if !ok {
		return c.def, false
	}
	return typed, true
}

// Use returns the nearest provided value or the default.
func (c *Context[T]) Use() T {
	v, _ := c.Lookup()
	return v
}
