package purr

// Method is a clowder method. self is the instance view the method was
// resolved through, so calls made on self resolve against the same template.
type Method func(self *Instance, args []Value) (Value, error)

// Clowder is a class-like template with an optional parent.
type Clowder struct {
	Name    string
	Methods map[string]Method
	parent  *Clowder
}

// NewClowder creates a template. A parent chain that loops back on itself is
// rejected with CriticalError.
func NewClowder(name string, parent *Clowder, methods map[string]Method) (*Clowder, error) {
	c := &Clowder{Name: name, Methods: make(map[string]Method, len(methods))}
	for methodName, m := range methods {
		c.Methods[methodName] = m
	}
	if err := c.Extend(parent); err != nil {
		return nil, err
	}
	return c, nil
}

// MustClowder is NewClowder for templates declared at package init.
func MustClowder(name string, parent *Clowder, methods map[string]Method) *Clowder {
	c, err := NewClowder(name, parent, methods)
	if err != nil {
		panic(err)
	}
	return c
}

// Extend sets the parent template. It is how mutually declared templates are
// linked after creation, and it refuses to close a loop.
func (c *Clowder) Extend(parent *Clowder) error {
	seen := map[*Clowder]struct{}{c: {}}
	for p := parent; p != nil; p = p.parent {
		if _, ok := seen[p]; ok {
			return criticalError("clowder %s cannot extend %s: inheritance cycle", c.Name, parent.Name)
		}
		seen[p] = struct{}{}
	}
	c.parent = parent
	return nil
}

func (c *Clowder) Parent() *Clowder { return c.parent }

// Define adds or replaces a method on this template only.
func (c *Clowder) Define(name string, m Method) {
	if c.Methods == nil {
		c.Methods = make(map[string]Method)
	}
	c.Methods[name] = m
}

// lookup walks from c up the parent chain.
func (c *Clowder) lookup(name string) (Method, *Clowder, bool) {
	for t := c; t != nil; t = t.parent {
		if m, ok := t.Methods[name]; ok {
			return m, t, true
		}
	}
	return nil, nil, false
}

// Lineage lists template names from c up to the root.
func (c *Clowder) Lineage() []string {
	var names []string
	for t := c; t != nil; t = t.parent {
		names = append(names, t.Name)
	}
	return names
}

// Wake instantiates the template. Bindings are allocated first, then the
// "wake" method resolved from the chain runs with args. Chaining to the
// parent's wake is up to the method, typically via self.Outside().
func (c *Clowder) Wake(args ...Value) (*Instance, error) {
	inst := &Instance{template: c, core: &instanceCore{bindings: NewBox()}}
	inst.core.self = inst
	if wake, _, ok := c.lookup("wake"); ok {
		if _, err := wake(inst, args); err != nil {
			return nil, err
		}
	}
	inst.core.awake = true
	return inst, nil
}

// InstanceOf reports whether template appears in the chain of the
// instance's most-derived template.
func InstanceOf(inst *Instance, template *Clowder) bool {
	if inst == nil || template == nil {
		return false
	}
	for t := inst.core.self.template; t != nil; t = t.parent {
		if t == template {
			return true
		}
	}
	return false
}
