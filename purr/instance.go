package purr

// Instance is a view onto an awake clowder object. The object created by
// Wake and every view reached through Outside share one instanceCore, so a
// field written at any level is visible at every level.
type Instance struct {
	template *Clowder
	core     *instanceCore
	outer    *Instance
}

type instanceCore struct {
	bindings *Box
	self     *Instance
	awake    bool
}

// Clowder returns the template this view resolves methods against.
func (i *Instance) Clowder() *Clowder { return i.template }

// Self returns the most-derived view of the object.
func (i *Instance) Self() *Instance { return i.core.self }

func (i *Instance) Bindings() *Box { return i.core.bindings }

// Awake reports whether the wake method has completed.
func (i *Instance) Awake() bool { return i.core.awake }

// Get resolves name against this view's method table chain first and the
// shared bindings second. Methods come back bound to this view.
func (i *Instance) Get(name string) Value {
	if m, owner, ok := i.template.lookup(name); ok {
		return NewFunction(owner.Name+"."+name, func(args []Value) (Value, error) {
			return m(i, args)
		})
	}
	return i.core.bindings.Get(name)
}

func (i *Instance) Set(name string, value Value) {
	i.core.bindings.Set(name, value)
}

// Call invokes the method or function-valued field called name.
func (i *Instance) Call(name string, args ...Value) (Value, error) {
	if m, _, ok := i.template.lookup(name); ok {
		return m(i, args)
	}
	field := i.core.bindings.Get(name)
	if fn := field.Function(); fn != nil {
		return fn.Call(args...)
	}
	return Nothing, typeMismatch("%s.%s is %s, not a function", i.template.Name, name, field.kind)
}

// Outside returns the view of the object as an instance of the parent
// template. It is built on first use and shares this view's bindings.
func (i *Instance) Outside() (*Instance, error) {
	if i.template.parent == nil {
		return nil, invalidOp("clowder %s has no outside", i.template.Name)
	}
	if i.outer == nil {
		i.outer = &Instance{template: i.template.parent, core: i.core}
	}
	return i.outer, nil
}
