package purr

import "sync"

// Export is one field of a yarn ball. Get runs at most once, on first read.
type Export struct {
	Name string
	Get  func() (Value, error)
}

// Const exports a value that is already known.
func Const(name string, value Value) Export {
	return Export{Name: name, Get: func() (Value, error) { return value, nil }}
}

// Func exports a function value.
func Func(name string, fn FunctionFunc) Export {
	return Const(name, NewFunction(name, fn))
}

// YarnBall is a module's export table. Its field set is fixed at creation and
// every field is read-only.
type YarnBall struct {
	Name   string
	names  []string
	fields map[string]func() (Value, error)
}

func NewYarnBall(name string, exports ...Export) *YarnBall {
	y := &YarnBall{Name: name, fields: make(map[string]func() (Value, error), len(exports))}
	for _, e := range exports {
		if _, dup := y.fields[e.Name]; !dup {
			y.names = append(y.names, e.Name)
		}
		y.fields[e.Name] = sync.OnceValues(e.Get)
	}
	return y
}

// Get evaluates the named export. Unknown names are an InvalidImport.
func (y *YarnBall) Get(field string) (Value, error) {
	get, ok := y.fields[field]
	if !ok {
		return Nothing, invalidImport("yarn ball %q has no export %q", y.Name, field)
	}
	return get()
}

// Set always fails: exports are read-only.
func (y *YarnBall) Set(field string, _ Value) error {
	return typeMismatch("cannot assign %q: yarn ball %q is read-only", field, y.Name)
}

// Call invokes a function export.
func (y *YarnBall) Call(field string, args ...Value) (Value, error) {
	v, err := y.Get(field)
	if err != nil {
		return Nothing, err
	}
	fn, err := EnsureFunction(v)
	if err != nil {
		return Nothing, err
	}
	return fn.Call(args...)
}

func (y *YarnBall) Fields() []string {
	return append([]string(nil), y.names...)
}

// snapshot evaluates every export into a fresh box.
func (y *YarnBall) snapshot() (*Box, error) {
	box := NewBox()
	for _, name := range y.names {
		v, err := y.fields[name]()
		if err != nil {
			return nil, err
		}
		box.Set(name, v)
	}
	return box, nil
}
