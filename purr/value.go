package purr

type ValueKind int

const (
	KindNothing ValueKind = iota
	KindUndefined
	KindBool
	KindNumber
	KindString
	KindShelf
	KindBox
	KindFunction
	KindClowder
	KindInstance
	KindYarnBall
)

// Value is any runtime value a compiled program can hold. The zero Value is
// nothing.
type Value struct {
	kind ValueKind
	data any
}

// Function is a callable runtime value. Methods bound to an instance are
// Functions too.
type Function struct {
	Name string
	Fn   FunctionFunc
}

type FunctionFunc func(args []Value) (Value, error)

// Call invokes the function with args.
func (f *Function) Call(args ...Value) (Value, error) {
	if f == nil || f.Fn == nil {
		return Nothing, invalidOp("call of empty function")
	}
	return f.Fn(args)
}
