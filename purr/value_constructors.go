package purr

var (
	Nothing   = Value{kind: KindNothing}
	Undefined = Value{kind: KindUndefined}
	True      = Value{kind: KindBool, data: true}
	False     = Value{kind: KindBool, data: false}
)

func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

func NewNumber(n float64) Value          { return Value{kind: KindNumber, data: n} }
func NewInt(n int) Value                 { return Value{kind: KindNumber, data: float64(n)} }
func NewString(s string) Value           { return Value{kind: KindString, data: s} }
func NewShelfValue(s *Shelf) Value       { return Value{kind: KindShelf, data: s} }
func NewBoxValue(b *Box) Value           { return Value{kind: KindBox, data: b} }
func NewClowderValue(c *Clowder) Value   { return Value{kind: KindClowder, data: c} }
func NewInstanceValue(i *Instance) Value { return Value{kind: KindInstance, data: i} }
func NewYarnBallValue(y *YarnBall) Value { return Value{kind: KindYarnBall, data: y} }

func NewFunction(name string, fn FunctionFunc) Value {
	return Value{kind: KindFunction, data: &Function{Name: name, Fn: fn}}
}

// ShelfOf builds a shelf value from values; the last one ends up on top.
func ShelfOf(values ...Value) Value {
	return NewShelfValue(FromSlice(values))
}
