package purr

import "cmp"

// Ordering is the result of Compare. The set is closed.
type Ordering int

const (
	OrderLess    Ordering = -1
	OrderEqual   Ordering = 0
	OrderGreater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case OrderLess:
		return "Less"
	case OrderEqual:
		return "Equal"
	case OrderGreater:
		return "Greater"
	default:
		return "Ordering(?)"
	}
}

// Equal reports relation equality. Shelves compare element by element;
// boxes, instances, clowders, functions and yarn balls compare by identity.
// An instance and any of its Outside views are the same object.
// Both absent sentinels are equal to each other and to nothing else.
func Equal(a, b Value) bool {
	if a.IsNothing() || b.IsNothing() {
		return a.IsNothing() && b.IsNothing()
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.Bool() == b.Bool()
	case KindNumber:
		return a.Number() == b.Number()
	case KindString:
		return a.Text() == b.Text()
	case KindShelf:
		x, y := a.Shelf(), b.Shelf()
		for x != nil && y != nil {
			if x == y {
				return true
			}
			if !Equal(x.head, y.head) {
				return false
			}
			x, y = x.tail, y.tail
		}
		return x == nil && y == nil
	case KindInstance:
		return a.Instance().core == b.Instance().core
	default:
		return a.data == b.data
	}
}

// Compare orders two comparable values. Numbers, strings, booleans and
// shelves of comparable values are supported; anything else fails with
// TypeMismatch.
//
// Compare is a total order so Sort stays deterministic: NaN orders below
// every other number and Compare(NaN, NaN) is OrderEqual. Equal keeps
// IEEE semantics, so a NaN is never Equal to itself.
func Compare(a, b Value) (Ordering, error) {
	if a.kind != b.kind {
		return OrderEqual, typeMismatch("cannot compare %s with %s", a.kind, b.kind)
	}
	switch a.kind {
	case KindNumber:
		return Ordering(cmp.Compare(a.Number(), b.Number())), nil
	case KindString:
		return Ordering(cmp.Compare(a.Text(), b.Text())), nil
	case KindBool:
		return Ordering(cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))), nil
	case KindShelf:
		left, right := ToSlice(a.Shelf()), ToSlice(b.Shelf())
		for i := 0; i < len(left) && i < len(right); i++ {
			order, err := Compare(left[i], right[i])
			if err != nil {
				return OrderEqual, err
			}
			if order != OrderEqual {
				return order, nil
			}
		}
		return Ordering(cmp.Compare(len(left), len(right))), nil
	default:
		return OrderEqual, typeMismatch("%s values have no ordering", a.kind)
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Equivalent is structural equality. Unlike Equal it descends into boxes,
// instance bindings and yarn ball exports, so a decoded copy of a box is
// Equivalent to the original.
func Equivalent(a, b Value) bool {
	return (&equivalence{seen: make(map[[2]any]struct{})}).equal(a, b)
}

type equivalence struct {
	seen map[[2]any]struct{}
}

func (e *equivalence) equal(a, b Value) bool {
	if a.IsNothing() || b.IsNothing() {
		return a.IsNothing() && b.IsNothing()
	}
	left, leftOK := e.fields(a)
	right, rightOK := e.fields(b)
	if leftOK && rightOK {
		pair := [2]any{a.data, b.data}
		if _, ok := e.seen[pair]; ok {
			return true
		}
		e.seen[pair] = struct{}{}
		if left.Len() != right.Len() {
			return false
		}
		for _, key := range left.Keys() {
			if !right.Has(key) || !e.equal(left.Get(key), right.Get(key)) {
				return false
			}
		}
		return true
	}
	if a.kind == KindShelf && b.kind == KindShelf {
		x, y := a.Shelf(), b.Shelf()
		for x != nil && y != nil {
			if !e.equal(x.head, y.head) {
				return false
			}
			x, y = x.tail, y.tail
		}
		return x == nil && y == nil
	}
	return Equal(a, b)
}

func (e *equivalence) fields(v Value) (*Box, bool) {
	switch v.kind {
	case KindBox:
		return v.Box(), true
	case KindInstance:
		return v.Instance().Bindings(), true
	case KindYarnBall:
		box, err := v.YarnBall().snapshot()
		return box, err == nil
	default:
		return nil, false
	}
}
