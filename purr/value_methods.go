package purr

import (
	"fmt"
	"math"
)

func (k ValueKind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindUndefined:
		return "undefined"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindShelf:
		return "shelf"
	case KindBox:
		return "box"
	case KindFunction:
		return "function"
	case KindClowder:
		return "clowder"
	case KindInstance:
		return "clowder instance"
	case KindYarnBall:
		return "yarn ball"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TypeOf returns the language-level type tag of v. Both absent sentinels
// report "nothing" and yarn balls report "box".
func TypeOf(v Value) string {
	switch v.kind {
	case KindNothing, KindUndefined:
		return "nothing"
	case KindYarnBall:
		return "box"
	default:
		return v.kind.String()
	}
}

func (v Value) String() string { return Purrify(v) }

func (v Value) Truthy() bool {
	switch v.kind {
	case KindNothing, KindUndefined:
		return false
	case KindBool:
		return v.Bool()
	case KindNumber:
		n := v.Number()
		return n != 0 && !math.IsNaN(n)
	case KindString:
		return v.Text() != ""
	default:
		return true
	}
}
