package purr

import (
	"math"
	"strconv"
	"strings"
)

// Purrify renders v for humans. Strings print raw at the top level and
// quoted inside containers. A box or instance that contains itself prints
// "<circular>" where the loop closes.
func Purrify(v Value) string {
	state := purrifyState{active: make(map[any]struct{})}
	var b strings.Builder
	state.write(&b, v, false)
	return b.String()
}

type purrifyState struct {
	active map[any]struct{}
}

func (s *purrifyState) write(b *strings.Builder, v Value, nested bool) {
	switch v.kind {
	case KindNothing, KindUndefined:
		b.WriteString("nothing")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case KindNumber:
		b.WriteString(FormatNumber(v.Number()))
	case KindString:
		if nested {
			b.WriteString(strconv.Quote(v.Text()))
		} else {
			b.WriteString(v.Text())
		}
	case KindShelf:
		b.WriteByte('[')
		for i, item := range ToSlice(v.Shelf()) {
			if i > 0 {
				b.WriteString(", ")
			}
			s.write(b, item, true)
		}
		b.WriteByte(']')
	case KindBox:
		s.writeFields(b, v.Box(), v.Box())
	case KindInstance:
		inst := v.Instance()
		b.WriteString(inst.Self().template.Name)
		b.WriteByte(' ')
		s.writeFields(b, inst.core, inst.Bindings())
	case KindFunction:
		b.WriteString("<function " + v.Function().Name + ">")
	case KindClowder:
		b.WriteString("<clowder " + v.Clowder().Name + ">")
	case KindYarnBall:
		b.WriteString("<yarn ball " + v.YarnBall().Name + ">")
	default:
		b.WriteString("<" + v.kind.String() + ">")
	}
}

func (s *purrifyState) writeFields(b *strings.Builder, identity any, box *Box) {
	if _, seen := s.active[identity]; seen {
		b.WriteString("<circular>")
		return
	}
	s.active[identity] = struct{}{}
	defer delete(s.active, identity)

	b.WriteByte('{')
	first := true
	for key, item := range box.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(key)
		b.WriteString(": ")
		s.write(b, item, true)
	}
	b.WriteByte('}')
}

// FormatNumber prints integral numbers without a fraction and large or tiny
// magnitudes in exponent form.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if abs < 1e-6 || abs >= 1e21 {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
