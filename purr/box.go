package purr

import "iter"

// Box is a mutable record with unique string keys. Keys keep their insertion
// order for iteration; overwriting a key does not move it.
type Box struct {
	keys   []string
	values map[string]Value
}

type Pair struct {
	Key   string
	Value Value
}

func NewBox(pairs ...Pair) *Box {
	b := &Box{values: make(map[string]Value, len(pairs))}
	for _, p := range pairs {
		b.Set(p.Key, p.Value)
	}
	return b
}

// BoxOf is a shorthand for a box value, e.g.
// BoxOf(Pair{"name", NewString("jake")}).
func BoxOf(pairs ...Pair) Value {
	return NewBoxValue(NewBox(pairs...))
}

// Get returns the value stored at key, or nothing.
func (b *Box) Get(key string) Value {
	if v, ok := b.values[key]; ok {
		return v
	}
	return Nothing
}

func (b *Box) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

func (b *Box) Set(key string, value Value) {
	if b.values == nil {
		b.values = make(map[string]Value)
	}
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

func (b *Box) Len() int { return len(b.keys) }

// Keys returns a copy of the keys in insertion order.
func (b *Box) Keys() []string {
	return append([]string(nil), b.keys...)
}

func (b *Box) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range b.keys {
			if !yield(key, b.values[key]) {
				return
			}
		}
	}
}

// Pairs returns a shelf of {key, value} boxes in insertion order, the last
// inserted key on top.
func (b *Box) Pairs() *Shelf {
	var s *Shelf
	for key, value := range b.All() {
		s = Push(BoxOf(Pair{"key", NewString(key)}, Pair{"value", value}), s)
	}
	return s
}
