package purr

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strings"
)

// DefaultMaxJSONPayloadBytes bounds encoded and decoded text.
const DefaultMaxJSONPayloadBytes = 1 << 20

// circularMarker replaces a box or instance that is already being encoded
// further up the current path.
const circularMarker = "[Circular]"

// Codec converts values to and from JSON text.
type Codec struct {
	MaxPayloadBytes int
}

var defaultCodec = Codec{MaxPayloadBytes: DefaultMaxJSONPayloadBytes}

func Encode(v Value) (string, error) { return defaultCodec.Encode(v) }

func Decode(text string) (Value, error) { return defaultCodec.Decode(text) }

func (c Codec) limit() int {
	if c.MaxPayloadBytes <= 0 {
		return DefaultMaxJSONPayloadBytes
	}
	return c.MaxPayloadBytes
}

// Encode renders v as JSON. Shelves become arrays in array order, boxes and
// instances become objects in key insertion order. Functions and clowders
// cannot be encoded.
func (c Codec) Encode(v Value) (string, error) {
	state := &jsonEncodeState{active: make(map[any]struct{})}
	if err := state.encode(v); err != nil {
		return "", err
	}
	if state.buf.Len() > c.limit() {
		return "", badConversion("encoded JSON exceeds limit %d bytes", c.limit())
	}
	return state.buf.String(), nil
}

type jsonEncodeState struct {
	buf    bytes.Buffer
	active map[any]struct{}
}

func (s *jsonEncodeState) encode(v Value) error {
	switch v.kind {
	case KindNothing, KindUndefined:
		s.buf.WriteString("null")
	case KindBool:
		if v.Bool() {
			s.buf.WriteString("true")
		} else {
			s.buf.WriteString("false")
		}
	case KindNumber:
		n := v.Number()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			s.buf.WriteString("null")
			return nil
		}
		encoded, err := json.Marshal(n)
		if err != nil {
			return badConversion("cannot encode number: %v", err)
		}
		s.buf.Write(encoded)
	case KindString:
		return s.writeString(v.Text())
	case KindShelf:
		s.buf.WriteByte('[')
		for i, item := range ToSlice(v.Shelf()) {
			if i > 0 {
				s.buf.WriteByte(',')
			}
			if err := s.encode(item); err != nil {
				return err
			}
		}
		s.buf.WriteByte(']')
	case KindBox:
		return s.encodeObject(v.Box(), v.Box())
	case KindInstance:
		inst := v.Instance()
		return s.encodeObject(inst.core, inst.Bindings())
	case KindYarnBall:
		ball := v.YarnBall()
		if _, seen := s.active[ball]; seen {
			return s.writeString(circularMarker)
		}
		box, err := ball.snapshot()
		if err != nil {
			return err
		}
		s.active[ball] = struct{}{}
		defer delete(s.active, ball)
		return s.encodeObject(box, box)
	default:
		return typeMismatch("cannot encode %s as JSON", v.kind)
	}
	return nil
}

func (s *jsonEncodeState) encodeObject(identity any, box *Box) error {
	if _, seen := s.active[identity]; seen {
		return s.writeString(circularMarker)
	}
	s.active[identity] = struct{}{}
	defer delete(s.active, identity)

	s.buf.WriteByte('{')
	first := true
	for key, item := range box.All() {
		if !first {
			s.buf.WriteByte(',')
		}
		first = false
		if err := s.writeString(key); err != nil {
			return err
		}
		s.buf.WriteByte(':')
		if err := s.encode(item); err != nil {
			return err
		}
	}
	s.buf.WriteByte('}')
	return nil
}

func (s *jsonEncodeState) writeString(str string) error {
	enc := json.NewEncoder(&s.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(str); err != nil {
		return badConversion("cannot encode string: %v", err)
	}
	s.buf.Truncate(s.buf.Len() - 1)
	return nil
}

// Decode parses JSON text. Arrays become shelves, objects become boxes that
// keep the text's key order, and null becomes nothing.
func (c Codec) Decode(text string) (Value, error) {
	if len(text) > c.limit() {
		return Nothing, badConversion("JSON input exceeds limit %d bytes", c.limit())
	}
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	value, err := decodeJSONValue(decoder)
	if err != nil {
		return Nothing, badConversion("invalid JSON: %v", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return Nothing, badConversion("invalid JSON: trailing data")
	}
	return value, nil
}

func decodeJSONValue(decoder *json.Decoder) (Value, error) {
	tok, err := decoder.Token()
	if err != nil {
		return Nothing, err
	}
	switch t := tok.(type) {
	case nil:
		return Nothing, nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Nothing, err
		}
		return NewNumber(f), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for decoder.More() {
				item, err := decodeJSONValue(decoder)
				if err != nil {
					return Nothing, err
				}
				items = append(items, item)
			}
			if _, err := decoder.Token(); err != nil {
				return Nothing, err
			}
			return ShelfOf(items...), nil
		case '{':
			box := NewBox()
			for decoder.More() {
				keyTok, err := decoder.Token()
				if err != nil {
					return Nothing, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Nothing, badConversion("object key %v is not a string", keyTok)
				}
				item, err := decodeJSONValue(decoder)
				if err != nil {
					return Nothing, err
				}
				box.Set(key, item)
			}
			if _, err := decoder.Token(); err != nil {
				return Nothing, err
			}
			return NewBoxValue(box), nil
		}
	}
	return Nothing, badConversion("unexpected JSON token %v", tok)
}
