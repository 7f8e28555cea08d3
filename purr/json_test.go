package purr

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestEncodeBoxWithShelf(t *testing.T) {
	v := BoxOf(
		Pair{"cats", ShelfOf(NewString("jake"), NewString("princess"))},
		Pair{"message", NewString("hello world! :)")},
	)
	got, err := Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"cats":["jake","princess"],"message":"hello world! :)"}`
	if got != want {
		t.Fatalf("unexpected JSON:\n got %s\nwant %s", got, want)
	}
}

func TestEncodeScalars(t *testing.T) {
	cases := []struct {
		in   Value
		want string
	}{
		{Nothing, "null"},
		{Undefined, "null"},
		{True, "true"},
		{NewNumber(3), "3"},
		{NewNumber(2.5), "2.5"},
		{NewNumber(math.NaN()), "null"},
		{NewNumber(math.Inf(-1)), "null"},
		{NewString("<b>\"x\"</b>"), `"<b>\"x\"</b>"`},
		{ShelfOf(), "[]"},
		{BoxOf(), "{}"},
	}
	for _, tc := range cases {
		got, err := Encode(tc.in)
		if err != nil {
			t.Fatalf("encode %s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("encode %s: got %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	values := []Value{
		Nothing,
		False,
		NewNumber(-12.75),
		NewString("jake"),
		ShelfOf(NewNumber(1), ShelfOf(NewString("a")), Nothing),
		BoxOf(
			Pair{"name", NewString("princess")},
			Pair{"friends", ShelfOf(BoxOf(Pair{"name", NewString("jake")}))},
			Pair{"nap", Nothing},
		),
	}
	for _, v := range values {
		text, err := Encode(v)
		if err != nil {
			t.Fatalf("encode %s: %v", v, err)
		}
		back, err := Decode(text)
		if err != nil {
			t.Fatalf("decode %s: %v", text, err)
		}
		if !Equivalent(v, back) {
			t.Fatalf("round trip changed %s into %s", v, back)
		}
	}
}

func TestDecodeKeepsKeyOrder(t *testing.T) {
	v, err := Decode(`{"z":1,"a":[true,null],"m":{"x":"y"}}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	box := v.Box()
	if strings.Join(box.Keys(), ",") != "z,a,m" {
		t.Fatalf("unexpected key order %v", box.Keys())
	}
	arr := ToSlice(box.Get("a").Shelf())
	if len(arr) != 2 || !arr[0].Bool() || !arr[1].IsNothing() {
		t.Fatalf("unexpected array %s", box.Get("a"))
	}
	if box.Get("m").Box().Get("x").Text() != "y" {
		t.Fatalf("nested object not decoded")
	}
}

func TestEncodeSelfReferenceTerminates(t *testing.T) {
	box := NewBox(Pair{"name", NewString("jake")})
	box.Set("self", NewBoxValue(box))
	got, err := Encode(NewBoxValue(box))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != `{"name":"jake","self":"[Circular]"}` {
		t.Fatalf("unexpected JSON %s", got)
	}
}

func TestEncodeSharedBoxIsNotCircular(t *testing.T) {
	shared := BoxOf(Pair{"x", NewNumber(1)})
	got, err := Encode(ShelfOf(shared, shared))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != `[{"x":1},{"x":1}]` {
		t.Fatalf("siblings should both encode, got %s", got)
	}
}

func TestEncodeInstanceBindings(t *testing.T) {
	cat := MustClowder("Cat", nil, map[string]Method{
		"wake": func(self *Instance, args []Value) (Value, error) {
			self.Set("name", argAt(args, 0))
			self.Set("me", NewInstanceValue(self))
			return Nothing, nil
		},
	})
	inst, _ := cat.Wake(NewString("jake"))
	got, err := Encode(NewInstanceValue(inst))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != `{"name":"jake","me":"[Circular]"}` {
		t.Fatalf("unexpected JSON %s", got)
	}
}

func TestEncodeYarnBall(t *testing.T) {
	ball := NewYarnBall("cats", Const("count", NewNumber(2)))
	got, err := Encode(NewYarnBallValue(ball))
	if err != nil || got != `{"count":2}` {
		t.Fatalf("encode yarn ball: %s %v", got, err)
	}
}

func TestEncodeRejectsFunctions(t *testing.T) {
	fn := NewFunction("f", func([]Value) (Value, error) { return Nothing, nil })
	if _, err := Encode(BoxOf(Pair{"f", fn})); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
	if _, err := Encode(NewClowderValue(MustClowder("Cat", nil, nil))); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected TypeMismatch for clowder, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	inputs := []string{``, `{`, `[1,]`, `{"a":1} extra`, `nope`}
	for _, in := range inputs {
		if _, err := Decode(in); !errors.Is(err, ErrBadConversion) {
			t.Fatalf("decode %q: expected BadConversion, got %v", in, err)
		}
	}
}

func TestCodecPayloadLimit(t *testing.T) {
	codec := Codec{MaxPayloadBytes: 8}
	if _, err := codec.Encode(NewString("this is too long")); !errors.Is(err, ErrBadConversion) {
		t.Fatalf("expected BadConversion on encode, got %v", err)
	}
	if _, err := codec.Decode(`"this is too long"`); !errors.Is(err, ErrBadConversion) {
		t.Fatalf("expected BadConversion on decode, got %v", err)
	}
	if got, err := codec.Encode(NewNumber(1)); err != nil || got != "1" {
		t.Fatalf("small payload should pass: %s %v", got, err)
	}
}
