package purr

func (v Value) Kind() ValueKind { return v.kind }

// IsNothing reports whether v is either absent sentinel.
func (v Value) IsNothing() bool { return v.kind == KindNothing || v.kind == KindUndefined }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.data.(float64)
	}
	return 0
}

func (v Value) Text() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

func (v Value) Shelf() *Shelf {
	if v.kind != KindShelf {
		return nil
	}
	return v.data.(*Shelf)
}

func (v Value) Box() *Box {
	if v.kind != KindBox {
		return nil
	}
	return v.data.(*Box)
}

func (v Value) Function() *Function {
	if v.kind != KindFunction {
		return nil
	}
	return v.data.(*Function)
}

func (v Value) Clowder() *Clowder {
	if v.kind != KindClowder {
		return nil
	}
	return v.data.(*Clowder)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

func (v Value) YarnBall() *YarnBall {
	if v.kind != KindYarnBall {
		return nil
	}
	return v.data.(*YarnBall)
}
