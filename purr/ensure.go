package purr

func ensureKind(v Value, want ValueKind) error {
	if v.kind == want {
		return nil
	}
	return typeMismatch("expected %s, got %s", want, TypeOf(v))
}

func EnsureNumber(v Value) (float64, error) {
	if err := ensureKind(v, KindNumber); err != nil {
		return 0, err
	}
	return v.Number(), nil
}

func EnsureString(v Value) (string, error) {
	if err := ensureKind(v, KindString); err != nil {
		return "", err
	}
	return v.Text(), nil
}

func EnsureBool(v Value) (bool, error) {
	if err := ensureKind(v, KindBool); err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func EnsureShelf(v Value) (*Shelf, error) {
	if err := ensureKind(v, KindShelf); err != nil {
		return nil, err
	}
	return v.Shelf(), nil
}

func EnsureBox(v Value) (*Box, error) {
	if err := ensureKind(v, KindBox); err != nil {
		return nil, err
	}
	return v.Box(), nil
}

func EnsureFunction(v Value) (*Function, error) {
	if err := ensureKind(v, KindFunction); err != nil {
		return nil, err
	}
	return v.Function(), nil
}

func EnsureClowder(v Value) (*Clowder, error) {
	if err := ensureKind(v, KindClowder); err != nil {
		return nil, err
	}
	return v.Clowder(), nil
}

func EnsureInstance(v Value) (*Instance, error) {
	if err := ensureKind(v, KindInstance); err != nil {
		return nil, err
	}
	return v.Instance(), nil
}
