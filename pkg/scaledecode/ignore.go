package scaledecode

// IgnoreVisitor accepts every shape, produces nothing, and advances
// the reader past whatever it's handed. It is the drain strategy every
// compound handle falls back to when the caller abandons iteration
// early, and it doubles as the idiomatic way to skip a field a struct
// visitor doesn't care about.
type IgnoreVisitor struct{}

func (IgnoreVisitor) VisitBool(bool, TypeID) (struct{}, error)     { return struct{}{}, nil }
func (IgnoreVisitor) VisitChar(rune, TypeID) (struct{}, error)     { return struct{}{}, nil }
func (IgnoreVisitor) VisitU8(uint8, TypeID) (struct{}, error)      { return struct{}{}, nil }
func (IgnoreVisitor) VisitU16(uint16, TypeID) (struct{}, error)    { return struct{}{}, nil }
func (IgnoreVisitor) VisitU32(uint32, TypeID) (struct{}, error)    { return struct{}{}, nil }
func (IgnoreVisitor) VisitU64(uint64, TypeID) (struct{}, error)    { return struct{}{}, nil }
func (IgnoreVisitor) VisitU128([16]byte, TypeID) (struct{}, error) { return struct{}{}, nil }
func (IgnoreVisitor) VisitU256([32]byte, TypeID) (struct{}, error) { return struct{}{}, nil }
func (IgnoreVisitor) VisitI8(int8, TypeID) (struct{}, error)       { return struct{}{}, nil }
func (IgnoreVisitor) VisitI16(int16, TypeID) (struct{}, error)     { return struct{}{}, nil }
func (IgnoreVisitor) VisitI32(int32, TypeID) (struct{}, error)     { return struct{}{}, nil }
func (IgnoreVisitor) VisitI64(int64, TypeID) (struct{}, error)     { return struct{}{}, nil }
func (IgnoreVisitor) VisitI128([16]byte, TypeID) (struct{}, error) { return struct{}{}, nil }
func (IgnoreVisitor) VisitI256([32]byte, TypeID) (struct{}, error) { return struct{}{}, nil }

func (IgnoreVisitor) VisitStr(*Str, TypeID) (struct{}, error) { return struct{}{}, nil }

func (IgnoreVisitor) VisitSequence(s *Sequence, _ TypeID) (struct{}, error) {
	return struct{}{}, s.drain()
}

func (IgnoreVisitor) VisitArray(a *Array, _ TypeID) (struct{}, error) {
	return struct{}{}, a.drain()
}

func (IgnoreVisitor) VisitTuple(t *Tuple, _ TypeID) (struct{}, error) {
	return struct{}{}, t.drain()
}

func (IgnoreVisitor) VisitComposite(c *Composite, _ TypeID) (struct{}, error) {
	return struct{}{}, c.drain()
}

func (IgnoreVisitor) VisitVariant(v *Variant, _ TypeID) (struct{}, error) {
	return struct{}{}, v.drain()
}

func (IgnoreVisitor) VisitBitSequence(*BitSequence, TypeID) (struct{}, error) {
	return struct{}{}, nil
}
