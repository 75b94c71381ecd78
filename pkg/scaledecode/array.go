package scaledecode

// Array is handed to Visitor.VisitArray: like Sequence, but its length
// is known upfront from the type (no length prefix on the wire).
type Array struct {
	r         *reader
	reg       Resolver
	elem      TypeID
	remaining int
	idx       int
}

func newArray(r *reader, reg Resolver, elem TypeID, length int) *Array {
	return &Array{r: r, reg: reg, elem: elem, remaining: length}
}

// Len returns the number of elements not yet decoded.
func (a *Array) Len() int {
	return a.remaining
}

// DecodeArrayItem decodes the next element with the given visitor.
// Returns ok=false once the array is exhausted.
func DecodeArrayItem[T any](a *Array, v Visitor[T]) (value T, ok bool, err error) {
	if a.remaining == 0 {
		return value, false, nil
	}
	idx := a.idx
	val, derr := decodeWithVisitor(a.r, a.elem, a.reg, v)
	a.idx++
	a.remaining--
	if derr != nil {
		return value, true, atIndex(a.r.Offset(), derr, idx)
	}
	return val, true, nil
}

func (a *Array) drain() error {
	for {
		_, ok, err := DecodeArrayItem[struct{}](a, IgnoreVisitor{})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
