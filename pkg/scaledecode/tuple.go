package scaledecode

// Tuple is handed to Visitor.VisitTuple: like Array, but each position
// may carry a distinct element type and positions are unnamed.
type Tuple struct {
	r      *reader
	reg    Resolver
	fields []TypeID
	idx    int
}

func newTuple(r *reader, reg Resolver, fields []TypeID) *Tuple {
	return &Tuple{r: r, reg: reg, fields: fields}
}

// Len returns the number of positions not yet decoded.
func (t *Tuple) Len() int {
	return len(t.fields)
}

// DecodeTupleItem decodes the next position with the given visitor.
// Returns ok=false once the tuple is exhausted.
func DecodeTupleItem[T any](t *Tuple, v Visitor[T]) (value T, ok bool, err error) {
	if len(t.fields) == 0 {
		return value, false, nil
	}
	id := t.fields[0]
	idx := t.idx
	val, derr := decodeWithVisitor(t.r, id, t.reg, v)
	t.fields = t.fields[1:]
	t.idx++
	if derr != nil {
		return value, true, atTuple(t.r.Offset(), derr, idx)
	}
	return val, true, nil
}

func (t *Tuple) drain() error {
	for {
		_, ok, err := DecodeTupleItem[struct{}](t, IgnoreVisitor{})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
