package scaledecode

// Sequence is handed to Visitor.VisitSequence: a single-pass iterator
// over a SCALE `[T]`'s elements. It holds an exclusive claim on the
// shared reader for its lifetime; nothing outside DecodeSequenceItem
// may advance the cursor while one is live.
type Sequence struct {
	r         *reader
	reg       Resolver
	elem      TypeID
	remaining int
	idx       int
}

func newSequence(r *reader, reg Resolver, elem TypeID, length int) *Sequence {
	return &Sequence{r: r, reg: reg, elem: elem, remaining: length}
}

// Len returns the number of elements not yet decoded.
func (s *Sequence) Len() int {
	return s.remaining
}

// DecodeSequenceItem decodes the next element with the given visitor.
// Returns ok=false once the sequence is exhausted.
func DecodeSequenceItem[T any](s *Sequence, v Visitor[T]) (value T, ok bool, err error) {
	if s.remaining == 0 {
		return value, false, nil
	}
	idx := s.idx
	val, derr := decodeWithVisitor(s.r, s.elem, s.reg, v)
	s.idx++
	s.remaining--
	if derr != nil {
		return value, true, atIndex(s.r.Offset(), derr, idx)
	}
	return val, true, nil
}

func (s *Sequence) drain() error {
	for {
		_, ok, err := DecodeSequenceItem[struct{}](s, IgnoreVisitor{})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
