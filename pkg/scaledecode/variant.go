package scaledecode

// Variant is handed to Visitor.VisitVariant: the discriminant has
// already been read off the wire by the time the visitor sees it;
// Fields() exposes the selected variant's fields as a Composite.
type Variant struct {
	index  uint8
	name   string
	fields *Composite
}

func newVariant(index uint8, name string, fields *Composite) *Variant {
	return &Variant{index: index, name: name, fields: fields}
}

// Index is the 1-byte discriminant read from the wire.
func (v *Variant) Index() uint8 {
	return v.index
}

// Name is the resolver-reported name of the selected variant.
func (v *Variant) Name() string {
	return v.name
}

// Fields exposes the selected variant's fields for decoding.
func (v *Variant) Fields() *Composite {
	return v.fields
}

func (v *Variant) drain() error {
	if err := v.fields.drain(); err != nil {
		return atVariant(v.fields.r.Offset(), err, v.name)
	}
	return nil
}
