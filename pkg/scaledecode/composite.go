package scaledecode

// Composite is handed to Visitor.VisitComposite: a single-pass iterator
// over a struct-shaped type's fields, named or not. Variant.Fields()
// returns one of these too, over the selected variant's fields.
type Composite struct {
	r          *reader
	reg        Resolver
	fields     []CompositeField
	path       []string
	structName string
	idx        int
}

func newComposite(r *reader, reg Resolver, fields []CompositeField, path []string, structName string) *Composite {
	return &Composite{r: r, reg: reg, fields: fields, path: path, structName: structName}
}

// Len returns the number of fields not yet decoded.
func (c *Composite) Len() int {
	return len(c.fields)
}

// Path is the resolver-reported module path of the type being
// decoded, if the resolver supplies one (may be nil).
func (c *Composite) Path() []string {
	return c.path
}

// StructName is the resolver-reported name of the type being decoded,
// if the resolver supplies one (may be empty). For the Composite that
// Variant.Fields() returns, it is the selected variant's name.
func (c *Composite) StructName() string {
	return c.structName
}

// NextName returns the name of the next field to be decoded, or nil
// if the field is unnamed or the composite is exhausted.
func (c *Composite) NextName() *string {
	if len(c.fields) == 0 {
		return nil
	}
	return c.fields[0].Name
}

// DecodeCompositeItem decodes the next field with the given visitor,
// returning its name (empty if unnamed). ok is false once the
// composite is exhausted.
func DecodeCompositeItem[T any](c *Composite, v Visitor[T]) (value T, name string, ok bool, err error) {
	if len(c.fields) == 0 {
		return value, "", false, nil
	}
	field := c.fields[0]
	idx := c.idx
	if field.Name != nil {
		name = *field.Name
	}
	val, derr := decodeWithVisitor(c.r, field.Type, c.reg, v)
	c.fields = c.fields[1:]
	c.idx++
	if derr != nil {
		if field.Name != nil {
			return value, name, true, atField(c.r.Offset(), derr, *field.Name)
		}
		return value, name, true, atIndex(c.r.Offset(), derr, idx)
	}
	return val, name, true, nil
}

func (c *Composite) drain() error {
	for {
		_, _, ok, err := DecodeCompositeItem[struct{}](c, IgnoreVisitor{})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
