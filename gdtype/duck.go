package gdtype

// DuckMethod is a required method signature collected from call sites
// on a variable with no declared type.
type DuckMethod struct {
	Name  string
	Arity int
}

// DuckProperty is a required property, with the type inferred from how
// it's used (assignment target, comparison, etc.) where possible.
type DuckProperty struct {
	Name         string
	InferredType string
}

// DuckType is the set of constraints inferred for an untyped variable
// by observing every member/method access performed on it (spec
// §4.4). It grows monotonically as the flow engine walks a method
// body; it never shrinks.
type DuckType struct {
	Methods    map[string]DuckMethod
	Properties map[string]DuckProperty
	Signals    map[string]bool
}

// NewDuckType returns an empty constraint set.
func NewDuckType() *DuckType {
	return &DuckType{
		Methods:    make(map[string]DuckMethod),
		Properties: make(map[string]DuckProperty),
		Signals:    make(map[string]bool),
	}
}

// RequireMethod records that name must be callable with arity args.
func (d *DuckType) RequireMethod(name string, arity int) {
	d.Methods[name] = DuckMethod{Name: name, Arity: arity}
}

// RequireProperty records that name must be readable/writable, with an
// optional inferred type ("" if unknown).
func (d *DuckType) RequireProperty(name, inferredType string) {
	if existing, ok := d.Properties[name]; ok && existing.InferredType != "" {
		return // first inference wins; don't downgrade to unknown
	}
	d.Properties[name] = DuckProperty{Name: name, InferredType: inferredType}
}

// RequireSignal records that name must be a signal on the value.
func (d *DuckType) RequireSignal(name string) {
	d.Signals[name] = true
}

// HasMethod reports whether m (with the given arity) is already a
// required constraint — used by the redundant-guard validator (GD7012)
// to detect a `has_method` check that's already implied.
func (d *DuckType) HasMethod(name string, arity int) bool {
	m, ok := d.Methods[name]
	return ok && m.Arity == arity
}

// Clone returns a deep copy, used when forking flow state across a
// branch.
func (d *DuckType) Clone() *DuckType {
	out := NewDuckType()
	for k, v := range d.Methods {
		out.Methods[k] = v
	}
	for k, v := range d.Properties {
		out.Properties[k] = v
	}
	for k := range d.Signals {
		out.Signals[k] = true
	}
	return out
}

// Intersect returns the constraints present in both d and other,
// matching the join rule "duck constraints intersect" (spec §4.4).
func (d *DuckType) Intersect(other *DuckType) *DuckType {
	out := NewDuckType()
	for name, m := range d.Methods {
		if om, ok := other.Methods[name]; ok && om.Arity == m.Arity {
			out.Methods[name] = m
		}
	}
	for name, p := range d.Properties {
		if _, ok := other.Properties[name]; ok {
			out.Properties[name] = p
		}
	}
	for name := range d.Signals {
		if other.Signals[name] {
			out.Signals[name] = true
		}
	}
	return out
}
