// table.go: the constructor table built from `data` declarations.
package norem

// ConsDesc describes one declared constructor: its name, the data type that
// owns it, and how many fields a value built with it carries.
type ConsDesc struct {
	Name     string
	TypeName string
	Arity    int
}

// ConsTable resolves constructor names process-wide. It is built once, before
// evaluation, and never mutated afterwards. Constructor names are unique
// across all declared data types.
type ConsTable struct {
	byName map[string]*ConsDesc
	byType map[string][]*ConsDesc
}

// BuildConsTable scans all data declarations and registers their
// constructors. A constructor name reused anywhere yields a
// *DuplicateConstructorError.
func BuildConsTable(datas []*DataDecl) (*ConsTable, error) {
	t := &ConsTable{
		byName: map[string]*ConsDesc{},
		byType: map[string][]*ConsDesc{},
	}
	for _, d := range datas {
		for _, c := range d.Ctors {
			if prev, ok := t.byName[c.Name]; ok {
				return nil, &DuplicateConstructorError{
					Name:     c.Name,
					TypeName: d.Name,
					Prev:     prev.TypeName,
					Line:     c.Pos_.Line,
					Col:      c.Pos_.Col,
				}
			}
			desc := &ConsDesc{Name: c.Name, TypeName: d.Name, Arity: len(c.Fields)}
			t.byName[c.Name] = desc
			t.byType[d.Name] = append(t.byType[d.Name], desc)
		}
	}
	return t, nil
}

// LookupConstructor resolves a constructor by name.
func (t *ConsTable) LookupConstructor(name string) (*ConsDesc, bool) {
	d, ok := t.byName[name]
	return d, ok
}

// ConstructorsOf returns the constructors of a data type in declaration
// order, or nil for an unknown type.
func (t *ConsTable) ConstructorsOf(typeName string) []*ConsDesc {
	return t.byType[typeName]
}

// IsConstructor reports whether name is a registered constructor. Pattern and
// expression name resolution is constructor-first: a name in the table is a
// constructor, anything else is a variable.
func (t *ConsTable) IsConstructor(name string) bool {
	_, ok := t.byName[name]
	return ok
}
