// table_test.go
package norem

import "testing"

func sampleTable(t *testing.T) *ConsTable {
	t.Helper()
	prog := mustParse(t, `
begin
  data List[T] = Cons(T, List[T]) | Nil end
  data Pair[A, B] = MkPair(A, B) end
in
  0;
end
`)
	return prog.Table
}

func Test_Table_Lookup(t *testing.T) {
	table := sampleTable(t)
	desc, ok := table.LookupConstructor("Cons")
	if !ok {
		t.Fatalf("Cons not found")
	}
	if desc.TypeName != "List" || desc.Arity != 2 {
		t.Fatalf("Cons desc = %+v", desc)
	}
	nilDesc, ok := table.LookupConstructor("Nil")
	if !ok || nilDesc.Arity != 0 {
		t.Fatalf("Nil desc = %+v ok=%v", nilDesc, ok)
	}
	if _, ok := table.LookupConstructor("Snoc"); ok {
		t.Fatalf("Snoc should not resolve")
	}
}

func Test_Table_ConstructorsOf(t *testing.T) {
	table := sampleTable(t)
	ctors := table.ConstructorsOf("List")
	if len(ctors) != 2 || ctors[0].Name != "Cons" || ctors[1].Name != "Nil" {
		t.Fatalf("ConstructorsOf(List) = %+v", ctors)
	}
	if got := table.ConstructorsOf("Missing"); got != nil {
		t.Fatalf("ConstructorsOf(Missing) = %+v", got)
	}
}

func Test_Table_IsConstructor(t *testing.T) {
	table := sampleTable(t)
	if !table.IsConstructor("MkPair") || table.IsConstructor("mkpair") {
		t.Fatalf("IsConstructor is not exact-name")
	}
}

func Test_Table_DuplicateWithinOneType(t *testing.T) {
	_, err := Parse(`
begin
  data Twice = Mk | Mk end
in
  0;
end
`)
	if _, ok := err.(*DuplicateConstructorError); !ok {
		t.Fatalf("want *DuplicateConstructorError, got %T: %v", err, err)
	}
}
