package env

import "testing"

func TestGetIsCaseInsensitive(t *testing.T) {
	m := New().Set("Foo", "v")
	if v, ok := m.Get("FOO"); !ok || v != "v" {
		t.Fatalf("expected case-insensitive get to find %q, got %q (ok=%v)", "v", v, ok)
	}
}

func TestCloneIsCopyOnWrite(t *testing.T) {
	base := New().Set("A", "1")
	clone := base.Clone()

	clone.Set("A", "2")
	if v, _ := base.Get("A"); v != "1" {
		t.Fatalf("mutating clone affected original: got %q", v)
	}

	base.Set("B", "x")
	if _, ok := clone.Get("B"); ok {
		t.Fatalf("mutating original affected clone")
	}
}

func TestIterationOrderStableAcrossClone(t *testing.T) {
	base := New().Set("A", "1").Set("B", "2").Set("C", "3")
	clone := base.Clone()

	var baseNames, cloneNames []string
	base.Each(func(name, _ string) { baseNames = append(baseNames, name) })
	clone.Each(func(name, _ string) { cloneNames = append(cloneNames, name) })

	if len(baseNames) != len(cloneNames) {
		t.Fatalf("length mismatch: %v vs %v", baseNames, cloneNames)
	}
	for i := range baseNames {
		if baseNames[i] != cloneNames[i] {
			t.Fatalf("order mismatch at %d: %v vs %v", i, baseNames, cloneNames)
		}
	}
}

func TestPrependAndAppendPath(t *testing.T) {
	m := New().Set("PATH", "b")
	m.PrependPath("PATH", "a")
	m.AppendPath("PATH", "c")
	v, _ := m.Get("PATH")
	if v != "a"+pathSeparator()+"b"+pathSeparator()+"c" {
		t.Fatalf("unexpected PATH value: %q", v)
	}
}
