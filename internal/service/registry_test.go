package service

import "testing"

// stubDescriptor is the minimal descriptor used by registry tests.
type stubDescriptor struct {
	*Base
	name string
}

func newStub(name string, order int) *stubDescriptor {
	return &stubDescriptor{Base: NewBase(order), name: name}
}

func (s *stubDescriptor) Name() string { return s.name }

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newStub("alpha", 0))
	reg.Register(newStub("alpha", 5))

	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistryAllSortsAndRenumbers(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newStub("third", 20))
	reg.Register(newStub("first", 0))
	reg.Register(newStub("second", 10))

	all := reg.All()
	wantOrder := []string{"first", "second", "third"}
	if len(all) != len(wantOrder) {
		t.Fatalf("All() returned %d descriptors, want %d", len(all), len(wantOrder))
	}
	for i, d := range all {
		if d.Name() != wantOrder[i] {
			t.Errorf("All()[%d].Name() = %q, want %q", i, d.Name(), wantOrder[i])
		}
		if d.ID() != i {
			t.Errorf("All()[%d].ID() = %d, want %d", i, d.ID(), i)
		}
	}
}

func TestRegistryRenumbersAfterGap(t *testing.T) {
	// Sparse sort keys still yield dense zero-based ids.
	reg := NewRegistry()
	reg.Register(newStub("a", 3))
	reg.Register(newStub("b", 100))

	all := reg.All()
	if all[0].ID() != 0 || all[1].ID() != 1 {
		t.Errorf("ids = %d, %d, want 0, 1", all[0].ID(), all[1].ID())
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	reg.Register(newStub("alpha", 0))

	if d := reg.Lookup("alpha"); d == nil || d.Name() != "alpha" {
		t.Errorf("Lookup(alpha) = %v, want the registered descriptor", d)
	}
	if d := reg.Lookup("missing"); d != nil {
		t.Errorf("Lookup(missing) = %v, want nil", d)
	}
}

func TestRegistryFirst(t *testing.T) {
	reg := NewRegistry()
	if reg.First() != nil {
		t.Error("First() on empty registry should be nil")
	}

	reg.Register(newStub("beta", 1))
	reg.Register(newStub("alpha", 0))
	if first := reg.First(); first == nil || first.Name() != "alpha" {
		t.Errorf("First() = %v, want alpha", first)
	}
}
