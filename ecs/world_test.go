package ecs

import (
	"testing"
	"time"

	"github.com/milk9111/orbitdash/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"destroy_middle_of_three", 3, 1},
		{"no_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for a live entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("destroying twice should return false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh == old {
		t.Fatalf("recycled entity must carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle should not be alive")
	}
	if _, ok := Get(w, fresh, h.Kind()); ok {
		t.Fatalf("recycled entity should not inherit components")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); err == nil {
		t.Fatalf("adding to a stale handle should fail")
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_and_get",
			setup: func() error { return Add(w, e1, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "get_returns_stored_pointer",
			check: func(t *testing.T) {
				v, _ := Get(w, e1, ints.Kind())
				*v = 11
				again, _ := Get(w, e1, ints.Kind())
				if *again != 11 {
					t.Fatalf("writes through Get should stick, got %d", *again)
				}
			},
		},
		{
			name: "kinds_are_independent",
			setup: func() error {
				s := "b"
				return Add(w, e2, strs.Kind(), &s)
			},
			check: func(t *testing.T) {
				if Has(w, e2, ints.Kind()) {
					t.Fatalf("e2 should not have an int")
				}
				if !Has(w, e2, strs.Kind()) {
					t.Fatalf("e2 should have a string")
				}
			},
		},
		{
			name:  "nil_value_rejected",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				if err := Add[int](w, e1, ints.Kind(), nil); err == nil {
					t.Fatalf("expected error for nil component")
				}
			},
		},
		{
			name: "remove",
			check: func(t *testing.T) {
				if !Remove(w, e1, ints.Kind()) {
					t.Fatalf("remove should report true")
				}
				if Has(w, e1, ints.Kind()) {
					t.Fatalf("component still present after remove")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
			}
			tc.check(t)
		})
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	for _, e := range []Entity{e1, e2, e3} {
		if err := Add(w, e, ka, intPtr(1)); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, e2, kb, intPtr(2)); err != nil {
		t.Fatal(err)
	}

	res := Query(w, ka, kb)
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}

	set := toSet(Query(w, ka))
	if len(set) != 3 {
		t.Fatalf("expected three entities with ka, got %v", set)
	}

	first, ok := First(w, kb)
	if !ok || first != e2 {
		t.Fatalf("expected e2 as first kb, got %v ok=%v", first, ok)
	}

	DestroyEntity(w, e2)
	if _, ok := First(w, kb); ok {
		t.Fatalf("First should skip destroyed entities")
	}
	if res := Query(w, component.NewComponentKind[string]()); res != nil {
		t.Fatalf("expected nil for missing store, got %v", res)
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	all := CreateEntity(w)
	three := CreateEntity(w)
	one := CreateEntity(w)
	dead := CreateEntity(w)

	for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
		if err := Add(w, all, k, intPtr(4)); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, dead, k, intPtr(4)); err != nil {
			t.Fatal(err)
		}
	}
	for _, k := range []component.ComponentKind[int]{ka, kb, kc} {
		if err := Add(w, three, k, intPtr(3)); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, one, ka, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, dead)

	var got1, got2, got3, got4 []Entity
	ForEach(w, ka, func(e Entity, _ *int) { got1 = append(got1, e) })
	ForEach2(w, ka, kb, func(e Entity, _, _ *int) { got2 = append(got2, e) })
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { got3 = append(got3, e) })
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { got4 = append(got4, e) })

	if len(got1) != 3 {
		t.Fatalf("ForEach: expected 3, got %v", got1)
	}
	if len(got2) != 2 {
		t.Fatalf("ForEach2: expected 2, got %v", got2)
	}
	if len(got3) != 2 {
		t.Fatalf("ForEach3: expected 2, got %v", got3)
	}
	if len(got4) != 1 || got4[0] != all {
		t.Fatalf("ForEach4: expected only %v, got %v", all, got4)
	}
	if _, ok := toSet(got1)[dead]; ok {
		t.Fatalf("ForEach visited a destroyed entity")
	}
}

func TestDestroyRecursive(t *testing.T) {
	w := NewWorld()
	attach := func(child, parent Entity) {
		t.Helper()
		if err := Add(w, child, component.AttachmentComponent.Kind(), &component.Attachment{Parent: uint64(parent)}); err != nil {
			t.Fatal(err)
		}
	}

	root := CreateEntity(w)
	child := CreateEntity(w)
	grandchild := CreateEntity(w)
	sibling := CreateEntity(w)
	attach(child, root)
	attach(grandchild, child)

	if !DestroyRecursive(w, root) {
		t.Fatalf("DestroyRecursive should report true for a live root")
	}
	for _, e := range []Entity{root, child, grandchild} {
		if IsAlive(w, e) {
			t.Fatalf("%v should be destroyed with its parent", e)
		}
	}
	if !IsAlive(w, sibling) {
		t.Fatalf("unattached entity should survive")
	}
	if DestroyRecursive(w, root) {
		t.Fatalf("destroying a dead root should report false")
	}
}

func TestClock(t *testing.T) {
	w := NewWorld()
	w.Advance(100 * time.Millisecond)
	w.Advance(50 * time.Millisecond)

	now := w.Time()
	if now.Delta != 50*time.Millisecond || now.Elapsed != 150*time.Millisecond || now.Frame != 2 {
		t.Fatalf("unexpected clock %+v", now)
	}
	if now.DeltaSeconds() != 0.05 {
		t.Fatalf("expected 0.05s delta, got %v", now.DeltaSeconds())
	}
}
