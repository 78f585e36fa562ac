package ecs

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/viewpoint/ecs/component"
)

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)
				e4 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, intPtr(3)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kc, intPtr(5)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, intPtr(4)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e4, kc, intPtr(6)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].Slot() != e2.Slot() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kc, intPtr(3)); err != nil {
					t.Fatal(err)
				}

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "no_common",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected no common entities, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if res != nil && len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
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
			dead := ents[c.destroyIndex]
			if !DestroyEntity(w, dead) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, dead) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, dead) {
				t.Fatalf("second DestroyEntity should report false")
			}

			reused := CreateEntity(w)
			if reused.Slot() != dead.Slot() {
				t.Fatalf("expected slot %d to be reused, got %d", dead.Slot(), reused.Slot())
			}
			if reused == dead || IsAlive(w, dead) {
				t.Fatalf("stale handle %v must not resolve after slot reuse", dead)
			}
		})
	}
}

func TestDestroyRemovesComponents(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	e := CreateEntity(w)
	if err := Add(w, e, kind, intPtr(7)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, e)

	reused := CreateEntity(w)
	if Has(w, reused, kind) {
		t.Fatalf("reused slot inherited a component from a destroyed entity")
	}
	err := Add(w, e, kind, intPtr(1))
	if !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
	if want := kind.String() + ": " + component.ErrEntityNotAlive.Error(); err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
	if !strings.HasPrefix(kind.String(), "int#") {
		t.Fatalf("kind should be named after its value type, got %q", kind.String())
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("b"))

	got := Query(w, ka, kb)
	if len(got) != 1 || got[0] != e2 {
		t.Fatalf("expected [e2], got %v", got)
	}

	first, ok := First(w, kb)
	if !ok || first != e2 {
		t.Fatalf("expected First to return e2, got %v ok=%v", first, ok)
	}

	DestroyEntity(w, e2)
	if _, ok := First(w, kb); ok {
		t.Fatalf("First should skip destroyed entities")
	}
}

func TestForEachAllowsDestroy(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	for i := 0; i < 4; i++ {
		_ = Add(w, CreateEntity(w), kind, intPtr(i))
	}

	visited := 0
	ForEach(w, kind, func(e Entity, _ *int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if len(Entities(w)) != 0 {
		t.Fatalf("expected all entities destroyed")
	}
}

type recordingSystem struct {
	seen []int
}

func (r *recordingSystem) Update(w *World) {
	r.seen = append(r.seen, len(w.Events().Peek()))
	w.Events().Push(Event{Type: "tick"})
}

func TestWorldUpdateEventLifetime(t *testing.T) {
	w := NewWorld()
	rec := &recordingSystem{}
	w.AddSystem(rec)
	w.AddSystem(nil)

	w.Update()
	if got := len(w.Events().Peek()); got != 1 {
		t.Fatalf("event pushed this frame should be readable after Update, got %d", got)
	}
	w.Update()
	if rec.seen[1] != 0 {
		t.Fatalf("previous frame events should be discarded before systems run")
	}
	if w.Frame() != 2 {
		t.Fatalf("expected frame 2, got %d", w.Frame())
	}
}

func TestDeltaTime(t *testing.T) {
	w := NewWorld()
	if w.DeltaTime() != DefaultDeltaTime {
		t.Fatalf("expected default delta")
	}
	w.SetDeltaTime(0)
	w.SetDeltaTime(-1)
	if w.DeltaTime() != DefaultDeltaTime {
		t.Fatalf("non-positive deltas should be ignored")
	}
	w.SetDeltaTime(0.5)
	if w.DeltaTime() != 0.5 {
		t.Fatalf("expected 0.5, got %v", w.DeltaTime())
	}
}

func TestEntityHandleFormatting(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if got := e.String(); got != "1v0" {
		t.Fatalf("expected 1v0, got %q", got)
	}
	DestroyEntity(w, e)
	reused := CreateEntity(w)
	if reused.Generation() != e.Generation()+1 {
		t.Fatalf("expected generation %d, got %d", e.Generation()+1, reused.Generation())
	}
	if got := reused.String(); got != "1v1" {
		t.Fatalf("expected 1v1, got %q", got)
	}
	if got := Entity(0).String(); got != "none" {
		t.Fatalf("expected none for the zero handle, got %q", got)
	}
}

type namedSystem struct {
	name string
	log  *[]string
}

func (n namedSystem) Update(*World) {
	*n.log = append(*n.log, n.name)
}

func TestSystemsRunByStage(t *testing.T) {
	var ran []string
	w := NewWorld()
	w.AddSystemAt(StageFollow, namedSystem{"follow", &ran})
	w.AddSystemAt(StageInput, namedSystem{"input", &ran})
	w.AddSystem(namedSystem{"walk", &ran})
	w.AddSystemAt(StageLate, namedSystem{"audio", &ran})
	w.AddSystemAt(StageSimulate, namedSystem{"chase", &ran})
	w.AddSystemAt(StageInput, nil)

	if got := len(w.Systems()); got != 5 {
		t.Fatalf("expected 5 systems, got %d", got)
	}
	w.Update()
	want := []string{"input", "walk", "chase", "follow", "audio"}
	if len(ran) != len(want) {
		t.Fatalf("expected %v, got %v", want, ran)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ran)
		}
	}
}
