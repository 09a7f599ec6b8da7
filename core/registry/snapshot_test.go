package registry

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weftlang/weft/core/types"
)

func testDefinition(name string) types.Definition {
	return types.NewDefinition(name, "1.0.0").
		Description("test decorator").
		Instruction("Do the thing.").
		Build()
}

func TestBuildAndLookup(t *testing.T) {
	snap, err := Build([]types.Definition{testDefinition("Tone"), testDefinition("ELI5")})
	if err != nil {
		t.Fatalf("Build() = %v, want nil", err)
	}

	def, ok := snap.Lookup("Tone")
	if !ok {
		t.Fatal("Lookup(Tone) should find the definition")
	}
	if def.Name != "Tone" {
		t.Errorf("Lookup(Tone).Name = %q, want %q", def.Name, "Tone")
	}

	if _, ok := snap.Lookup("tone"); ok {
		t.Error("Lookup should be case-sensitive")
	}
	if _, ok := snap.Lookup("Missing"); ok {
		t.Error("Lookup should miss on unknown names")
	}
}

func TestBuildRejectsDuplicates(t *testing.T) {
	_, err := Build([]types.Definition{testDefinition("Tone"), testDefinition("Tone")})
	if err == nil {
		t.Error("Build() should reject duplicate names")
	}
}

func TestBuildRejectsInvalidDefinition(t *testing.T) {
	bad := testDefinition("Tone")
	bad.Version = "nope"
	if _, err := Build([]types.Definition{bad}); err == nil {
		t.Error("Build() should reject an invalid definition")
	}
}

func TestNamesAreSorted(t *testing.T) {
	snap, err := Build([]types.Definition{
		testDefinition("Zebra"), testDefinition("Alpha"), testDefinition("Mango"),
	})
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	want := []string{"Alpha", "Mango", "Zebra"}
	if diff := cmp.Diff(want, snap.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestListExportsParameterMetadata(t *testing.T) {
	def := types.NewDefinition("Tone", "1.2.0").
		Description("Adjusts tone").
		Category("tone").
		Instruction("Adjust tone.").
		ParamEnum("style", "Desired tone", "formal", "casual").
		Required().
		Done().
		Build()

	snap, err := Build([]types.Definition{def})
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	want := []Summary{{
		Name:        "Tone",
		Version:     "1.2.0",
		Category:    "tone",
		Description: "Adjusts tone",
		Parameters: []ParamSummary{{
			Name:        "style",
			Type:        "enum",
			Description: "Desired tone",
			Required:    true,
			Allowed:     []string{"formal", "casual"},
		}},
	}}
	if diff := cmp.Diff(want, snap.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSwapIsAtomic(t *testing.T) {
	first, err := Build([]types.Definition{testDefinition("Tone")})
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	second, err := Build([]types.Definition{testDefinition("Tone"), testDefinition("ELI5")})
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}

	store := NewStore(first)

	// Concurrent readers must always see a complete snapshot: either one
	// definition or two, never an intermediate count.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				snap := store.Snapshot()
				if n := snap.Len(); n != 1 && n != 2 {
					t.Errorf("observed torn snapshot with %d definitions", n)
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			store.Swap(second)
			store.Swap(first)
		}
	}()

	wg.Wait()

	prev := store.Swap(second)
	if prev.Len() != 1 {
		t.Errorf("Swap should return the previous snapshot, got %d definitions", prev.Len())
	}
	if store.Snapshot().Len() != 2 {
		t.Errorf("Snapshot after swap should have 2 definitions, got %d", store.Snapshot().Len())
	}
}
