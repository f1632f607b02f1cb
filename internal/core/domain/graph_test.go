package domain_test

import (
	"reflect"
	"testing"

	"go.trai.ch/forge/internal/core/domain"
)

func buildGraph(edges map[string][]string, kinds map[string]domain.FileKind) *domain.Graph {
	g := domain.NewGraph()
	for path, kind := range kinds {
		g.AddNode(path, kind)
	}
	for path, deps := range edges {
		g.SetEdges(path, deps)
	}
	return g
}

func TestGraph_TransitiveUnits_DirectAndIndirect(t *testing.T) {
	// a.c includes h directly, b.c includes h through inner.h, c.c is unrelated.
	g := buildGraph(
		map[string][]string{
			"a.c":     {"h.h"},
			"b.c":     {"inner.h"},
			"inner.h": {"h.h"},
			"c.c":     {"other.h"},
		},
		map[string]domain.FileKind{
			"a.c":     domain.KindUnit,
			"b.c":     domain.KindUnit,
			"c.c":     domain.KindUnit,
			"h.h":     domain.KindHeader,
			"inner.h": domain.KindHeader,
			"other.h": domain.KindHeader,
		},
	)

	got := g.TransitiveUnits([]string{"h.h"})
	want := []string{"a.c", "b.c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGraph_TransitiveUnits_IncludesSeedUnits(t *testing.T) {
	g := buildGraph(
		map[string][]string{"a.c": {"h.h"}},
		map[string]domain.FileKind{"a.c": domain.KindUnit, "h.h": domain.KindHeader},
	)

	got := g.TransitiveUnits([]string{"a.c"})
	if !reflect.DeepEqual(got, []string{"a.c"}) {
		t.Fatalf("expected seed unit in closure, got %v", got)
	}
}

func TestGraph_TransitiveUnits_HeaderCycle(t *testing.T) {
	// Guard-protected mutual includes are legal; traversal must terminate.
	g := buildGraph(
		map[string][]string{
			"x.h": {"y.h"},
			"y.h": {"x.h"},
			"m.c": {"x.h"},
		},
		map[string]domain.FileKind{
			"x.h": domain.KindHeader,
			"y.h": domain.KindHeader,
			"m.c": domain.KindUnit,
		},
	)

	got := g.TransitiveUnits([]string{"y.h"})
	if !reflect.DeepEqual(got, []string{"m.c"}) {
		t.Fatalf("expected [m.c], got %v", got)
	}
}

func TestGraph_TransitiveUnits_UnknownSeedIgnored(t *testing.T) {
	g := buildGraph(nil, map[string]domain.FileKind{"a.c": domain.KindUnit})
	if got := g.TransitiveUnits([]string{"ghost.h"}); got != nil {
		t.Fatalf("expected empty closure, got %v", got)
	}
}

func TestGraph_RemoveNode_DropsAllEdges(t *testing.T) {
	g := buildGraph(
		map[string][]string{
			"a.c": {"h.h"},
			"b.c": {"h.h"},
		},
		map[string]domain.FileKind{
			"a.c": domain.KindUnit,
			"b.c": domain.KindUnit,
			"h.h": domain.KindHeader,
		},
	)

	g.RemoveNode("h.h")

	if g.Contains("h.h") {
		t.Fatal("expected h.h to be removed")
	}
	if deps := g.Dependencies("a.c"); deps != nil {
		t.Fatalf("expected dangling edge from a.c to be dropped, got %v", deps)
	}
	if got := g.TransitiveUnits([]string{"h.h"}); got != nil {
		t.Fatalf("expected no dependents after removal, got %v", got)
	}
}

func TestGraph_SetEdges_Overwrites(t *testing.T) {
	g := buildGraph(
		map[string][]string{"a.c": {"old.h"}},
		map[string]domain.FileKind{"a.c": domain.KindUnit, "old.h": domain.KindHeader},
	)

	g.SetEdges("a.c", []string{"new.h"})

	if got := g.Dependents("old.h"); got != nil {
		t.Fatalf("expected old.h to have no dependents, got %v", got)
	}
	if got := g.Dependents("new.h"); !reflect.DeepEqual(got, []string{"a.c"}) {
		t.Fatalf("expected [a.c], got %v", got)
	}
	// Edge targets unseen so far enter the graph as headers.
	if kind, ok := g.Kind("new.h"); !ok || kind != domain.KindHeader {
		t.Fatalf("expected new.h tracked as header, got %v %v", kind, ok)
	}
}
