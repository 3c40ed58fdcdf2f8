package scene

import "testing"

func TestGraphAddRemoveKeepsOrder(t *testing.T) {
	g := NewGraph()
	a := &Visual{Kind: KindMeteor}
	b := &Visual{Kind: KindExplosion}
	c := &Visual{Kind: KindShockwave}
	g.Add(a)
	g.Add(b)
	g.Add(c)
	g.Add(b)

	if g.Len() != 3 {
		t.Fatalf("Len = %d, want 3", g.Len())
	}

	g.Remove(b)
	g.Remove(b)
	got := g.Visuals()
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("unexpected order after remove: %v", got)
	}
	if g.Contains(b) {
		t.Fatal("removed visual still reported")
	}

	g.Remove(a)
	if got := g.Visuals(); len(got) != 1 || got[0] != c {
		t.Fatalf("index not rebuilt after remove: %v", got)
	}
	g.Remove(c)
	if g.Len() != 0 {
		t.Fatalf("Len = %d after removing all", g.Len())
	}
}

func TestGraphCountAndClear(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 3; i++ {
		g.Add(&Visual{Kind: KindExplosion})
	}
	g.Add(&Visual{Kind: KindTargetMarker})
	if n := g.Count(KindExplosion); n != 3 {
		t.Fatalf("Count(explosion) = %d", n)
	}
	g.Clear()
	if g.Len() != 0 || g.Count(KindTargetMarker) != 0 {
		t.Fatal("Clear left visuals behind")
	}
}
