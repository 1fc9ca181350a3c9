package obj

import "testing"

func TestResolveIndex(t *testing.T) {
	cases := []struct {
		raw, count int
		neg        bool
		want       int
	}{
		{raw: 1, count: 5, neg: true, want: 0},
		{raw: 5, count: 5, neg: true, want: 4},
		{raw: -1, count: 5, neg: true, want: 4},
		{raw: -5, count: 5, neg: true, want: 0},
		{raw: -6, count: 5, neg: true, want: -1},
		{raw: 0, count: 5, neg: true, want: -1},
		{raw: 0, count: 5, neg: false, want: -1},
		{raw: -1, count: 5, neg: false, want: -2},
		{raw: 9, count: 5, neg: true, want: 8}, // caller bounds-checks
	}
	for _, c := range cases {
		if got := ResolveIndex(c.raw, c.count, c.neg); got != c.want {
			t.Errorf("ResolveIndex(%d, %d, %v) = %d, want %d", c.raw, c.count, c.neg, got, c.want)
		}
	}
}

func newTestBuilder(n int) *builder {
	b := newBuilder(DefaultOptions())
	for i := 0; i < n; i++ {
		b.parseLine(i+1, "v 0 0 0")
	}
	return b
}

func TestFanTriangulation(t *testing.T) {
	b := newTestBuilder(6)
	b.addFace(1, []string{"1", "2", "3", "4", "5", "6"})
	want := []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 5}
	if len(b.indices) != len(want) {
		t.Fatalf("indices = %v, want %v", b.indices, want)
	}
	for i := range want {
		if b.indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", b.indices, want)
		}
	}
}

func TestDroppedCornersShrinkPolygon(t *testing.T) {
	b := newTestBuilder(4)
	b.addFace(1, []string{"1", "2/x", "3", "4", "  "})
	// corners 1,3,4 survive
	if len(b.indices) != 3 {
		t.Fatalf("indices = %v, want one triangle", b.indices)
	}
	if b.stats.DroppedCorners != 1 {
		t.Errorf("dropped = %d, want 1", b.stats.DroppedCorners)
	}
}

func TestDegenerateFaceAfterDrops(t *testing.T) {
	b := newTestBuilder(2)
	b.addFace(1, []string{"1", "2", "3"})
	if len(b.indices) != 0 {
		t.Fatalf("indices = %v, want none", b.indices)
	}
	if b.stats.SkippedFaces != 1 {
		t.Errorf("skipped faces = %d, want 1", b.stats.SkippedFaces)
	}
	// vertices created for surviving corners stay in the table
	if len(b.vertices) != 2 {
		t.Errorf("vertices = %d, want 2", len(b.vertices))
	}
}

func TestDedupReusesExistingVertex(t *testing.T) {
	b := newTestBuilder(4)
	b.addFace(1, []string{"1", "2", "3"})
	b.addFace(2, []string{" 3", "2 ", "4"})
	if len(b.vertices) != 4 {
		t.Fatalf("vertices = %d, want 4", len(b.vertices))
	}
	if b.uniq["3"] != 2 || b.uniq["2"] != 1 {
		t.Errorf("dedup table = %v", b.uniq)
	}
	want := []uint32{0, 1, 2, 2, 1, 3}
	for i := range want {
		if b.indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", b.indices, want)
		}
	}
}

func TestExtraSlashFieldsIgnored(t *testing.T) {
	b := newTestBuilder(3)
	b.addFace(1, []string{"1/1/1/9", "2", "3"})
	if len(b.indices) != 3 {
		t.Fatalf("indices = %v, want one triangle", b.indices)
	}
}
