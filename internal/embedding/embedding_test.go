package embedding

import (
	"context"
	"math"
	"testing"
)

func vecNorm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestNormalize(t *testing.T) {
	vec := Normalize([]float32{3, 4})
	if got := vecNorm(vec); math.Abs(got-1) > 1e-6 {
		t.Errorf("norm = %v, want 1", got)
	}
	if math.Abs(float64(vec[0])-0.6) > 1e-6 || math.Abs(float64(vec[1])-0.8) > 1e-6 {
		t.Errorf("unexpected direction: %v", vec)
	}
}

func TestNormalize_zeroVector(t *testing.T) {
	vec := Normalize([]float32{0, 0, 0})
	for _, v := range vec {
		if v != 0 {
			t.Errorf("zero vector must stay zero, got %v", vec)
		}
	}
}

func TestMockEmbedder(t *testing.T) {
	e := NewMockEmbedder(32)
	ctx := context.Background()

	a, err := e.Embed(ctx, "Python developer")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32 {
		t.Fatalf("dimension = %d, want 32", len(a))
	}
	if got := vecNorm(a); math.Abs(got-1) > 1e-5 {
		t.Errorf("vector not unit length: %v", got)
	}

	b, err := e.Embed(ctx, "Python developer")
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("identical text must embed identically")
		}
	}
}

func TestMockEmbedder_defaultDimension(t *testing.T) {
	e := NewMockEmbedder(0)
	if e.Dimensions() != 384 {
		t.Errorf("Dimensions = %d, want 384", e.Dimensions())
	}
}

func TestLRUCache(t *testing.T) {
	c := newLRUCache(2)
	c.set("a", []float32{1})
	c.set("b", []float32{2})

	if _, ok := c.get("a"); !ok {
		t.Fatal("a should be cached")
	}
	// a was just touched, so inserting c evicts b.
	c.set("c", []float32{3})
	if _, ok := c.get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.get("a"); !ok {
		t.Error("a should survive")
	}
	if v, ok := c.get("c"); !ok || v[0] != 3 {
		t.Error("c should be cached")
	}
}

func TestLRUCache_overwrite(t *testing.T) {
	c := newLRUCache(2)
	c.set("a", []float32{1})
	c.set("a", []float32{9})
	if v, ok := c.get("a"); !ok || v[0] != 9 {
		t.Errorf("overwrite failed: %v %v", v, ok)
	}
}
