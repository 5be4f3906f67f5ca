package math

import (
	"math"
	"testing"
)

func TestEmptyAABB(t *testing.T) {
	b := EmptyAABB()
	if !b.IsEmpty() {
		t.Fatal("EmptyAABB should be empty")
	}
	if b.Size() != (Vec3{}) {
		t.Errorf("empty box size should be zero, got %v", b.Size())
	}

	b = b.Extend(Vec3{1, 2, 3})
	if b.IsEmpty() {
		t.Fatal("box extended by a point should not be empty")
	}
	if b.Min != b.Max {
		t.Errorf("single-point box should have Min == Max, got %v %v", b.Min, b.Max)
	}
}

func TestAABBUnion(t *testing.T) {
	a := NewAABB(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	b := NewAABB(Vec3{2, -1, 0}, Vec3{3, 0, 5})

	u := a.Union(b)
	if u.Min != (Vec3{0, -1, 0}) || u.Max != (Vec3{3, 1, 5}) {
		t.Errorf("Union: got %v", u)
	}
	if a.Union(EmptyAABB()) != a {
		t.Error("union with empty box should be identity")
	}
}

func TestAABBTransformed(t *testing.T) {
	box := NewAABB(Vec3{0, 0, 0}, Vec3{1, 2, 3})

	moved := box.Transformed(Translate(10, 0, 0).Mul(Scale(2, 2, 2)))
	if moved.Min != (Vec3{10, 0, 0}) || moved.Max != (Vec3{12, 4, 6}) {
		t.Errorf("scaled+translated: got %v", moved)
	}

	// 90 degrees around Z swaps X and Y extents
	rotated := box.Transformed(RotateZ(float32(math.Pi / 2)))
	size := rotated.Size()
	if abs(size.X-2) > 0.001 || abs(size.Y-1) > 0.001 || abs(size.Z-3) > 0.001 {
		t.Errorf("rotated size: got %v, want (2, 1, 3)", size)
	}
}

func TestBoundsOf(t *testing.T) {
	if !BoundsOf().IsEmpty() {
		t.Error("BoundsOf() should be empty")
	}
	b := BoundsOf(Vec3{1, -2, 3}, Vec3{-1, 4, 0}, Vec3{0, 0, 5})
	want := AABB{Min: Vec3{-1, -2, 0}, Max: Vec3{1, 4, 5}}
	if b != want {
		t.Errorf("BoundsOf = %+v, want %+v", b, want)
	}
}
