package core

import (
	"testing"
)

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(42)
	var sum Vec3
	const n = 20000

	for i := 0; i < n; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() > 1.0+1e-12 {
			t.Fatalf("Point %v outside unit sphere", p)
		}
		sum = sum.Add(p)
	}

	// Uniform distribution is centred on the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.02 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 10000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample left the XY plane: %v", p)
		}
		if p.LengthSquared() > 1.0+1e-12 {
			t.Fatalf("Point %v outside unit disk", p)
		}
	}

	if p := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); p != (Vec3{}) {
		t.Errorf("Expected centre sample to map to origin, got %v", p)
	}
}

func TestSeededSamplerIsReproducible(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 100; i++ {
		if a.Get3D() != b.Get3D() {
			t.Fatal("Samplers with the same seed diverged")
		}
	}
}
