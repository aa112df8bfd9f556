package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			// The normal stays outward even when the ray leaves the sphere
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != mat {
				t.Error("Hit record should carry the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_TangentIsMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected tangent ray to miss, got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"tMax before sphere", 0.001, 0.5, false, 0},
		{"tMin after sphere", 3.5, 1000, false, 0},
		{"interval excludes near root only", 2, 1000, true, 3},
		{"near root equal to tMin is excluded", 1, 1000, true, 3},
		{"far root equal to tMax is excluded", 1.5, 3, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		center := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, random.Float64()*4-2)
		radius := 0.2 + random.Float64()*2
		sphere := NewSphere(center, radius, nil)

		origin := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		target := center.Add(core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5).Multiply(radius))
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			continue
		}

		if d := ray.At(hit.T).Subtract(center).Length(); math.Abs(d-radius) > 1e-6*math.Max(1, radius) {
			t.Fatalf("Hit point is %f from the centre, expected radius %f", d, radius)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Normal %v is not unit length", hit.Normal)
		}
		toPoint := hit.Point.Subtract(center).Normalize()
		if toPoint.Subtract(hit.Normal).Length() > 1e-9 {
			t.Fatalf("Normal %v is not parallel to p-C %v", hit.Normal, toPoint)
		}
		if hit.U < 0 || hit.U > 0.5 || hit.V < 0 || hit.V > 1 {
			t.Fatalf("UV (%f, %f) out of range", hit.U, hit.V)
		}
	}
}

func TestSphereUV(t *testing.T) {
	tests := []struct {
		name   string
		normal core.Vec3
		u, v   float64
	}{
		{"south pole", core.NewVec3(0, -1, 0), 0.5, 0},
		{"north pole", core.NewVec3(0, 1, 0), 0.5, 1},
		{"+x", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"-x", core.NewVec3(-1, 0, 0), 0, 0.5},
		{"+z", core.NewVec3(0, 0, 1), 0.25, 0.5},
		{"-z folds onto +z", core.NewVec3(0, 0, -1), 0.25, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := SphereUV(tt.normal)
			if math.Abs(u-tt.u) > 1e-12 {
				t.Errorf("Expected u=%f, got %f", tt.u, u)
			}
			if math.Abs(v-tt.v) > 1e-12 {
				t.Errorf("Expected v=%f, got %f", tt.v, v)
			}
		})
	}
}

func TestSphereUV_MirroredAzimuthsShareU(t *testing.T) {
	random := rand.New(rand.NewSource(17))

	for i := 0; i < 200; i++ {
		n := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Normalize()
		mirrored := core.NewVec3(n.X, n.Y, -n.Z)

		u1, v1 := SphereUV(n)
		u2, v2 := SphereUV(mirrored)
		if u1 != u2 || v1 != v2 {
			t.Fatalf("Mirrored normals %v and %v map to (%f,%f) and (%f,%f)", n, mirrored, u1, v1, u2, v2)
		}
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, nil)
	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Sphere should always have a bounding box")
	}

	expected := core.NewAABB(core.NewVec3(0.5, 1.5, 2.5), core.NewVec3(1.5, 2.5, 3.5))
	if box != expected {
		t.Errorf("Expected box %v, got %v", expected, box)
	}
}
