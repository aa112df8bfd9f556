package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

func TestCameraGetCameraForward(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        45.0,
	}
	camera := NewCamera(config)

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)
	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward %v, got %v", expected, forward)
	}
}

func TestCameraGetRay_Pinhole(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 2.0,
		VFov:        90.0,
	})
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"centre", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"right edge middle", 1, 0.5, core.NewVec3(2, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Pinhole camera ray should start at the eye, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
			if ray.Time != 0 {
				t.Errorf("Empty shutter window should give time 0, got %f", ray.Time)
			}
		})
	}
}

func TestCameraGetRay_DefocusAndShutter(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   1.5,
		VFov:          20,
		Aperture:      0.4,
		FocusDistance: 10,
		ShutterOpen:   0.25,
		ShutterClose:  0.75,
	}
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))

	focusPoint := config.Center.Add(camera.GetCameraForward().Multiply(10))
	minTime, maxTime := math.Inf(1), math.Inf(-1)

	for i := 0; i < 2000; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		offset := ray.Origin.Subtract(config.Center)
		if offset.Length() > 0.2+1e-9 {
			t.Fatalf("Ray origin %v lies outside the lens radius", ray.Origin)
		}
		if math.Abs(offset.Dot(camera.GetCameraForward())) > 1e-9 {
			t.Fatalf("Lens offset %v should lie in the lens plane", offset)
		}

		// Every centre ray passes through the focus point regardless of lens position
		if ray.At(1).Subtract(focusPoint).Length() > 1e-9 {
			t.Fatalf("Centre ray misses the focus point: %v vs %v", ray.At(1), focusPoint)
		}

		if ray.Time < 0.25 || ray.Time > 0.75 {
			t.Fatalf("Ray time %f outside shutter window", ray.Time)
		}
		minTime = math.Min(minTime, ray.Time)
		maxTime = math.Max(maxTime, ray.Time)
	}

	if maxTime-minTime < 0.4 {
		t.Errorf("Ray times should spread over the shutter window, got [%f, %f]", minTime, maxTime)
	}
}

func TestCamera_AutoFocusDistance(t *testing.T) {
	base := CameraConfig{
		Center:      core.NewVec3(0, 0, 4),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1,
		VFov:        60,
	}
	explicit := base
	explicit.FocusDistance = 4

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	a := NewCamera(base).GetRay(0.2, 0.8, sampler)
	b := NewCamera(explicit).GetRay(0.2, 0.8, sampler)
	if a.Direction.Subtract(b.Direction).Length() > 1e-12 {
		t.Errorf("Zero focus distance should focus on the look-at point: %v vs %v", a.Direction, b.Direction)
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 1.5,
		VFov:        20,
		Aperture:    0.1,
	}
	override := CameraConfig{
		VFov:         40,
		ShutterClose: 1,
		Center:       core.NewVec3(0, 1, 5),
	}

	merged := MergeCameraConfig(base, override)

	if merged.VFov != 40 || merged.ShutterClose != 1 || merged.Center != core.NewVec3(0, 1, 5) {
		t.Errorf("Override fields not applied: %+v", merged)
	}
	if merged.LookAt != base.LookAt || merged.Width != 600 || merged.Aperture != 0.1 || merged.AspectRatio != 1.5 {
		t.Errorf("Zero override fields should keep base values: %+v", merged)
	}
}
