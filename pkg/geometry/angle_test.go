package geometry

import (
	"math"
	"testing"
)

func TestNormalizeAngleRange(t *testing.T) {
	for a := -4 * math.Pi; a <= 4*math.Pi; a += 0.01 {
		n := NormalizeAngle(a)
		if n <= -math.Pi || n > math.Pi {
			t.Fatalf("NormalizeAngle(%v) = %v, outside (-π, π]", a, n)
		}
	}
}

func TestNormalizeAnglePeriodic(t *testing.T) {
	for a := -3.0; a <= 3.0; a += 0.05 {
		got := NormalizeAngle(a + 2*math.Pi)
		expected := NormalizeAngle(a)
		if math.Abs(got-expected) > 1e-9 {
			t.Errorf("NormalizeAngle(%v + 2π) = %v, expected %v", a, got, expected)
		}
	}
}

func TestNormalizeAngleBoundaries(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{0, 0},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}

	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("NormalizeAngle(%v): expected %v, got %v", tt.in, tt.expected, got)
		}
	}
}

func TestRadToDeg(t *testing.T) {
	if got := RadToDeg(math.Pi / 2); math.Abs(got-90) > 1e-10 {
		t.Errorf("RadToDeg failed: expected 90, got %v", got)
	}
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-10 {
		t.Errorf("DegToRad failed: expected π, got %v", got)
	}
}

func TestCosSinQuarterTurnsExact(t *testing.T) {
	tests := []struct {
		angle    float64
		cos, sin float64
	}{
		{0, 1, 0},
		{math.Pi / 2, 0, 1},
		{math.Pi, -1, 0},
		{-math.Pi / 2, 0, -1},
	}
	for _, tt := range tests {
		cos, sin := CosSin(tt.angle)
		if cos != tt.cos || sin != tt.sin {
			t.Errorf("CosSin(%v): expected (%v, %v), got (%v, %v)", tt.angle, tt.cos, tt.sin, cos, sin)
		}
	}

	cos, sin := CosSin(0.3)
	if math.Abs(cos-math.Cos(0.3)) > 1e-15 || math.Abs(sin-math.Sin(0.3)) > 1e-15 {
		t.Errorf("CosSin(0.3) should not be snapped, got (%v, %v)", cos, sin)
	}
}
