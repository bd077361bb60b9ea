package rules

import (
	"math"
	"testing"
)

func TestHaversineZeroForIdenticalPoints(t *testing.T) {
	if got := HaversineKM(53.9006, 27.5590, 53.9006, 27.5590); got != 0 {
		t.Fatalf("identical coordinates: got %f, want 0", got)
	}
	if got := DistanceKM(0, 0, 0, 0); got != 0 {
		t.Fatalf("identical coordinates rounded: got %d, want 0", got)
	}
}

func TestHaversineOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is ~111.19 km on a 6371 km sphere.
	got := HaversineKM(50.0, 10.0, 51.0, 10.0)
	if math.Abs(got-111.19) > 0.5 {
		t.Fatalf("one degree latitude: got %f, want ~111.19", got)
	}

	rounded := DistanceKM(50.0, 10.0, 51.0, 10.0)
	if rounded != 111 {
		t.Fatalf("one degree latitude rounded: got %d, want 111", rounded)
	}
}

func TestHaversineIsSymmetric(t *testing.T) {
	a := HaversineKM(53.9006, 27.5590, 52.0976, 23.7341)
	b := HaversineKM(52.0976, 23.7341, 53.9006, 27.5590)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, 181, false},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	}
	for _, tc := range cases {
		if got := ValidCoordinates(tc.lat, tc.lon); got != tc.want {
			t.Fatalf("ValidCoordinates(%f, %f) = %v, want %v", tc.lat, tc.lon, got, tc.want)
		}
	}
}
