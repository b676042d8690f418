package tracker

import (
	"math"
	"testing"

	"github.com/flightboard/flightboard/internal/model"
)

func TestGreatCircleArcEndpoints(t *testing.T) {
	sfo := model.Coordinate{Latitude: 37.6213, Longitude: -122.3790}
	jfk := model.Coordinate{Latitude: 40.6413, Longitude: -73.7781}

	arc := GreatCircleArc(sfo, jfk, 16)

	if len(arc) != 17 {
		t.Fatalf("expected 17 waypoints, got %d", len(arc))
	}
	if !closeTo(arc[0], sfo) {
		t.Errorf("arc should start at the departure coordinate, got %+v", arc[0])
	}
	if !closeTo(arc[len(arc)-1], jfk) {
		t.Errorf("arc should end at the arrival coordinate, got %+v", arc[len(arc)-1])
	}
}

func TestGreatCircleArcCurvesNorthward(t *testing.T) {
	// The SFO-JFK great circle passes north of the straight lat/lon
	// midpoint.
	sfo := model.Coordinate{Latitude: 37.6213, Longitude: -122.3790}
	jfk := model.Coordinate{Latitude: 40.6413, Longitude: -73.7781}

	arc := GreatCircleArc(sfo, jfk, 2)
	mid := arc[1]

	linearMid := (sfo.Latitude + jfk.Latitude) / 2
	if mid.Latitude <= linearMid {
		t.Errorf("great-circle midpoint latitude %v should exceed linear midpoint %v",
			mid.Latitude, linearMid)
	}
}

func TestGreatCircleArcDegenerate(t *testing.T) {
	p := model.Coordinate{Latitude: 10, Longitude: 20}

	arc := GreatCircleArc(p, p, 4)
	if len(arc) != 5 {
		t.Fatalf("expected 5 waypoints, got %d", len(arc))
	}
	for i, wp := range arc {
		if !closeTo(wp, p) {
			t.Errorf("waypoint %d should stay at the origin, got %+v", i, wp)
		}
	}
}

func TestGreatCircleArcMinimumSegments(t *testing.T) {
	a := model.Coordinate{Latitude: 0, Longitude: 0}
	b := model.Coordinate{Latitude: 10, Longitude: 10}

	// A non-positive segment count still yields a usable two-point arc.
	arc := GreatCircleArc(a, b, 0)
	if len(arc) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(arc))
	}
}

func closeTo(a, b model.Coordinate) bool {
	const eps = 1e-6
	return math.Abs(a.Latitude-b.Latitude) < eps && math.Abs(a.Longitude-b.Longitude) < eps
}
