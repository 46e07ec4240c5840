package domain

import (
	"errors"
	"fmt"
)

// DefaultHorizon is the cumulative travel time (minutes) a vehicle may
// spend on its route when a problem does not set one.
const DefaultHorizon int64 = 3000

// MaxVehicles caps the fleet size of a single problem. Planning allocates
// per vehicle, and problems arrive from untrusted request bodies.
const MaxVehicles = 1024

// Represents a transportation request: the pickup node must be served
// before the delivery node, and both by the same vehicle.
type PickupDelivery struct {
	Pickup   int `yaml:"pickup" json:"pickup"`
	Delivery int `yaml:"delivery" json:"delivery"`
}

// TimeWindow bounds the arrival time at a node, in minutes from departure.
type TimeWindow struct {
	Open  int64 `yaml:"open" json:"open"`
	Close int64 `yaml:"close" json:"close"`
}

// Problem describes one pickup-and-delivery instance.
// The travel costs come either from Matrix or from the distance-matrix
// response referenced by MatrixSource.
type Problem struct {
	Name              string             `yaml:"name" json:"name"`
	Vehicles          int                `yaml:"vehicles" json:"vehicles"`
	Depot             int                `yaml:"depot" json:"depot"`
	Horizon           int64              `yaml:"horizon" json:"horizon"`
	PickupsDeliveries []PickupDelivery   `yaml:"pickups_deliveries" json:"pickups_deliveries"`
	TimeWindows       map[int]TimeWindow `yaml:"time_windows" json:"time_windows"`
	Matrix            TravelTimeMatrix   `yaml:"time_matrix" json:"time_matrix"`
	MatrixSource      string             `yaml:"matrix_source" json:"matrix_source"`
}

// RouteHorizon returns the configured horizon or DefaultHorizon.
func (p *Problem) RouteHorizon() int64 {
	if p.Horizon > 0 {
		return p.Horizon
	}
	return DefaultHorizon
}

// Validate checks the problem against a matrix covering n locations.
func (p *Problem) Validate(n int) error {
	if p.Vehicles < 1 || p.Vehicles > MaxVehicles {
		return fmt.Errorf("validate problem %q: vehicles must be in [1,%d], got %d", p.Name, MaxVehicles, p.Vehicles)
	}
	if n < 1 {
		return fmt.Errorf("validate problem %q: matrix must cover at least one location", p.Name)
	}
	if p.Depot < 0 || p.Depot >= n {
		return fmt.Errorf("validate problem %q: depot %d out of range [0,%d)", p.Name, p.Depot, n)
	}

	seen := make(map[PickupDelivery]struct{}, len(p.PickupsDeliveries))
	for i, pd := range p.PickupsDeliveries {
		if err := p.checkNode(pd.Pickup, n); err != nil {
			return fmt.Errorf("validate problem %q: pair #%d pickup: %w", p.Name, i+1, err)
		}
		if err := p.checkNode(pd.Delivery, n); err != nil {
			return fmt.Errorf("validate problem %q: pair #%d delivery: %w", p.Name, i+1, err)
		}
		if pd.Pickup == pd.Delivery {
			return fmt.Errorf("validate problem %q: pair #%d picks up and delivers at node %d", p.Name, i+1, pd.Pickup)
		}
		if _, ok := seen[pd]; ok {
			return fmt.Errorf("validate problem %q: duplicate pair %d -> %d", p.Name, pd.Pickup, pd.Delivery)
		}
		seen[pd] = struct{}{}
	}

	for node, tw := range p.TimeWindows {
		if node < 0 || node >= n {
			return fmt.Errorf("validate problem %q: time window for unknown node %d", p.Name, node)
		}
		if node == p.Depot {
			return fmt.Errorf("validate problem %q: depot %d cannot have a time window, use horizon", p.Name, node)
		}
		if tw.Open < 0 || tw.Open > tw.Close {
			return fmt.Errorf("validate problem %q: invalid time window [%d,%d] at node %d", p.Name, tw.Open, tw.Close, node)
		}
	}

	return nil
}

var errDepotInPair = errors.New("depot cannot be part of a pickup-delivery pair")

func (p *Problem) checkNode(node, n int) error {
	if node < 0 || node >= n {
		return fmt.Errorf("node %d out of range [0,%d)", node, n)
	}
	if node == p.Depot {
		return errDepotInPair
	}
	return nil
}
