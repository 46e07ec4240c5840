package dto

// PlanRequest selects a stored problem by name or carries one inline.
// Definition wins when both are set.
type PlanRequest struct {
	Problem    string             `json:"problem"`
	Definition *ProblemDefinition `json:"definition"`
}

type PickupDeliveryRequest struct {
	Pickup   int `json:"pickup"`
	Delivery int `json:"delivery"`
}

type TimeWindowRequest struct {
	Node  int   `json:"node"`
	Open  int64 `json:"open"`
	Close int64 `json:"close"`
}

type ProblemDefinition struct {
	Name              string                  `json:"name"`
	Vehicles          int                     `json:"vehicles"`
	Depot             int                     `json:"depot"`
	Horizon           int64                   `json:"horizon"`
	PickupsDeliveries []PickupDeliveryRequest `json:"pickups_deliveries"`
	TimeWindows       []TimeWindowRequest     `json:"time_windows"`
	TimeMatrix        [][]int64               `json:"time_matrix"`
	MatrixSource      string                  `json:"matrix_source"`
}

type RouteResponse struct {
	VehicleID int     `json:"vehicle_id"`
	Nodes     []int   `json:"nodes"`
	Indices   []int64 `json:"indices"`
	Cost      int64   `json:"cost"`
}

type PlanResponse struct {
	PlanID    string          `json:"plan_id"`
	Problem   string          `json:"problem"`
	Objective int64           `json:"objective"`
	Total     int64           `json:"total"`
	Routes    []RouteResponse `json:"routes"`
	Text      string          `json:"text"`
}
