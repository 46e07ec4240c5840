package domain

// DistanceMatrixResponse mirrors the JSON body returned by a distance-matrix
// service. Row i holds one element per destination for origin address i.
type DistanceMatrixResponse struct {
	Status               string   `json:"status"`
	OriginAddresses      []string `json:"origin_addresses"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []Row    `json:"rows"`
}

type Row struct {
	Elements []Element `json:"elements"`
}

type Element struct {
	Status   string   `json:"status"`
	Duration Quantity `json:"duration"`
	Distance Quantity `json:"distance"`
}

// Quantity is a measured value with its display text.
// Duration values are seconds, distance values are meters.
type Quantity struct {
	Value int64  `json:"value"`
	Text  string `json:"text"`
}

// ElementOK is the status of an element the service could compute.
const ElementOK = "OK"
