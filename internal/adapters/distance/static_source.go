package distance

import (
	"context"
	"fmt"
	"pdp-route-service/internal/domain"
)

// StaticSource serves responses held in memory, keyed by ref.
type StaticSource struct {
	m map[string]*domain.DistanceMatrixResponse
}

func NewStaticSource(responses map[string]*domain.DistanceMatrixResponse) *StaticSource {
	m := make(map[string]*domain.DistanceMatrixResponse, len(responses))
	for k, v := range responses {
		m[k] = v
	}
	return &StaticSource{m: m}
}

func (s *StaticSource) FetchResponse(ctx context.Context, ref string) (*domain.DistanceMatrixResponse, error) {
	r, ok := s.m[ref]
	if !ok {
		return nil, fmt.Errorf("missing response %q", ref)
	}

	return r, nil
}

// ResponseFromSeconds builds a square response from durations in seconds.
// Distances are left at zero.
func ResponseFromSeconds(seconds [][]int64) *domain.DistanceMatrixResponse {
	resp := &domain.DistanceMatrixResponse{Status: domain.ElementOK}
	for i, row := range seconds {
		addr := fmt.Sprintf("location %d", i)
		resp.OriginAddresses = append(resp.OriginAddresses, addr)
		resp.DestinationAddresses = append(resp.DestinationAddresses, addr)

		r := domain.Row{Elements: make([]domain.Element, 0, len(row))}
		for _, s := range row {
			r.Elements = append(r.Elements, domain.Element{
				Status:   domain.ElementOK,
				Duration: domain.Quantity{Value: s, Text: fmt.Sprintf("%d s", s)},
			})
		}
		resp.Rows = append(resp.Rows, r)
	}
	return resp
}
