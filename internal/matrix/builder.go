// Package matrix converts distance-matrix responses into the square integer
// travel time matrices consumed by the routing engine, and renders them as
// brace-delimited text for caching and debugging.
package matrix

import (
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
)

// ErrMalformedMatrix is returned when a response or cached text does not
// describe a square matrix. Detailed errors wrap it; match with errors.Is.
var ErrMalformedMatrix = errors.New("matrix: malformed matrix data")

const secondsPerMinute = 60

// BuildTravelTimeMatrix converts the durations of a distance-matrix response
// into whole minutes. Cell (i, j) is rows[i].elements[j].duration.value / 60,
// truncated.
//
// The whole response is validated before the matrix is allocated, so either a
// complete matrix or an error wrapping ErrMalformedMatrix is returned.
func BuildTravelTimeMatrix(resp *domain.DistanceMatrixResponse) (domain.TravelTimeMatrix, error) {
	if err := validateResponse(resp); err != nil {
		return nil, err
	}

	n := len(resp.Rows)
	out := make(domain.TravelTimeMatrix, n)
	for i := 0; i < n; i++ {
		out[i] = make([]int64, n)
		for j := 0; j < n; j++ {
			out[i][j] = resp.Rows[i].Elements[j].Duration.Value / secondsPerMinute
		}
	}

	return out, nil
}

func validateResponse(resp *domain.DistanceMatrixResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: response is nil", ErrMalformedMatrix)
	}

	n := len(resp.Rows)
	if n == 0 {
		return fmt.Errorf("%w: response has no rows", ErrMalformedMatrix)
	}

	if origins := len(resp.OriginAddresses); origins > 0 && origins != n {
		return fmt.Errorf("%w: %d rows for %d origin addresses", ErrMalformedMatrix, n, origins)
	}

	// Hand-written fixtures may omit the address lists; the matrix is then
	// assumed to cover the same locations on both axes.
	cols := len(resp.DestinationAddresses)
	if cols == 0 {
		cols = n
	}
	if cols != n {
		return fmt.Errorf("%w: %d origins but %d destinations, matrix must be square", ErrMalformedMatrix, n, cols)
	}

	for i, row := range resp.Rows {
		if len(row.Elements) != cols {
			return fmt.Errorf("%w: row %d has %d elements, want %d", ErrMalformedMatrix, i, len(row.Elements), cols)
		}
		for j, el := range row.Elements {
			if el.Status != "" && el.Status != domain.ElementOK {
				return fmt.Errorf("%w: element (%d,%d) status %q", ErrMalformedMatrix, i, j, el.Status)
			}
			if el.Duration.Value < 0 {
				return fmt.Errorf("%w: element (%d,%d) has negative duration %d", ErrMalformedMatrix, i, j, el.Duration.Value)
			}
		}
	}

	return nil
}
