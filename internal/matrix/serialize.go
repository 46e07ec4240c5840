package matrix

import (
	"fmt"
	"pdp-route-service/internal/domain"
	"strconv"
	"strings"
)

// Serialize renders m as nested brace text, one inner brace per row and a
// trailing comma after every cell:
//
//	{{0,5,},
//	{5,0,},
//	}
//
// The layout is meant for pasting back as a literal or for a plain file
// cache. ParseSerialized reads it back.
func Serialize(m domain.TravelTimeMatrix) string {
	var b strings.Builder
	b.WriteByte('{')
	for _, row := range m {
		b.WriteByte('{')
		for _, v := range row {
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteByte(',')
		}
		b.WriteString("},\n")
	}
	b.WriteByte('}')
	return b.String()
}

// ParseSerialized reads the brace text produced by Serialize. Whitespace and
// trailing commas are ignored; the result must be a square matrix.
func ParseSerialized(text string) (domain.TravelTimeMatrix, error) {
	s := strings.Join(strings.Fields(text), "")
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, fmt.Errorf("%w: text must be enclosed in braces", ErrMalformedMatrix)
	}
	s = s[1 : len(s)-1]

	var out domain.TravelTimeMatrix
	for len(s) > 0 {
		if s[0] == ',' {
			s = s[1:]
			continue
		}
		if s[0] != '{' {
			return nil, fmt.Errorf("%w: unexpected %q outside a row", ErrMalformedMatrix, s[0])
		}
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return nil, fmt.Errorf("%w: row %d is not closed", ErrMalformedMatrix, len(out))
		}

		row, err := parseRow(s[1:end])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedMatrix, len(out), err)
		}
		out = append(out, row)
		s = s[end+1:]
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMatrix, err)
	}

	return out, nil
}

func parseRow(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	row := make([]int64, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			// only the trailing comma may leave an empty cell
			if i == len(parts)-1 {
				continue
			}
			return nil, fmt.Errorf("empty cell at column %d", i)
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		row = append(row, v)
	}
	return row, nil
}
