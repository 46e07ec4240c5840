package matrix_test

import (
	"testing"

	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"

	"github.com/stretchr/testify/require"
)

func TestSerialize_Layout(t *testing.T) {
	m := domain.TravelTimeMatrix{
		{0, 62, 78},
		{65, 0, 34},
		{76, 30, 0},
	}

	got := matrix.Serialize(m)
	require.Equal(t, "{{0,62,78,},\n{65,0,34,},\n{76,30,0,},\n}", got)
}

func TestSerialize_ParseRoundTrip(t *testing.T) {
	m := domain.TravelTimeMatrix{
		{0, 62, 78, 83},
		{65, 0, 34, 116},
		{76, 30, 0, 127},
		{82, 113, 128, 0},
	}

	back, err := matrix.ParseSerialized(matrix.Serialize(m))
	require.NoError(t, err)
	require.True(t, m.Equal(back))
}

func TestParseSerialized_AcceptsHandWrittenLiteral(t *testing.T) {
	text := `{
		{0, 548, 776},
		{548, 0, 684},
		{776, 684, 0}
	}`

	m, err := matrix.ParseSerialized(text)
	require.NoError(t, err)
	require.Equal(t, domain.TravelTimeMatrix{{0, 548, 776}, {548, 0, 684}, {776, 684, 0}}, m)
}

func TestParseSerialized_Malformed(t *testing.T) {
	for _, text := range []string{
		"",
		"{}",
		"{{0,1,},{1,0,}",
		"{{0,1,},{1,}}",
		"{{0,x,},{1,0,}}",
		"{{0,,1},{1,0,1},{1,1,0}}",
		"{0,1}",
		"{{0,-1,},{1,0,}}",
	} {
		_, err := matrix.ParseSerialized(text)
		require.ErrorIs(t, err, matrix.ErrMalformedMatrix, "text %q", text)
	}
}
