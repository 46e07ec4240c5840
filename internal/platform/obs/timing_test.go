package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeLogsRequestIDAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := WithRequestID(context.Background(), "abc")
	require.Equal(t, "abc", RequestID(ctx))

	err := errors.New("boom")
	Time(ctx, "matrix.build")(&err)

	line := buf.String()
	require.True(t, strings.Contains(line, "req_id=abc"), line)
	require.True(t, strings.Contains(line, "op=matrix.build"), line)
	require.True(t, strings.Contains(line, "err=boom"), line)

	buf.Reset()
	var ok error
	Time(context.Background(), "plan")(&ok)
	require.NotContains(t, buf.String(), "err=")
}
