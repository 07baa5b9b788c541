package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joyent/promstat/model"
)

var listing = []model.MetricInfo{
	{Kind: model.Counter, Name: "requests_total", Help: "Total requests served.", NTargets: 2},
	{Kind: model.Gauge, Name: "temperature", NTargets: 1},
}

func TestMetadata_Table(t *testing.T) {
	var buf bytes.Buffer
	NewMetadata(&buf, false).Report(listing)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	require.Regexp(t, `^TYPE\s+METRIC\s+NTARGS$`, lines[0])
	require.Regexp(t, `^counter\s+requests_total\s+2$`, lines[1])
	require.Regexp(t, `^gauge\s+temperature\s+1$`, lines[2])
	require.NotContains(t, buf.String(), "Total requests served.")
}

func TestMetadata_Verbose(t *testing.T) {
	var buf bytes.Buffer
	NewMetadata(&buf, true).Report(listing)

	require.Contains(t, buf.String(), "    Total requests served.")
	// metrics without help text get no extra line
	require.Equal(t, 4, strings.Count(buf.String(), "\n"))
}
