package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/joyent/promstat/internal/config"
)

const exposition = `# HELP requests_total Total requests served.
# TYPE requests_total counter
requests_total 10
# HELP temperature Current temperature.
# TYPE temperature gauge
temperature 36.6
`

func newEndpoint(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, exposition)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_UsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-t", "http://h"},
		{"-t", "http://h", "-l", "-m", "up"},
		{"-t", "https://h", "-m", "up"},
	} {
		err := run(context.Background(), args, &bytes.Buffer{})
		var uerr *config.UsageError
		require.ErrorAs(t, err, &uerr, "args: %v", args)
	}
}

func TestRun_ListMode(t *testing.T) {
	srv := newEndpoint(t)

	var buf bytes.Buffer
	err := run(context.Background(), []string{"-t", srv.URL, "-l"}, &buf)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "TYPE")
	require.Contains(t, out, "METRIC")
	require.Contains(t, out, "NTARGS")
	require.Contains(t, out, "requests_total")
	require.Contains(t, out, "temperature")
	require.NotContains(t, out, "Total requests served.")
}

func TestRun_ListModeVerbose(t *testing.T) {
	srv := newEndpoint(t)

	var buf bytes.Buffer
	err := run(context.Background(), []string{"-t", srv.URL, "-l", "-v"}, &buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Total requests served.")
}

func TestRun_ListModeFatalWhenAllTargetsDown(t *testing.T) {
	srv := httptest.NewServer(chi.NewRouter())
	url := srv.URL
	srv.Close()

	err := run(context.Background(), []string{"-t", url, "-l"}, &bytes.Buffer{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no metadata from any target")

	var uerr *config.UsageError
	require.False(t, errors.As(err, &uerr), "discovery failure is fatal, not a usage error")
}

func TestRun_AutoSelectsTableForScalars(t *testing.T) {
	srv := newEndpoint(t)

	var buf bytes.Buffer
	err := run(context.Background(), []string{"-t", srv.URL, "-m", "temperature", "1", "1"}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2, "header plus one row for one datapoint")
	require.Contains(t, lines[0], "TIME")
	require.Contains(t, lines[0], "TARGET")
	require.Contains(t, lines[0], "temperature")
	require.True(t, strings.HasSuffix(lines[1], "36.6"))
}

func TestRun_ForcedFullMode(t *testing.T) {
	srv := newEndpoint(t)

	var buf bytes.Buffer
	err := run(context.Background(), []string{"-t", srv.URL, "-m", "requests_total", "-o", "full", "1", "1"}, &buf)
	require.NoError(t, err)

	out := buf.String()
	require.NotContains(t, out, "TIME")
	require.Contains(t, out, "requests_total: 10*")
}
