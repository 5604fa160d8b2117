package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cryptoreport/config"
	"github.com/guttosm/cryptoreport/internal/domain/errs"
)

const marketsJSON = `[
  {"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":67234.12,"market_cap":1324000000000,"total_volume":28000000000,"price_change_percentage_24h":-1.25},
  {"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3120.5,"market_cap":375000000000,"total_volume":15000000000,"price_change_percentage_24h":2.75}
]`

func marketsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url, dir string) config.Config {
	return config.Config{
		Source: config.SourceConfig{
			URL: url, VsCurrency: "usd", PerPage: 50, Page: 1,
			Timeout: 2 * time.Second, UserAgent: "cryptoreport-test",
		},
		Output: config.OutputConfig{
			SpreadsheetPath: filepath.Join(dir, "crypto_data.xlsx"),
			SheetName:       "Live Data",
			ReportPath:      filepath.Join(dir, "crypto_report.pdf"),
		},
	}
}

func TestRun_WritesBothArtifacts(t *testing.T) {
	srv := marketsServer(t, http.StatusOK, marketsJSON)
	cfg := testConfig(srv.URL, t.TempDir())

	require.NoError(t, run(context.Background(), cfg))
	assert.FileExists(t, cfg.Output.SpreadsheetPath)
	assert.FileExists(t, cfg.Output.ReportPath)
}

func TestRun_FetchFailureWritesNothing(t *testing.T) {
	srv := marketsServer(t, http.StatusTooManyRequests, `{"error":"rate limited"}`)
	cfg := testConfig(srv.URL, t.TempDir())

	err := run(context.Background(), cfg)
	var fe *errs.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusTooManyRequests, fe.StatusCode)
	assert.NoFileExists(t, cfg.Output.SpreadsheetPath)
	assert.NoFileExists(t, cfg.Output.ReportPath)
}

// TestMainProcess is the body of the subprocess started by TestMain_ExitStatus.
func TestMainProcess(t *testing.T) {
	if os.Getenv("CRYPTOREPORT_MAIN") != "1" {
		t.Skip("subprocess only")
	}
	os.Args = []string{"cryptoreport", "-mode", "run"}
	main()
}

func TestMain_ExitStatus(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantExit int
	}{
		{name: "done", status: http.StatusOK, body: marketsJSON, wantExit: 0},
		{name: "empty input", status: http.StatusOK, body: `[]`, wantExit: 1},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantExit: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := marketsServer(t, tc.status, tc.body)
			dir := t.TempDir()

			cmd := exec.Command(os.Args[0], "-test.run=^TestMainProcess$")
			cmd.Env = append(os.Environ(),
				"CRYPTOREPORT_MAIN=1",
				"COINGECKO_API_URL="+srv.URL,
				"SPREADSHEET_PATH="+filepath.Join(dir, "crypto_data.xlsx"),
				"REPORT_PATH="+filepath.Join(dir, "crypto_report.pdf"),
				"ARCHIVE_DRIVER=",
				"CONFIG_FILE=",
			)
			err := cmd.Run()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantExit, code)
		})
	}
}
