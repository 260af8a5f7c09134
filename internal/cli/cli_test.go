package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simurg/simurg-desktop/internal/api"
	"github.com/simurg/simurg-desktop/internal/catalog"
	"github.com/simurg/simurg-desktop/internal/config"
	"github.com/simurg/simurg-desktop/internal/form"
	"github.com/simurg/simurg-desktop/internal/model"
)

// isolateEnv clears every variable the loader reads
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_URL", "SIMURG_API_URL", "SIMURG_COMBOS_FILE", "SIMURG_LOG_LEVEL", "SIMURG_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Setenv("SIMURG_POLL_INTERVAL", "10ms")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd("1.2.3")
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type fakeServer struct {
	progress     func() (int, string)
	created      atomic.Int32
	lastPlotBody atomic.Value
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	fs := &fakeServer{progress: func() (int, string) { return http.StatusOK, `{"progress":100}` }}

	mux := http.NewServeMux()
	created := func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fs.lastPlotBody.Store(string(body))
		fs.created.Add(1)
		_, _ = w.Write([]byte(`{"request_id":"req-1","status":"queued"}`))
	}
	progress := func(w http.ResponseWriter, r *http.Request) {
		code, body := fs.progress()
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
	mux.HandleFunc(api.PathGeneratePlot, created)
	mux.HandleFunc(api.PathGenerateArchive, created)
	mux.HandleFunc(api.PathRequestProgress, progress)
	mux.HandleFunc(api.PathArchiveProgress, progress)
	mux.HandleFunc(api.PathDownloadResult, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("PNG"))
	})
	mux.HandleFunc(api.PathDownloadImages, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ZIP"))
	})
	mux.HandleFunc(api.PathDownloadAnimation, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("GIF"))
	})
	mux.HandleFunc(api.PathCoordinates, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"valid":true,"coordinates":[1.5,2.5,3.5]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return fs, server
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "SIMURG 1.2.3")
}

func TestCombosCommand_ListsEmbeddedCatalog(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "combos")
	require.NoError(t, err)

	cat, err := catalog.Default()
	require.NoError(t, err)
	for _, combo := range cat.All() {
		require.Contains(t, out, combo.ID)
	}
	require.True(t, strings.HasPrefix(out, "ID"))
}

func TestCombosCommand_ReadsConfiguredFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "combos.json")
	content := `{"combos":[{"id":"custom","name":"Custom","requestSkeleton":{"plot_request":{"plots":[]}}}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SIMURG_COMBOS_FILE", path)

	out, err := execute(t, "combos")
	require.NoError(t, err)
	require.Contains(t, out, "custom")
	require.NotContains(t, out, "map2d")
}

func TestCoordinatesCommand(t *testing.T) {
	isolateEnv(t)
	_, server := newFakeServer(t)

	dir := t.TempDir()
	obs := filepath.Join(dir, "site.17o")
	nav := filepath.Join(dir, "site.17n")
	require.NoError(t, os.WriteFile(obs, []byte("OBS"), 0o644))
	require.NoError(t, os.WriteFile(nav, []byte("NAV"), 0o644))

	out, err := execute(t, "--api-url", server.URL, "coordinates", "--obs", obs, "--nav", nav)
	require.NoError(t, err)

	var result model.CoordinatesResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.True(t, result.Valid)
	require.Equal(t, [3]float64{1.5, 2.5, 3.5}, result.Coordinates)
}

func TestCoordinatesCommand_RequiresBothFiles(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "--api-url", "http://127.0.0.1:1", "coordinates", "--obs", "site.17o")

	var verrs form.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("navFile"))
	require.False(t, verrs.Has("obsFile"))
}

func TestCoordinatesCommand_MissingAPIURL(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "coordinates", "--obs", "a.17o", "--nav", "a.17n")
	require.ErrorIs(t, err, config.ErrMissingAPIURL)
}

func TestPlotCommand_DownloadsResult(t *testing.T) {
	isolateEnv(t)
	fs, server := newFakeServer(t)
	outDir := t.TempDir()

	out, err := execute(t, "--api-url", server.URL, "plot",
		"--combo", "map2d", "--date", "2024-01-02", "--time", "10:30", "--file-name", "tec", "--out", outDir)
	require.NoError(t, err)
	require.Contains(t, out, "Request: req-1")
	require.EqualValues(t, 1, fs.created.Load())

	body, _ := fs.lastPlotBody.Load().(string)
	require.Contains(t, body, `"timestamp":"2024-01-02T10:30"`)
	require.Contains(t, body, `"file_name":"tec"`)

	data, err := os.ReadFile(filepath.Join(outDir, "req-1.png"))
	require.NoError(t, err)
	require.Equal(t, "PNG", string(data))
}

func TestPlotCommand_ValidatesForm(t *testing.T) {
	isolateEnv(t)
	fs, server := newFakeServer(t)

	_, err := execute(t, "--api-url", server.URL, "plot", "--combo", "map2d", "--date", "2024-01-02")

	var verrs form.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("time"))
	require.Zero(t, fs.created.Load())
}

func TestPlotCommand_UnknownCombo(t *testing.T) {
	isolateEnv(t)
	_, server := newFakeServer(t)

	_, err := execute(t, "--api-url", server.URL, "plot",
		"--combo", "nope", "--date", "2024-01-02", "--time", "10:30", "--out", t.TempDir())
	require.ErrorIs(t, err, catalog.ErrComboNotFound)
}

func TestPlotCommand_PollingFailure(t *testing.T) {
	isolateEnv(t)
	fs, server := newFakeServer(t)
	fs.progress = func() (int, string) { return http.StatusInternalServerError, `{"detail":"boom"}` }
	outDir := t.TempDir()

	_, err := execute(t, "--api-url", server.URL, "plot",
		"--combo", "map2d", "--date", "2024-01-02", "--time", "10:30", "--out", outDir)
	require.ErrorIs(t, err, ErrPollingStopped)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestArchiveCommand_DownloadsSelectedArtifacts(t *testing.T) {
	isolateEnv(t)
	fs, server := newFakeServer(t)
	outDir := t.TempDir()

	out, err := execute(t, "--api-url", server.URL, "archive",
		"--combo", "map2d", "--date", "2024-01-02", "--start", "10:00", "--end", "11:00",
		"--interval", "600", "--animation=false", "--out", outDir)
	require.NoError(t, err)
	require.Contains(t, out, "Saved: "+filepath.Join(outDir, "req-1.zip"))
	require.NotContains(t, out, ".gif")

	body, _ := fs.lastPlotBody.Load().(string)
	require.Contains(t, body, `"start_time":"2024-01-02T10:00"`)
	require.Contains(t, body, `"end_time":"2024-01-02T11:00"`)
	require.Contains(t, body, `"interval_seconds":600`)

	_, err = os.Stat(filepath.Join(outDir, "req-1.gif"))
	require.True(t, os.IsNotExist(err))
}

func TestArchiveCommand_RejectsZeroInterval(t *testing.T) {
	isolateEnv(t)
	_, server := newFakeServer(t)

	_, err := execute(t, "--api-url", server.URL, "archive",
		"--combo", "map2d", "--date", "2024-01-02", "--start", "10:00", "--end", "11:00")

	var verrs form.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("intervalSeconds"))
}
