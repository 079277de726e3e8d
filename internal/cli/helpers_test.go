package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/statusboard/internal/config"
	"github.com/rileyhilliard/statusboard/internal/logger"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const (
	hostsBody = `{"results":[
		{"name":"A","type":"Host","attrs":{"state":1,"last_hard_state_change":1625140800}}
	]}`
	servicesBody = `{"results":[
		{"name":"B!C","type":"Service","attrs":{"state":2,"last_hard_state_change":1625140000}}
	]}`

	wantBoard = "* A\n" +
		"  DOWN since 2021-07-01 07:00:00 AM\n" +
		"* C @ B\n" +
		"  CRITICAL since 2021-07-01 06:46:40 AM\n"
)

// fakeAPI serves fixed bodies for the two monitoring endpoints.
type fakeAPI struct {
	services string
	hosts    string
	status   int
}

func (f fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		w.WriteHeader(f.status)
		w.Write([]byte(`{"error":401,"status":"Unauthorized."}`))
		return
	}
	switch r.URL.Path {
	case "/v1/objects/services":
		w.Write([]byte(f.services))
	case "/v1/objects/hosts":
		w.Write([]byte(f.hosts))
	default:
		http.NotFound(w, r)
	}
}

func newFakeAPI(t *testing.T, api fakeAPI) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.API.URL = url
	cfg.API.Username = "board"
	cfg.API.Password = "secret"
	return cfg
}

func testStack(t *testing.T, cfg *config.Config) *boardStack {
	t.Helper()
	require.NoError(t, config.Validate(cfg))
	stack, err := newStack(cfg, logger.Noop())
	require.NoError(t, err)
	return stack
}
