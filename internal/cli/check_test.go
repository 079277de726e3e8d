package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAPI(t *testing.T) {
	srv := newFakeAPI(t, fakeAPI{services: servicesBody, hosts: hostsBody})
	stack := testStack(t, testConfig(srv.URL))

	var out bytes.Buffer
	require.NoError(t, checkAPI(context.Background(), &out, stack, time.Unix(1625150000, 0)))

	got := out.String()
	assert.Contains(t, got, "Checking "+srv.URL)
	assert.Contains(t, got, "Fetching services 1 problem ")
	assert.Contains(t, got, "Fetching hosts 1 problem ")
	assert.NotContains(t, got, "skipped")
	assert.Contains(t, got, wantBoard)
}

func TestCheckAPI_ReportsSkippedRecords(t *testing.T) {
	services := `{"results":[
		{"name":"B!C","type":"Service","attrs":{"state":2,"last_hard_state_change":0}},
		{"name":"no-separator","type":"Service","attrs":{"state":2}},
		{"name":"B!D","type":"Service","attrs":{"state":9}}
	]}`
	srv := newFakeAPI(t, fakeAPI{services: services, hosts: `{"results":[]}`})
	stack := testStack(t, testConfig(srv.URL))

	var out bytes.Buffer
	require.NoError(t, checkAPI(context.Background(), &out, stack, time.Now()))

	got := out.String()
	assert.Contains(t, got, "Fetching services 3 problems")
	assert.Contains(t, got, "Fetching hosts 0 problems")
	assert.Contains(t, got, "2 records skipped:")
	assert.Contains(t, got, `"no-separator": service name must be host!service`)
	assert.Contains(t, got, `"B!D": state 9 is not a valid service state`)
	assert.Contains(t, got, "* C @ B\n  CRITICAL since never\n")
}

func TestCheckAPI_Unauthorized(t *testing.T) {
	srv := newFakeAPI(t, fakeAPI{status: 401})
	stack := testStack(t, testConfig(srv.URL))

	var out bytes.Buffer
	err := checkAPI(context.Background(), &out, stack, time.Now())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetch))
	assert.Contains(t, err.Error(), "Monitoring API error")
	assert.Contains(t, err.Error(), "can read services")
	assert.Contains(t, out.String(), "Fetching services HTTP 401")
	assert.NotContains(t, out.String(), "Fetching hosts")
}

func TestCheckAPI_Unreachable(t *testing.T) {
	srv := newFakeAPI(t, fakeAPI{})
	url := srv.URL
	srv.Close()
	stack := testStack(t, testConfig(url))

	var out bytes.Buffer
	err := checkAPI(context.Background(), &out, stack, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Monitoring API unreachable")
}

func TestCheckAPI_NotJSON(t *testing.T) {
	srv := newFakeAPI(t, fakeAPI{services: "<html>", hosts: hostsBody})
	stack := testStack(t, testConfig(srv.URL))

	var out bytes.Buffer
	err := checkAPI(context.Background(), &out, stack, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not decode services")
	assert.Contains(t, out.String(), "unreadable response")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 problems", plural(0, "problem"))
	assert.Equal(t, "1 problem", plural(1, "problem"))
	assert.Equal(t, "12 records", plural(12, "record"))
}
