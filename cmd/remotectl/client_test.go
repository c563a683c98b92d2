package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

func TestClientPress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/remote/keys/POWER", r.URL.Path)
		assert.Equal(t, "sam_plasma_b", r.URL.Query().Get("protocol"))

		_ = json.NewEncoder(w).Encode(types.StateResponse{
			Snapshot: remote.Snapshot{
				State:    tv.State{IsOn: true, Channel: 1, Volume: 15},
				Protocol: "sam_plasma_b",
			},
		})
	}))
	defer srv.Close()

	out, err := newClient(srv.URL+"/").Press(context.Background(), "POWER", "sam_plasma_b")
	require.NoError(t, err)
	assert.True(t, out.State.IsOn)
	assert.Equal(t, "sam_plasma_b", out.Protocol)
}

func TestClientZapBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.ZapRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 15, req.Number)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(types.ZapResponse{Zap: remote.ZapStatus{Number: 15, Total: 3}})
	}))
	defer srv.Close()

	out, err := newClient(srv.URL).Zap(context.Background(), 15, "")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Zap.Total)
}

func TestClientErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: "assistant_unavailable", Message: "no interpreter"})
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Ask(context.Background(), "louder")
	require.Error(t, err)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "assistant_unavailable", apiErr.Body.Error)
	assert.Contains(t, err.Error(), "no interpreter")
}

func TestClientErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := newClient(srv.URL).ClearShortcut(context.Background(), "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestParseChannel(t *testing.T) {
	n, err := parseChannel("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		_, err := parseChannel(bad)
		assert.Error(t, err, bad)
	}
}

func TestPrintState(t *testing.T) {
	var buf bytes.Buffer
	err := printState(&buf, &types.StateResponse{
		Snapshot: remote.Snapshot{
			State:        tv.State{IsOn: true, Channel: 7, Volume: 20, IsMuted: true, Source: tv.Source("HDMI1")},
			Protocol:     "sam_legacy_1",
			Notification: &remote.Notification{Message: "Arte"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Power:    ON")
	assert.Contains(t, out, "Channel:  7")
	assert.Contains(t, out, "Volume:   20 (muted)")
	assert.Contains(t, out, "Message:  Arte")
}
