package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/plasma-remote/pkg/api/types"
	"github.com/urmzd/plasma-remote/pkg/assistant"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/clock"
	"github.com/urmzd/plasma-remote/pkg/db"
	"github.com/urmzd/plasma-remote/pkg/remote"
	"github.com/urmzd/plasma-remote/pkg/scanner"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

type stubInterpreter struct {
	intent assistant.Intent
}

func (s stubInterpreter) Interpret(context.Context, assistant.Request) (assistant.Intent, error) {
	return s.intent, nil
}

type testEnv struct {
	router     *Router
	dispatcher *remote.Dispatcher
	clock      *clock.Mock
	database   *db.DB
	profileID  int64
	manager    *bridge.Manager
}

func newTestEnv(t *testing.T, interp assistant.Interpreter) *testEnv {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open(filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate(ctx))
	require.NoError(t, database.Bootstrap(ctx))
	cfg, err := database.ActiveConfig(ctx)
	require.NoError(t, err)
	profileID := cfg.ProfileID()

	c := clock.NewMock(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC))
	manager := bridge.NewManager()
	t.Cleanup(func() { _ = manager.Close() })

	d := remote.NewDispatcher(remote.WithClock(c), remote.WithSender(manager))
	t.Cleanup(d.Close)

	lineup := channels.Default()
	settings := database.Settings()
	save := func(ctx context.Context, protocol string) error {
		if err := settings.Set(ctx, profileID, db.SettingIRProtocol, protocol); err != nil {
			return err
		}
		d.SetProtocol(protocol)
		return nil
	}
	scan := scanner.New(c, 0, func(p string) error {
		return d.Dispatch(tv.KeyPower, remote.WithProtocol(p))
	}, save)

	router := NewRouter(Deps{
		Dispatcher:    d,
		Shortcuts:     remote.NewShortcuts(database.Shortcuts(), profileID, d),
		Bridge:        manager,
		BridgeConfigs: database.BridgeConfigs(),
		Profiles:      database.Profiles(),
		Scanner:       scan,
		SaveProtocol:  save,
		Lineup:        lineup,
		Assistant:     assistant.New(interp, d, lineup, database.History(), profileID),
		ProfileID:     profileID,
		Discover: func(context.Context, time.Duration) ([]bridge.Candidate, error) {
			return []bridge.Candidate{{Instance: "tasmota-ir", IP: "192.168.1.50", Port: 80, Kind: "tasmota"}}, nil
		},
	})

	return &testEnv{
		router:     router,
		dispatcher: d,
		clock:      c,
		database:   database,
		profileID:  profileID,
		manager:    manager,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := env.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[types.HealthResponse](t, w)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "disabled", resp.Bridge)
		assert.Equal(t, "unavailable", resp.Assistant)
		assert.False(t, resp.Power)
	}
}

func TestRequestIDHeader(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	env.router.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestPressKey(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/remote/keys/POWER", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.StateResponse](t, w)
	assert.True(t, resp.State.IsOn)
	require.NotNil(t, resp.Notification)

	w = env.do(t, http.MethodPost, "/api/v1/remote/keys/VOL_UP?protocol=sam_plasma_a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 16, decode[types.StateResponse](t, w).State.Volume)

	w = env.do(t, http.MethodPost, "/api/v1/remote/keys/JUMP", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_key", decode[types.ErrorResponse](t, w).Error)
}

func TestDigitEntryThroughAPI(t *testing.T) {
	env := newTestEnv(t, nil)

	env.do(t, http.MethodPost, "/api/v1/remote/keys/POWER", nil)
	env.do(t, http.MethodPost, "/api/v1/remote/keys/1", nil)
	w := env.do(t, http.MethodPost, "/api/v1/remote/keys/5", nil)
	resp := decode[types.StateResponse](t, w)
	assert.Equal(t, "15", resp.Entry.Buffer)
	assert.Equal(t, 1, resp.State.Channel)

	env.clock.Advance(2 * time.Second)

	w = env.do(t, http.MethodGet, "/api/v1/remote/state", nil)
	resp = decode[types.StateResponse](t, w)
	assert.Equal(t, 15, resp.State.Channel)
	assert.False(t, resp.Entry.Pending)
}

func TestListKeys(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/v1/remote/keys", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.ListKeysResponse](t, w)
	assert.Equal(t, len(tv.Keys()), resp.Count)
	assert.Equal(t, tv.KeyPower, resp.Keys[0].Key)
}

func TestZap(t *testing.T) {
	env := newTestEnv(t, nil)
	env.do(t, http.MethodPost, "/api/v1/remote/keys/POWER", nil)

	w := env.do(t, http.MethodPost, "/api/v1/remote/zap", types.ZapRequest{Number: 7})
	require.Equal(t, http.StatusAccepted, w.Code)
	resp := decode[types.ZapResponse](t, w)
	assert.Equal(t, "Arte", resp.Zap.Name)
	assert.Equal(t, 1, resp.Zap.Total)

	env.clock.Advance(time.Second)
	assert.Equal(t, 7, env.dispatcher.State().Channel)

	w = env.do(t, http.MethodPost, "/api/v1/remote/zap", `{"number": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShortcutsCRUD(t *testing.T) {
	env := newTestEnv(t, nil)
	env.do(t, http.MethodPost, "/api/v1/remote/keys/POWER", nil)

	w := env.do(t, http.MethodPut, "/api/v1/shortcuts/3", types.AssignShortcutRequest{Number: 13, Name: "LCP"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 13, decode[types.ShortcutResponse](t, w).Shortcut.Number)

	w = env.do(t, http.MethodGet, "/api/v1/shortcuts", nil)
	list := decode[types.ListShortcutsResponse](t, w)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, tv.Key3, list.Shortcuts[0].Key)

	w = env.do(t, http.MethodPost, "/api/v1/shortcuts/3/activate", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	env.clock.Advance(2 * time.Second)
	assert.Equal(t, 13, env.dispatcher.State().Channel)

	w = env.do(t, http.MethodPut, "/api/v1/shortcuts/MENU", types.AssignShortcutRequest{Number: 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/shortcuts/3", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/shortcuts/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/shortcuts/3/activate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBridgeConfig(t *testing.T) {
	env := newTestEnv(t, nil)
	var hits []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.RawQuery)
	}))
	defer srv.Close()

	w := env.do(t, http.MethodGet, "/api/v1/bridge", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[types.BridgeResponse](t, w).Active)

	w = env.do(t, http.MethodPut, "/api/v1/bridge", bridge.Config{
		Enabled: true,
		URL:     srv.URL + "/cm?cmnd=IRSend%20{PROTOCOL}%20{KEY}",
		Method:  "get",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[types.BridgeResponse](t, w)
	assert.True(t, resp.Active)
	assert.Equal(t, http.MethodGet, resp.Bridge.Method)
	assert.True(t, env.manager.Enabled())

	stored, err := env.database.BridgeConfigs().Get(context.Background(), env.profileID)
	require.NoError(t, err)
	assert.True(t, stored.Enabled)

	env.do(t, http.MethodPost, "/api/v1/remote/keys/MUTE", nil)
	env.manager.Wait()
	require.Len(t, hits, 1)
	assert.Equal(t, "cmnd=IRSend%20sam_legacy_1%20MUTE", hits[0])
}

func TestBridgeConfigValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing url", `{"enabled": true}`},
		{"unknown field", `{"enabled": true, "bridge_url": "http://x", "extra": 1}`},
		{"bad method", `{"enabled": true, "bridge_url": "http://x", "method": "PUT"}`},
		{"bad scheme", `{"enabled": true, "bridge_url": "ftp://x/{KEY}"}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPut, "/api/v1/bridge", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.False(t, env.manager.Enabled())
}

func TestBridgePresetsAndDiscover(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/v1/bridge/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	presets := decode[types.PresetsResponse](t, w)
	assert.NotEmpty(t, presets.Presets)
	assert.NotEmpty(t, presets.Sounds)

	w = env.do(t, http.MethodGet, "/api/v1/bridge/discover?timeout=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[types.DiscoverResponse](t, w).Count)

	w = env.do(t, http.MethodGet, "/api/v1/bridge/discover?timeout=99", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtocols(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/v1/protocols", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[types.ProtocolsResponse](t, w)
	assert.Equal(t, len(scanner.Protocols()), len(list.Protocols))
	assert.Equal(t, bridge.DefaultProtocol, list.Current)

	w = env.do(t, http.MethodPut, "/api/v1/protocol", types.SetProtocolRequest{Protocol: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/protocol", types.SetProtocolRequest{Protocol: "sam_plasma_a"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sam_plasma_a", decode[types.ProtocolResponse](t, w).Protocol)

	stored, err := env.database.Settings().Get(context.Background(), env.profileID, db.SettingIRProtocol)
	require.NoError(t, err)
	assert.Equal(t, "sam_plasma_a", stored)

	w = env.do(t, http.MethodGet, "/api/v1/protocols/brands?q=sam", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, decode[types.BrandsResponse](t, w).Count, 1)
}

func TestProtocolScan(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/protocols/scan/start", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	scan := decode[types.ScanResponse](t, w).Scan
	assert.True(t, scan.Running)

	// The first test signal toggled the simulated set on
	assert.True(t, env.dispatcher.State().IsOn)

	w = env.do(t, http.MethodPost, "/api/v1/protocols/scan/confirm", types.ConfirmScanRequest{Protocol: "sam_plasma_b"})
	require.Equal(t, http.StatusOK, w.Code)
	scan = decode[types.ScanResponse](t, w).Scan
	assert.False(t, scan.Running)
	assert.Equal(t, "sam_plasma_b", scan.Confirmed)
	assert.Equal(t, "sam_plasma_b", env.dispatcher.Protocol())

	w = env.do(t, http.MethodPost, "/api/v1/protocols/scan/confirm", types.ConfirmScanRequest{Protocol: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/protocols/scan", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChannels(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodGet, "/api/v1/channels?q=arte", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.ChannelsResponse](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, 7, resp.Channels[0].Number)

	w = env.do(t, http.MethodGet, "/api/v1/channels", nil)
	assert.Equal(t, channels.Default().Len(), decode[types.ChannelsResponse](t, w).Count)
}

func TestAssistantUnavailable(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/assistant/commands", types.CommandRequest{Text: "louder"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "assistant_unavailable", decode[types.ErrorResponse](t, w).Error)
}

func TestAssistantCommandAndHistory(t *testing.T) {
	channel := 2
	env := newTestEnv(t, stubInterpreter{intent: assistant.Intent{Channel: &channel, Reply: "France 2."}})
	env.do(t, http.MethodPost, "/api/v1/remote/keys/POWER", nil)

	w := env.do(t, http.MethodPost, "/api/v1/assistant/commands", types.CommandRequest{Text: "france 2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[types.CommandResponse](t, w).Outcome
	assert.Equal(t, "CH 2", out.Action)
	assert.Equal(t, "France 2.", out.Reply)
	assert.NotEmpty(t, out.ID)

	env.clock.Advance(time.Second)
	assert.Equal(t, 2, env.dispatcher.State().Channel)

	w = env.do(t, http.MethodPost, "/api/v1/assistant/commands", `{"text": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/assistant/history?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[types.HistoryResponse](t, w)
	require.Equal(t, 1, history.Count)
	assert.Equal(t, "france 2", history.Entries[0].Text)
	assert.Equal(t, "CH 2", history.Entries[0].Action)

	w = env.do(t, http.MethodGet, "/api/v1/assistant/history?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventsStreamStartsWithSnapshot(t *testing.T) {
	env := newTestEnv(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/remote/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	env.router.Handler().ServeHTTP(w, req)

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "event: snapshot\n"))
}

func TestWebSocket(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := httptest.NewServer(env.router.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/remote/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first map[string]any
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "snapshot", first["type"])

	require.NoError(t, conn.WriteJSON(types.SocketMessage{Key: "POWER"}))
	for {
		var evt remote.Event
		require.NoError(t, conn.ReadJSON(&evt))
		if evt.Type == remote.EventStateChanged {
			require.NotNil(t, evt.State)
			assert.True(t, evt.State.IsOn)
			break
		}
	}

	require.NoError(t, conn.WriteJSON(types.SocketMessage{Key: "JUMP"}))
	for {
		var frame map[string]any
		require.NoError(t, conn.ReadJSON(&frame))
		if frame["type"] == "error" {
			assert.Contains(t, frame["message"], "unknown key")
			break
		}
	}
}

func TestListProfiles(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.database.UseProfile(ctx, "bedroom")
	require.NoError(t, err)
	_, err = env.database.UseProfile(ctx, db.DefaultProfileName)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/v1/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[types.ProfilesResponse](t, w)
	require.Equal(t, 2, out.Count)

	// Ordered by name
	assert.Equal(t, "bedroom", out.Profiles[0].Name)
	assert.False(t, out.Profiles[0].Active)
	assert.Equal(t, db.DefaultProfileName, out.Profiles[1].Name)
	assert.True(t, out.Profiles[1].Active)
	assert.Equal(t, env.profileID, out.Profiles[1].ID)
}
