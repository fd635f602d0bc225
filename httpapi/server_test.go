package httpapi_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/describe"
	"github.com/katalvlaran/structviz/httpapi"
	"github.com/katalvlaran/structviz/observability"
	"github.com/katalvlaran/structviz/session"
)

func newServer(t *testing.T, opts ...httpapi.Option) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Animation = config.AnimationConfig{}

	return newServerWith(t, cfg, opts...)
}

func newServerWith(t *testing.T, cfg *config.Config, opts ...httpapi.Option) *httptest.Server {
	t.Helper()
	sess, err := session.New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(httpapi.New(sess, opts...).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

func TestListStructures(t *testing.T) {
	srv := newServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/api/structures", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	infos := decode[[]session.Info](t, resp)
	assert.Len(t, infos, 14)

	_, err := uuid.Parse(resp.Header.Get(httpapi.RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newServer(t)
	id := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/structures/stack", nil)
	require.NoError(t, err)
	req.Header.Set(httpapi.RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(httpapi.RequestIDHeader))
}

func TestApplyAndUndo(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/structures/stack/ops", `{"op":"push","args":["42"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[session.Outcome](t, resp)
	assert.False(t, out.Ignored)
	assert.True(t, out.CanUndo)
	assert.NotEmpty(t, out.Frames)

	resp = do(t, http.MethodPost, srv.URL+"/api/structures/stack/undo", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decode[httpapi.HistoryResponse](t, resp)
	assert.True(t, hist.Moved)
	assert.True(t, hist.View.CanRedo)
	assert.Equal(t, []any{10.0, 20.0, 30.0}, hist.View.State)
}

func TestApplyIgnoredIntentIsOK(t *testing.T) {
	srv := newServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/structures/heap/ops", `{"op":"insert","args":["x"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[session.Outcome](t, resp)
	assert.True(t, out.Ignored)
	assert.Contains(t, out.Reason, "invalid arguments")
}

func TestErrorStatuses(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/structures/skiplist", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/structures/stack/ops", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/complexity?n=99", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/structures/stack", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestInfoFallsBack(t *testing.T) {
	provider := describe.NewProvider(nil)
	srv := newServer(t, httpapi.WithDescriber(provider))
	resp := do(t, http.MethodGet, srv.URL+"/api/structures/trie/info", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	info := decode[describe.Info](t, resp)
	assert.True(t, info.IsFallback())
}

func TestComplexityEndpoints(t *testing.T) {
	srv := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/complexity?n=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[httpapi.ComplexityResponse](t, resp)
	assert.Equal(t, 5, body.N)
	assert.NotEmpty(t, body.Counts)
	assert.NotEmpty(t, body.Cards)

	resp = do(t, http.MethodGet, srv.URL+"/complexity", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestMetricsEndpoint(t *testing.T) {
	m := observability.NewMetrics()
	cfg := config.Default()
	sess, err := session.New(cfg, session.WithMetrics(m))
	require.NoError(t, err)
	srv := httptest.NewServer(httpapi.New(sess, httpapi.WithMetrics(m)).Handler())
	defer srv.Close()

	do(t, http.MethodPost, srv.URL+"/api/structures/queue/ops", `{"op":"dequeue"}`)
	resp := do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `structviz_operations_total{op="dequeue",outcome="applied",structure="queue"} 1`)
}

func readEvent(t *testing.T, r *bufio.Reader) httpapi.PlayEvent {
	t.Helper()
	line, err := r.ReadBytes('\n')
	require.NoError(t, err)
	var ev httpapi.PlayEvent
	require.NoError(t, json.Unmarshal(line, &ev))

	return ev
}

func TestPlayStreamsFrames(t *testing.T) {
	srv := newServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/structures/heap/play", `{"op":"insert","args":["1"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-ndjson", resp.Header.Get("Content-Type"))

	br := bufio.NewReader(resp.Body)
	var notes []string
	for {
		ev := readEvent(t, br)
		if ev.Outcome != nil {
			assert.False(t, ev.Outcome.Ignored)
			assert.Empty(t, ev.Outcome.Frames)
			break
		}
		require.NotNil(t, ev.Frame)
		notes = append(notes, ev.Frame.Note)
	}
	assert.Equal(t, []string{"append 1", "swap 1 and 20", "swap 1 and 10", "swap 1 and 4", "1 settled at index 0"}, notes)
}

func TestPlayIgnoredAndUnknown(t *testing.T) {
	srv := newServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/structures/heap/play", `{"op":"explode"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ev := readEvent(t, bufio.NewReader(resp.Body))
	require.NotNil(t, ev.Outcome)
	assert.True(t, ev.Outcome.Ignored)

	resp = do(t, http.MethodPost, srv.URL+"/api/structures/skiplist/play", `{"op":"insert","args":["1"]}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayHoldsStructureBusy(t *testing.T) {
	cfg := config.Default()
	cfg.Animation = config.AnimationConfig{SwapDelay: 100 * time.Millisecond, SettleDelay: 500 * time.Millisecond}
	srv := newServerWith(t, cfg)

	resp := do(t, http.MethodPost, srv.URL+"/api/structures/heap/play", `{"op":"insert","args":["1"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	br := bufio.NewReader(resp.Body)
	first := readEvent(t, br)
	require.NotNil(t, first.Frame)

	view := do(t, http.MethodGet, srv.URL+"/api/structures/heap", "")
	assert.True(t, decode[session.View](t, view).Busy)

	second := do(t, http.MethodPost, srv.URL+"/api/structures/heap/ops", `{"op":"insert","args":["0"]}`)
	assert.Equal(t, http.StatusConflict, second.StatusCode)
	undo := do(t, http.MethodPost, srv.URL+"/api/structures/heap/undo", "")
	assert.Equal(t, http.StatusConflict, undo.StatusCode)

	// other structures are not blocked
	other := do(t, http.MethodPost, srv.URL+"/api/structures/stack/ops", `{"op":"push","args":["1"]}`)
	assert.Equal(t, http.StatusOK, other.StatusCode)

	for ev := readEvent(t, br); ev.Outcome == nil; ev = readEvent(t, br) {
		require.Empty(t, ev.Error)
	}

	after := do(t, http.MethodPost, srv.URL+"/api/structures/heap/ops", `{"op":"insert","args":["0"]}`)
	assert.Equal(t, http.StatusOK, after.StatusCode)
}
