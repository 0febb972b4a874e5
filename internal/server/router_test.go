package server

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resuralph/internal/commands"
	"resuralph/internal/discord"
	"resuralph/internal/pdf"
	"resuralph/internal/ratelimit"
	"resuralph/internal/resumes"
	"resuralph/internal/shared/config"
)

type captureDispatcher struct {
	dispatched []*discord.Interaction
	err        error
}

func (d *captureDispatcher) Dispatch(_ context.Context, in *discord.Interaction) error {
	if d.err != nil {
		return d.err
	}
	d.dispatched = append(d.dispatched, in)
	return nil
}

type testEnv struct {
	router     *gin.Engine
	priv       ed25519.PrivateKey
	dispatcher *captureDispatcher
	store      *resumes.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	store := resumes.NewStore(resumes.NewMemoryRepo())
	deps := &commands.Deps{
		Resumes: store,
		PDF:     pdf.NewService(),
		Limiter: ratelimit.NewLimiter(store),
	}
	dispatcher := &captureDispatcher{}
	srv := &Server{
		Registry:   commands.NewRegistry(deps),
		Dispatcher: dispatcher,
	}

	cfg := config.Config{Env: "dev", DiscordPublicKey: hex.EncodeToString(pub)}
	return &testEnv{
		router:     NewRouter(cfg, srv),
		priv:       priv,
		dispatcher: dispatcher,
		store:      store,
	}
}

func (e *testEnv) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	timestamp := "1700000000"
	sig := ed25519.Sign(e.priv, append([]byte(timestamp), []byte(body)...))

	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", timestamp)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) discord.Response {
	t.Helper()
	var resp discord.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, w.Body.String())
	}
	return resp
}

func TestInteractionsPing(t *testing.T) {
	e := newTestEnv(t)
	w := e.post(t, `{"type":1}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decodeResponse(t, w); resp.Type != discord.ResponsePong {
		t.Errorf("type = %d, want pong", resp.Type)
	}
}

func TestInteractionsRejectsUnsigned(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(`{"type":1}`))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestInteractionsSyncCommand(t *testing.T) {
	e := newTestEnv(t)
	body := `{"type":2,"application_id":"app","token":"tok","member":{"user":{"id":"u1","username":"jane"}},"data":{"name":"hello"}}`

	w := e.post(t, body)
	resp := decodeResponse(t, w)
	if resp.Type != discord.ResponseChannelMessage {
		t.Fatalf("type = %d, want channel message", resp.Type)
	}
	if resp.Data.Content != "Hello there!" {
		t.Errorf("content = %q", resp.Data.Content)
	}
	if len(e.dispatcher.dispatched) != 0 {
		t.Error("sync command was dispatched")
	}
}

func TestInteractionsAsyncCommandDefers(t *testing.T) {
	e := newTestEnv(t)
	body := `{"type":2,"application_id":"app","token":"tok","member":{"user":{"id":"u1"}},"data":{"name":"ai_review"}}`

	w := e.post(t, body)
	resp := decodeResponse(t, w)
	if resp.Type != discord.ResponseDeferredMessage {
		t.Fatalf("type = %d, want deferred", resp.Type)
	}
	if len(e.dispatcher.dispatched) != 1 {
		t.Fatalf("dispatched %d jobs, want 1", len(e.dispatcher.dispatched))
	}
	if e.dispatcher.dispatched[0].CommandName() != "ai_review" {
		t.Errorf("dispatched command = %q", e.dispatcher.dispatched[0].CommandName())
	}
}

func TestInteractionsAsyncMissingToken(t *testing.T) {
	e := newTestEnv(t)
	body := `{"type":2,"member":{"user":{"id":"u1"}},"data":{"name":"update"}}`

	w := e.post(t, body)
	resp := decodeResponse(t, w)
	if resp.Type != discord.ResponseChannelMessage {
		t.Fatalf("type = %d", resp.Type)
	}
	if len(resp.Data.Embeds) != 1 || resp.Data.Embeds[0].Description != "Missing required Discord interaction data." {
		t.Errorf("data = %+v", resp.Data)
	}
	if len(e.dispatcher.dispatched) != 0 {
		t.Error("malformed interaction was dispatched")
	}
}

func TestInteractionsUnknownCommand(t *testing.T) {
	e := newTestEnv(t)
	body := `{"type":2,"application_id":"app","token":"tok","member":{"user":{"id":"u1"}},"data":{"name":"frobnicate"}}`

	w := e.post(t, body)
	resp := decodeResponse(t, w)
	if resp.Data.Content != "Command 'frobnicate' is not implemented yet." {
		t.Errorf("content = %q", resp.Data.Content)
	}
}

func TestInteractionsDispatchFailure(t *testing.T) {
	e := newTestEnv(t)
	e.dispatcher.err = context.DeadlineExceeded

	body := `{"type":2,"application_id":"app","token":"tok","member":{"user":{"id":"u1"}},"data":{"name":"update"}}`
	w := e.post(t, body)
	resp := decodeResponse(t, w)
	if resp.Data.Content != commands.GenericErrorMessage {
		t.Errorf("content = %q", resp.Data.Content)
	}
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
