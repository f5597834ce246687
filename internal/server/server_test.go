package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/types"
	"github.com/SHADABANWAR30/jabir-freshtouch-bot/pkg/logging"
)

type fakeResponder struct {
	sessionID string
	message   string
	reply     string
}

func (f *fakeResponder) Respond(_ context.Context, sessionID, message string) string {
	f.sessionID = sessionID
	f.message = message
	return f.reply
}

func newTestServer(responder Responder) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		cascade: responder,
		log:     logging.New("error"),
	}
	s.routes()
	return s
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeResponder{})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleChat(t *testing.T) {
	responder := &fakeResponder{reply: "Ahlan! I'm Jabir."}
	s := newTestServer(responder)

	body := strings.NewReader(`{"message": "hi", "sessionId": "s_test"}`)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ahlan! I'm Jabir.", resp.Reply)
	assert.Equal(t, "s_test", resp.SessionID)
	assert.Equal(t, "s_test", rec.Header().Get("X-Session-Id"))
	assert.Equal(t, "hi", responder.message)
	assert.Equal(t, "s_test", responder.sessionID)
}

func TestHandleChatCreatesSession(t *testing.T) {
	s := newTestServer(&fakeResponder{reply: "ok"})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hi"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	sid := rec.Header().Get("X-Session-Id")
	assert.True(t, strings.HasPrefix(sid, "s_"))

	// A cookie carrying the new session is set.
	res := rec.Result()
	defer res.Body.Close()
	var found bool
	for _, c := range res.Cookies() {
		if c.Name == CookieName && c.Value == sid {
			found = true
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestHandleChatReusesCookieSession(t *testing.T) {
	responder := &fakeResponder{reply: "ok"}
	s := newTestServer(responder)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hi"}`))
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "s_cookie"})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "s_cookie", responder.sessionID)
	assert.Equal(t, "s_cookie", rec.Header().Get("X-Session-Id"))
}

func TestHandleChatInvalidJSON(t *testing.T) {
	s := newTestServer(&fakeResponder{})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`not json`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid JSON body", resp.Error)
}

func TestHandleChatEmptyMessageStillOK(t *testing.T) {
	// The "please type a question" guidance is a success reply, not an error.
	responder := &fakeResponder{reply: "Please type a question about laundry, prices, pickup or offers 😊"}
	s := newTestServer(responder)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "   ", "sessionId": "s1"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "   ", responder.message)
}
