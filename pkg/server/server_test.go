package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenvanduocit/tradutor/pkg/controller"
	"github.com/nguyenvanduocit/tradutor/pkg/session"
	"github.com/nguyenvanduocit/tradutor/pkg/translator"
	"github.com/nguyenvanduocit/tradutor/pkg/view"
)

type stubTranslator struct {
	reply   string
	prompts []string
}

func (s *stubTranslator) Translate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, nil
}

func newTestServer(t *testing.T, settings session.Settings, stub *stubTranslator) (*controller.Controller, func(method, path, body string) (int, view.Model)) {
	store := session.NewStore(session.NewState(settings))
	ctrl := controller.New(context.Background(), store, func(apiKey string) (translator.Translator, error) {
		return stub, nil
	}, controller.Options{})
	app := New(ctrl)

	do := func(method, path, body string) (int, view.Model) {
		var r io.Reader
		if body != "" {
			r = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, r)
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var m view.Model
		_ = json.NewDecoder(resp.Body).Decode(&m)
		return resp.StatusCode, m
	}
	return ctrl, do
}

func TestStateAndSettingsRoutes(t *testing.T) {
	_, do := newTestServer(t, session.DefaultSettings(), &stubTranslator{})

	code, m := do(http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, session.English, m.Source)
	assert.Equal(t, session.Portuguese, m.Target)
	assert.Equal(t, 14, m.FontSize)
	assert.False(t, m.HasAPIKey)

	_, m = do(http.MethodPost, "/api/theme", "")
	assert.Equal(t, session.Dark, m.Theme)
	assert.Equal(t, "light_mode", m.ThemeIcon)

	_, m = do(http.MethodPost, "/api/font-size", `{"size": 42}`)
	assert.Equal(t, 30, m.FontSize)

	_, m = do(http.MethodPost, "/api/tab", `{"index": 2}`)
	assert.Equal(t, 2, m.Tab)

	code, _ = do(http.MethodPost, "/api/tab", `{"index": 7}`)
	assert.Equal(t, http.StatusBadRequest, code)

	_, m = do(http.MethodPost, "/api/languages", `{"source": "es", "target": "en"}`)
	assert.Equal(t, session.Spanish, m.Source)
	assert.Equal(t, session.English, m.Target)

	code, _ = do(http.MethodPost, "/api/languages", `{"source": "de", "target": "en"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	_, m = do(http.MethodPost, "/api/voice", "")
	assert.Equal(t, "Voice input not implemented yet", m.Notification.Message)

	_, m = do(http.MethodPost, "/api/file", `{"name": "scan.png"}`)
	assert.Equal(t, "Selected file: scan.png", m.Notification.Message)

	code, _ = do(http.MethodPost, "/api/file", `{"name": "scan.gif"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(http.MethodPost, "/api/input", `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSendFlow(t *testing.T) {
	stub := &stubTranslator{reply: "Olá mundo"}
	ctrl, do := newTestServer(t, session.DefaultSettings(), stub)

	_, m := do(http.MethodPost, "/api/input", `{"text": "Hello world"}`)
	assert.Equal(t, "Hello world", m.Preview)

	_, m = do(http.MethodPost, "/api/send", "")
	assert.Equal(t, "Please enter your Groq API Key", m.Notification.Message)
	assert.Empty(t, stub.prompts)

	_, m = do(http.MethodPost, "/api/api-key", `{"key": "gsk_abc"}`)
	assert.True(t, m.HasAPIKey)
	assert.Equal(t, "API Key saved!", m.Notification.Message)

	_, m = do(http.MethodPost, "/api/send", "")
	assert.True(t, m.Pending)
	ctrl.Wait()

	_, m = do(http.MethodGet, "/api/state", "")
	assert.False(t, m.Pending)
	assert.Equal(t, "Olá mundo", m.Preview)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "Hello world")
}

func TestPage(t *testing.T) {
	settings := session.DefaultSettings()
	settings.APIKey = "gsk_hidden"
	store := session.NewStore(session.NewState(settings))
	ctrl := controller.New(context.Background(), store, nil, controller.Options{})

	resp, err := New(ctrl).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), view.Title)
	assert.NotContains(t, string(body), "gsk_hidden")
}

func TestSendReplyIsOlderThanCompletion(t *testing.T) {
	settings := session.DefaultSettings()
	settings.APIKey = "gsk_abc"
	ctrl, do := newTestServer(t, settings, &stubTranslator{reply: "Olá mundo"})

	do(http.MethodPost, "/api/input", `{"text": "Hello world"}`)
	_, sent := do(http.MethodPost, "/api/send", "")
	ctrl.Wait()
	_, done := do(http.MethodGet, "/api/state", "")

	assert.True(t, sent.Pending)
	assert.Equal(t, "Hello world", sent.Preview)
	assert.False(t, done.Pending)
	assert.Equal(t, "Olá mundo", done.Preview)
	assert.Less(t, sent.Revision, done.Revision)
}

func readEvent(t *testing.T, r *bufio.Reader) view.Model {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var m view.Model
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &m))
		return m
	}
}

func TestEventStream(t *testing.T) {
	settings := session.DefaultSettings()
	settings.APIKey = "gsk_abc"
	store := session.NewStore(session.NewState(settings))
	stub := &stubTranslator{reply: "Olá mundo"}
	ctrl := controller.New(context.Background(), store, func(apiKey string) (translator.Translator, error) {
		return stub, nil
	}, controller.Options{})
	app := New(ctrl)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	defer func() { _ = app.ShutdownWithTimeout(time.Second) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	r := bufio.NewReader(resp.Body)
	first := readEvent(t, r)
	assert.Equal(t, uint64(0), first.Revision)
	assert.Empty(t, first.Preview)

	ctrl.OnInputChanged("Hello world")
	typed := readEvent(t, r)
	assert.Equal(t, uint64(1), typed.Revision)
	assert.Equal(t, "Hello world", typed.Preview)

	ctrl.OnSend()
	ctrl.Wait()

	var last view.Model
	for last.Revision < 3 {
		last = readEvent(t, r)
	}
	assert.Equal(t, uint64(3), last.Revision)
	assert.False(t, last.Pending)
	assert.Equal(t, "Olá mundo", last.Preview)
	assert.Contains(t, string(last.PreviewHTML), "Olá mundo")
}
