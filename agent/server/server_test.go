package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
	"github.com/tanpawarit/plan-advisor/agent/server"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeAgent struct {
	mu         sync.Mutex
	plans      catalogx.Catalog
	reply      string
	ensures    int
	recommends int
	lastText   string
}

func (f *fakeAgent) EnsureCatalog(ctx context.Context) catalogx.Catalog {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensures++
	return f.plans.Clone()
}

func (f *fakeAgent) Recommend(ctx context.Context, userText string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recommends++
	f.lastText = userText
	return f.reply
}

func (f *fakeAgent) Plans() catalogx.Catalog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plans.Clone()
}

type rpcReply struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  *server.Message `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T, agent *fakeAgent) http.Handler {
	t.Helper()

	s, err := server.New(server.Config{
		Addr:      "127.0.0.1:0",
		PublicURL: "http://localhost:8000/",
		Name:      "Plan Assistant",
		Version:   "1.0.0",
	}, agent, zerolog.Nop())
	require.NoError(t, err)
	return s.Handler()
}

func postRPC(t *testing.T, h http.Handler, body string) rpcReply {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out rpcReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func messageSend(text string) string {
	payload, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind":      "message",
				"role":      "user",
				"messageId": "m-1",
				"parts":     []map[string]any{{"kind": "text", "text": text}},
			},
		},
	})
	return string(payload)
}

func scenarioPlans() catalogx.Catalog {
	return catalogx.Catalog{
		{Name: "5G Start", Price: 65, Features: []string{"5G access", "Hotspot"}},
		{Name: "5G Play More", Price: 80, Features: []string{"5G access", "50GB hotspot", "Disney+"}},
	}
}

func TestAgentCard(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeAgent{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, server.AgentCardPath, http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var card server.AgentCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "Plan Assistant", card.Name)
	assert.Equal(t, []string{"text"}, card.DefaultInputModes)
	assert.False(t, card.Capabilities.Streaming)
	require.Len(t, card.Skills, 1)
	assert.Equal(t, "recommend_plan", card.Skills[0].ID)
	assert.NotEmpty(t, card.Skills[0].Examples)
}

func TestMessageSendReturnsRecommendation(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{plans: scenarioPlans(), reply: "Take 5G Play More."}
	out := postRPC(t, newTestServer(t, agent), messageSend("I need hotspot for my laptop"))

	require.Nil(t, out.Error)
	require.NotNil(t, out.Result)
	assert.Equal(t, "2.0", out.JSONRPC)
	assert.JSONEq(t, "1", string(out.ID))
	assert.Equal(t, "agent", out.Result.Role)
	assert.NotEmpty(t, out.Result.MessageID)
	require.Len(t, out.Result.Parts, 1)
	assert.Equal(t, "Plan Recommendation:\n\nTake 5G Play More.\n\nBased on 2 available plans", out.Result.Parts[0].Text)
	assert.Equal(t, "I need hotspot for my laptop", agent.lastText)
}

func TestMessageSendBlankInputSkipsRecommendation(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{plans: scenarioPlans(), reply: "unused"}
	out := postRPC(t, newTestServer(t, agent), messageSend("   \n "))

	require.Nil(t, out.Error)
	require.NotNil(t, out.Result)
	assert.Equal(t, server.EmptyInputReply, out.Result.Text())
	assert.Equal(t, 0, agent.recommends)
	assert.Equal(t, 1, agent.ensures)
}

func TestTasksCancelIsRejected(t *testing.T) {
	t.Parallel()

	out := postRPC(t, newTestServer(t, &fakeAgent{}), `{"jsonrpc":"2.0","id":"c1","method":"tasks/cancel","params":{"id":"t1"}}`)

	require.NotNil(t, out.Error)
	assert.Nil(t, out.Result)
	assert.Equal(t, -32004, out.Error.Code)
	assert.Contains(t, out.Error.Message, "cancellation not supported")
}

func TestRPCErrors(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeAgent{})

	cases := map[string]struct {
		body string
		code int
	}{
		"malformed":      {body: `{"jsonrpc":`, code: -32700},
		"wrong version":  {body: `{"jsonrpc":"1.0","id":1,"method":"message/send"}`, code: -32600},
		"unknown method": {body: `{"jsonrpc":"2.0","id":1,"method":"tasks/get"}`, code: -32601},
		"bad params":     {body: `{"jsonrpc":"2.0","id":1,"method":"message/send","params":"oops"}`, code: -32602},
	}
	for name, tc := range cases {
		out := postRPC(t, h, tc.body)
		require.NotNil(t, out.Error, name)
		assert.Equal(t, tc.code, out.Error.Code, name)
	}
}

func TestRPCRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	agent := &fakeAgent{reply: "unused"}
	h := newTestServer(t, agent)

	out := postRPC(t, h, messageSend(strings.Repeat("a", 2<<20)))
	require.NotNil(t, out.Error)
	assert.Equal(t, -32600, out.Error.Code)
	assert.Equal(t, "request body too large", out.Error.Message)
	assert.Zero(t, agent.recommends)
}

func TestHealthReportsPlanCount(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, &fakeAgent{plans: scenarioPlans()})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","plans":2}`, w.Body.String())
}

func TestNewRequiresAgent(t *testing.T) {
	t.Parallel()

	_, err := server.New(server.Config{}, nil, zerolog.Nop())
	require.Error(t, err)
}
