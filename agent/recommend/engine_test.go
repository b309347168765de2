package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
)

type fakeCompleter struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestEngine(t *testing.T, completer contractx.Completer) *Engine {
	t.Helper()

	engine, err := NewEngine(completer, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func scenarioPlans() catalogx.Catalog {
	return catalogx.Catalog{
		{Name: "5G Start", Price: 65, Features: []string{"5G access", "Hotspot"}},
		{Name: "5G Play More", Price: 80, Features: []string{"5G access", "50GB hotspot", "Disney+"}},
	}
}

func TestEngineRecommendHotspotScenario(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "5G Play More gives you 50GB of hotspot for your laptop."}
	engine := newTestEngine(t, completer)

	got := engine.Recommend(context.Background(), "I need hotspot for my laptop", scenarioPlans())
	if got != completer.reply {
		t.Fatalf("unexpected reply: %q", got)
	}
	if completer.calls != 1 {
		t.Fatalf("expected completer called once, got %d", completer.calls)
	}

	prompt := completer.prompts[0]
	for _, part := range []string{
		"I need hotspot for my laptop",
		"5G Start: $65/month",
		"5G Play More: $80/month",
	} {
		if !strings.Contains(prompt, part) {
			t.Fatalf("prompt missing %q:\n%s", part, prompt)
		}
	}
}

func TestEngineRecommendFallsBackOnCompleterError(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{err: errors.Join(contractx.ErrModelInvoke, errors.New("401 invalid api key"))}
	engine := newTestEngine(t, completer)

	got := engine.Recommend(context.Background(), "cheap plan", scenarioPlans())
	if got != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", got)
	}
}

func TestEngineRecommendReturnsRawText(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "  **raw** markdown\n"}
	got := newTestEngine(t, completer).Recommend(context.Background(), "x", scenarioPlans())
	if got != "  **raw** markdown\n" {
		t.Fatalf("reply was altered: %q", got)
	}
}

func TestNewEngineRequiresCompleter(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine(nil, zerolog.Nop()); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("NewEngine(nil) error = %v, want ErrValidation", err)
	}
}
