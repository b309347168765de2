package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
)

type fakeChatAgent struct {
	plans   catalogx.Catalog
	reply   string
	queries []string
}

func (f *fakeChatAgent) EnsureCatalog(ctx context.Context) catalogx.Catalog {
	return f.plans
}

func (f *fakeChatAgent) Recommend(ctx context.Context, userText string) string {
	f.queries = append(f.queries, userText)
	return f.reply
}

func TestRunChatLoop(t *testing.T) {
	t.Parallel()

	agent := &fakeChatAgent{
		plans: catalogx.Catalog{{Name: "5G Start", Price: 65, Features: []string{}}},
		reply: "Go with 5G Start.",
	}
	in := strings.NewReader("I need hotspot\n\n   \nQUIT\nnever read\n")
	var out bytes.Buffer

	if err := runChat(context.Background(), agent, in, &out); err != nil {
		t.Fatalf("runChat() error = %v", err)
	}

	if len(agent.queries) != 1 || agent.queries[0] != "I need hotspot" {
		t.Fatalf("unexpected queries: %#v", agent.queries)
	}
	got := out.String()
	if !strings.Contains(got, "Go with 5G Start.") {
		t.Fatalf("reply missing from output:\n%s", got)
	}
	if strings.Count(got, "Please enter a valid request.") != 2 {
		t.Fatalf("expected two blank-input prompts:\n%s", got)
	}
	if !strings.Contains(got, "Goodbye!") {
		t.Fatalf("expected goodbye:\n%s", got)
	}
}

func TestRunChatEndsOnEOF(t *testing.T) {
	t.Parallel()

	agent := &fakeChatAgent{plans: catalogx.Catalog{{Name: "A", Features: []string{}}}}
	if err := runChat(context.Background(), agent, strings.NewReader(""), &bytes.Buffer{}); err != nil {
		t.Fatalf("runChat() error = %v", err)
	}
}

func TestRunChatNoPlans(t *testing.T) {
	t.Parallel()

	agent := &fakeChatAgent{plans: catalogx.Catalog{}}
	err := runChat(context.Background(), agent, strings.NewReader("hi\n"), &bytes.Buffer{})
	if !errors.Is(err, errNoPlans) {
		t.Fatalf("runChat() error = %v, want errNoPlans", err)
	}
	if len(agent.queries) != 0 {
		t.Fatal("no recommendation expected without plans")
	}
}
