package main

import (
	"fmt"

	orchestratorx "github.com/tanpawarit/plan-advisor/agent/agents/orchestrator"
	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
	llmx "github.com/tanpawarit/plan-advisor/agent/llm"
	recommendx "github.com/tanpawarit/plan-advisor/agent/recommend"
	scraperx "github.com/tanpawarit/plan-advisor/agent/scraper"
	configx "github.com/tanpawarit/plan-advisor/pkg/config"
	groqx "github.com/tanpawarit/plan-advisor/pkg/groq"
	logx "github.com/tanpawarit/plan-advisor/pkg/logger"
)

// newAgent loads configuration and wires store, scraper and engine into a
// plan agent. The logger is initialised first so later failures are logged
// in the configured format.
func newAgent(envFile string) (*orchestratorx.Agent, error) {
	logCfg, err := configx.New[logx.Config]("LOG", envFile)
	if err != nil {
		return nil, err
	}
	logx.Init(*logCfg)

	storeCfg, err := configx.New[catalogx.StoreConfig]("STORE", envFile)
	if err != nil {
		return nil, err
	}
	store, err := catalogx.NewStore(*storeCfg)
	if err != nil {
		return nil, fmt.Errorf("create catalog store: %w", err)
	}

	scraperCfg, err := configx.New[scraperx.Config]("SCRAPER", envFile)
	if err != nil {
		return nil, err
	}
	scraper, err := scraperx.NewFromConfig(*scraperCfg, logx.Component("scraper"))
	if err != nil {
		return nil, fmt.Errorf("create scraper: %w", err)
	}

	llmCfg, err := configx.New[llmx.Config]("GROQ", envFile)
	if err != nil {
		return nil, err
	}
	if err := llmCfg.Validate(); err != nil {
		return nil, err
	}
	completer, err := recommendx.NewChatCompleter(groqx.NewClient(llmCfg.Client()), llmCfg.Model, llmCfg.Temperature)
	if err != nil {
		return nil, fmt.Errorf("create completer: %w", err)
	}
	engine, err := recommendx.NewEngine(completer, logx.Component("recommend"))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	return orchestratorx.New(store, scraper, engine, logx.Component("agent"))
}
