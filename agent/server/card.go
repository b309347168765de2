package server

// AgentCard describes the agent at /.well-known/agent.json.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	Skills             []AgentSkill      `json:"skills"`
}

type AgentCapabilities struct {
	Streaming bool `json:"streaming"`
}

type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

func NewAgentCard(cfg Config) AgentCard {
	return AgentCard{
		Name:               cfg.Name,
		Description:        "AI agent that scrapes the provider's current unlimited plans and recommends one based on your needs",
		URL:                cfg.PublicURL,
		Version:            cfg.Version,
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Capabilities:       AgentCapabilities{Streaming: false},
		Skills: []AgentSkill{
			{
				ID:          "recommend_plan",
				Name:        "Recommend Plan",
				Description: "Recommends the best mobile plan for the user's needs from the current scraped catalog",
				Tags:        []string{"plans", "recommendation", "ai", "scraping"},
				Examples: []string{
					"I need unlimited data and hotspot",
					"What plan is best for a family of 4?",
					"I want the cheapest plan with 5G",
					"Best plan for streaming videos?",
					"I need a plan with international calling",
				},
			},
		},
	}
}
