package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile and
// environment variables. Values in config files override defaults, including
// explicit zero values; missing keys are left at their default values.
type Config struct {
	Model   ModelConfig   `json:"model"`
	Provena ProvenaConfig `json:"provena"`
	Chat    ChatConfig    `json:"chat"`
}

// ModelConfig selects the LLM used to drive the chat loop.
type ModelConfig struct {
	Name string `json:"name"` // Default: "gemini-2.0-flash"
}

// ProvenaConfig identifies the target Provena deployment.
type ProvenaConfig struct {
	Domain    string          `json:"domain"`     // Default: "dev.rrap-is.com"
	Realm     string          `json:"realm"`      // Default: "rrap"
	ClientID  string          `json:"client_id"`  // Default: "provagent-client"
	TokenFile string          `json:"token_file"` // Default: "" (resolved under ~/.config/provagent)
	Endpoints EndpointsConfig `json:"endpoints"`
}

// EndpointsConfig carries per-service API endpoint overrides.
type EndpointsConfig struct {
	DatastoreAPI string `json:"datastore_api"`
	RegistryAPI  string `json:"registry_api"`
	ProvAPI      string `json:"prov_api"`
	SearchAPI    string `json:"search_api"`
	HandleAPI    string `json:"handle_api"`
	JobsAPI      string `json:"jobs_api"`
}

// ChatConfig holds the policy knobs of the tool-calling loop.
type ChatConfig struct {
	// MaxToolRounds bounds the model/tool-execution cycles per user turn.
	MaxToolRounds int `json:"max_tool_rounds"` // Default: 12

	// ResearchRelatedLimit caps how many related entities research_entity
	// fetches full details for.
	ResearchRelatedLimit int `json:"research_related_limit"` // Default: 100

	// CreatedByScanLimit caps how many listed items find_related_entities
	// inspects when resolving created-by relationships.
	CreatedByScanLimit int `json:"created_by_scan_limit"` // Default: 200

	// ConfirmPrefixes lists tool-name prefixes that require explicit user
	// confirmation before dispatch.
	ConfirmPrefixes []string `json:"confirm_prefixes"` // Default: ["create"]
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Name: "gemini-2.0-flash",
		},
		Provena: ProvenaConfig{
			Domain:   "dev.rrap-is.com",
			Realm:    "rrap",
			ClientID: "provagent-client",
			Endpoints: EndpointsConfig{
				DatastoreAPI: "https://data-api.dev.rrap-is.com",
				RegistryAPI:  "https://registry-api.dev.rrap-is.com",
				ProvAPI:      "https://prov-api.dev.rrap-is.com",
				SearchAPI:    "https://search.dev.rrap-is.com",
				HandleAPI:    "https://handle.dev.rrap-is.com",
				JobsAPI:      "https://job-api.dev.rrap-is.com",
			},
		},
		Chat: ChatConfig{
			MaxToolRounds:        12,
			ResearchRelatedLimit: 100,
			CreatedByScanLimit:   200,
			ConfirmPrefixes:      []string{"create"},
		},
	}
}
