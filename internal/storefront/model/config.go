package model

// ================ Config ================
type StorageConfig struct {
	Backend    string `envconfig:"STORAGE_BACKEND" default:"sqlite"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"storefront.db"`
}

type CartConfig struct {
	Namespace string `envconfig:"CART_NAMESPACE" default:"brbshop"`
	TTL       string `envconfig:"CART_TTL" default:"720h"`
}

type CurrencyConfig struct {
	Locale string `envconfig:"CURRENCY_LOCALE" default:"bn-BD"`
}

type AssistantConfig struct {
	APIKey       string  `envconfig:"GEMINI_API_KEY"`
	BaseURL      string  `envconfig:"GEMINI_BASE_URL"`
	Model        string  `envconfig:"ASSISTANT_MODEL" default:"gemini-2.5-flash"`
	MaxTokens    int     `envconfig:"ASSISTANT_MAX_TOKENS" default:"2000"`
	Temperature  float32 `envconfig:"ASSISTANT_TEMPERATURE" default:"0.4"`
	ToolMaxCalls int     `envconfig:"ASSISTANT_TOOL_MAX_CALLS" default:"6"`
	HistoryTurns int     `envconfig:"ASSISTANT_HISTORY_TURNS" default:"10"`
}
