package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type LLMProvider string

const (
	ProviderOpenAI    LLMProvider = "openai"
	ProviderAnthropic LLMProvider = "anthropic"
	ProviderYandex    LLMProvider = "yandex"
)

// Server configures the relay process.
type Server struct {
	Host     string `env:"BRIDGE_HOST" envDefault:"127.0.0.1"`
	Port     int    `env:"BRIDGE_PORT" envDefault:"5555"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"45s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	MaxBodyBytes   int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	ShutdownGrace  time.Duration `env:"SHUTDOWN_GRACE" envDefault:"5s"`

	// Status reporter; empty disables it.
	StatusReportSchedule string `env:"STATUS_REPORT_SCHEDULE"`

	// Listeners; each is enabled only when configured.
	TranscriptPath   string `env:"TRANSCRIPT_PATH"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
	TelegramBuffer   int    `env:"TELEGRAM_BUFFER" envDefault:"64"`
}

func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s Server) TelegramEnabled() bool {
	return s.TelegramBotToken != "" && s.TelegramChatID != 0
}

// Client configures programs that talk to a running relay.
type Client struct {
	BridgeURL     string        `env:"BRIDGE_URL" envDefault:"http://127.0.0.1:5555"`
	BridgeTimeout time.Duration `env:"BRIDGE_TIMEOUT" envDefault:"30s"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"INFO"`

	// Agent the MCP server speaks for when a tool call omits one.
	Agent string `env:"BRIDGE_AGENT" envDefault:"claude"`
}

// LLM configures the prompt-forwarding CLIs.
type LLM struct {
	// GPT side
	GPTProvider   LLMProvider `env:"GPT_PROVIDER" envDefault:"openai"`
	GPTModel      string      `env:"GPT_MODEL" envDefault:"gpt-4"`
	OpenAIAPIKey  string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string      `env:"OPENAI_BASE_URL"`

	// Claude side, through Anthropic's OpenAI-compatible endpoint
	ClaudeModel      string `env:"CLAUDE_MODEL" envDefault:"claude-opus-4-5-20251101"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com/v1"`

	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	APITimeout  time.Duration `env:"API_TIMEOUT" envDefault:"120s"`
	MaxTokens   int           `env:"MAX_TOKENS" envDefault:"4096"`
	Temperature float32       `env:"TEMPERATURE" envDefault:"0.7"`
}

// Load parses the environment into a new T.
func Load[T Server | Client | LLM]() (*T, error) {
	cfg := new(T)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv copies .env (or the named files) into the process environment.
// Variables that are already set win. A missing file is fine; a file that
// exists but does not parse is an error.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
