package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/convbench"
	"github.com/fwojciec/convbench/openai"
	"github.com/spf13/viper"
)

// Config holds the command-line configuration of a run.
type Config struct {
	InputFile     string
	OutputFile    string
	ResponsesFile string
	ModelProvider string
	ProviderArgs  []string
	Attempts      int
	GenWorkers    int
	EvalWorkers   int
	RawFile       string
	JudgeProvider string
	JudgeModel    string
	SaveResponses string
	RecordsFile   string
	JudgeCache    bool
	EnvFile       string
	LogLevel      string
	NoTUI         bool
}

// Configuration errors.
var (
	ErrNoProvider      = errors.New("you must specify a --model-provider if generating responses")
	ErrRawExtension    = errors.New("the --raw argument must specify a file with a .csv extension")
	ErrNoCredentials   = errors.New("no credentials configured")
	ErrBadProviderArgs = errors.New("invalid --provider-args")
)

// Validate checks flag combinations before any work starts.
func (c Config) Validate() error {
	if c.OutputFile == "" {
		return errors.New("--output-file is required")
	}
	if c.ResponsesFile == "" && c.ModelProvider == "" {
		return ErrNoProvider
	}
	if c.RawFile != "" && !strings.HasSuffix(strings.ToLower(c.RawFile), ".csv") {
		return ErrRawExtension
	}
	if c.Attempts < 1 {
		return fmt.Errorf("--attempts must be at least 1, got %d", c.Attempts)
	}
	if c.GenWorkers < 1 || c.EvalWorkers < 1 {
		return errors.New("worker counts must be at least 1")
	}
	return nil
}

// Credentials are the API keys and endpoints read from the environment.
type Credentials struct {
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	NexusflowAPIKey  string
	NexusflowBaseURL string
	HuggingFaceToken string
	GeminiAPIKey     string
}

var credentialKeys = []string{
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"NEXUSFLOW_API_KEY",
	"NEXUSFLOW_BASE_URL",
	"HUGGINGFACE_TOKEN",
	"GEMINI_API_KEY",
}

// LoadCredentials reads credentials from the process environment and the
// dotenv file at envFile. Values in the file take precedence. A missing file
// is not an error.
func LoadCredentials(envFile string, getenv func(string) string) (Credentials, error) {
	v := viper.New()
	for _, key := range credentialKeys {
		v.SetDefault(key, getenv(key))
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Credentials{}, fmt.Errorf("error reading env file %s: %w", envFile, err)
		}
	}

	return Credentials{
		OpenAIAPIKey:     v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:    v.GetString("OPENAI_BASE_URL"),
		NexusflowAPIKey:  v.GetString("NEXUSFLOW_API_KEY"),
		NexusflowBaseURL: v.GetString("NEXUSFLOW_BASE_URL"),
		HuggingFaceToken: v.GetString("HUGGINGFACE_TOKEN"),
		GeminiAPIKey:     v.GetString("GEMINI_API_KEY"),
	}, nil
}

// Resolve returns the API key and base URL for a backend and model.
// For the openai backend the model name selects the credential pair.
func (c Credentials) Resolve(backend, model string) (apiKey, baseURL string, err error) {
	switch backend {
	case "openai":
		switch {
		case strings.Contains(model, "gpt"):
			apiKey, baseURL = c.OpenAIAPIKey, c.OpenAIBaseURL
		case strings.Contains(model, "Nexusflow") || strings.Contains(model, "Qwen"):
			apiKey, baseURL = c.NexusflowAPIKey, c.NexusflowBaseURL
		default:
			return "", "", fmt.Errorf("%w for openai model %q", ErrNoCredentials, model)
		}
		if apiKey == "" {
			return "", "", fmt.Errorf("%w: API key for openai model %q is not set", ErrNoCredentials, model)
		}
	case "huggingface":
		if c.HuggingFaceToken == "" {
			return "", "", fmt.Errorf("%w: HUGGINGFACE_TOKEN is not set", ErrNoCredentials)
		}
		apiKey, baseURL = c.HuggingFaceToken, openai.HuggingFaceBaseURL
	case "gemini":
		if c.GeminiAPIKey == "" {
			return "", "", fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrNoCredentials)
		}
		apiKey = c.GeminiAPIKey
	}
	return apiKey, baseURL, nil
}

// ParseProviderArgs turns key=value pairs into a ProviderConfig.
// Recognised keys: model (alias model_path), temp, top_p, max_tokens, base_url.
func ParseProviderArgs(args []string) (convbench.ProviderConfig, error) {
	var cfg convbench.ProviderConfig
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: %q is not in key=value format", ErrBadProviderArgs, arg)
		}
		switch key {
		case "model", "model_path":
			cfg.Model = value
		case "temp":
			f, err := parseFloat32(value)
			if err != nil {
				return cfg, fmt.Errorf("%w: temp: %w", ErrBadProviderArgs, err)
			}
			cfg.Temperature = &f
		case "top_p":
			f, err := parseFloat32(value)
			if err != nil {
				return cfg, fmt.Errorf("%w: top_p: %w", ErrBadProviderArgs, err)
			}
			cfg.TopP = &f
		case "max_tokens":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return cfg, fmt.Errorf("%w: max_tokens must be a positive integer, got %q", ErrBadProviderArgs, value)
			}
			cfg.MaxTokens = n
		case "base_url":
			cfg.BaseURL = value
		default:
			return cfg, fmt.Errorf("%w: unknown key %q", ErrBadProviderArgs, key)
		}
	}
	return cfg, nil
}

func parseFloat32(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

// withCredentials fills the API key and, unless already set, the base URL.
func withCredentials(cfg convbench.ProviderConfig, creds Credentials, backend string) (convbench.ProviderConfig, error) {
	apiKey, baseURL, err := creds.Resolve(backend, cfg.Model)
	if err != nil {
		return cfg, err
	}
	cfg.APIKey = apiKey
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	return cfg, nil
}

// ensureParentDir creates the directory that will hold path.
func ensureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// parseLogLevel parses debug, info, warn or error.
func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: %w", s, err)
	}
	return level, nil
}
