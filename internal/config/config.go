// ABOUTME: Centralized configuration for the portfolio backend
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// LLM providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// DefaultCORSOrigins are the local frontend dev servers.
var DefaultCORSOrigins = []string{
	"http://localhost:3111",
	"http://localhost:3333",
	"http://127.0.0.1:3111",
	"http://127.0.0.1:3333",
}

// Config holds all configuration for the portfolio backend
type Config struct {
	// HTTP settings
	Addr           string
	CORSOrigins    []string
	TrustedProxies []netip.Prefix

	// Storage settings
	StorageBackend string
	MongoURI       string
	MongoDatabase  string
	MemorySeedFile string

	// Admin auth
	AdminEmail    string
	AdminPassword string
	JWTSecret     string
	JWTExpiry     time.Duration

	// LLM settings
	LLMProvider          string
	GoogleAPIKey         string
	GeminiBaseURL        string
	GeminiChatModel      string
	GeminiEmbeddingModel string
	OpenAIKey            string
	OpenAIBaseURL        string
	OpenAIChatModel      string
	OpenAIEmbeddingModel string
	EmbeddingTimeout     time.Duration
	SearchTimeout        time.Duration
	CompletionTimeout    time.Duration
	CompletionMaxRetries int
	RetryDelay           time.Duration

	// Retrieval settings
	TopK              int
	CandidateFactor   int
	ParallelRetrieval bool

	// Rate limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ChatRateLimit int

	// Persona
	PersonaFile string
	Persona     Persona

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Addr:                 listenAddr(),
		CORSOrigins:          getEnvList("CORS_ALLOWED_ORIGINS", DefaultCORSOrigins),
		StorageBackend:       getEnv("STORAGE_BACKEND", BackendMongo),
		MongoURI:             os.Getenv("MONGODB_URI"),
		MongoDatabase:        getEnv("MONGODB_DATABASE", "portfolio"),
		MemorySeedFile:       os.Getenv("MEMORY_SEED_FILE"),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTExpiry:            getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		LLMProvider:          getEnv("LLM_PROVIDER", ProviderGemini),
		GoogleAPIKey:         os.Getenv("GOOGLE_API_KEY"),
		GeminiBaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiChatModel:      getEnv("GEMINI_CHAT_MODEL", "gemini-2.5-flash"),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
		OpenAIKey:            os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:        os.Getenv("OPENAI_BASE_URL"),
		OpenAIChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingTimeout:     getEnvDuration("EMBEDDING_TIMEOUT", 5*time.Second),
		SearchTimeout:        getEnvDuration("SEARCH_TIMEOUT", 5*time.Second),
		CompletionTimeout:    getEnvDuration("COMPLETION_TIMEOUT", 30*time.Second),
		CompletionMaxRetries: getEnvInt("COMPLETION_MAX_RETRIES", 1),
		RetryDelay:           getEnvDuration("RETRY_DELAY", 500*time.Millisecond),
		TopK:                 getEnvInt("RAG_TOP_K", 3),
		CandidateFactor:      getEnvInt("RAG_CANDIDATE_FACTOR", 10),
		ParallelRetrieval:    getEnvBool("RAG_PARALLEL_RETRIEVAL", true),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		ChatRateLimit:        getEnvInt("CHAT_RATE_LIMIT", 20),
		PersonaFile:          os.Getenv("PERSONA_FILE"),
		Persona:              PersonaFromEnv(),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
	}

	proxies, err := parsePrefixes(splitList(os.Getenv("TRUSTED_PROXIES")))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	cfg.TrustedProxies = proxies

	if cfg.JWTSecret == "" && cfg.AdminPassword != "" {
		cfg.JWTSecret = "portfolio-jwt-secret-" + cfg.AdminPassword
	}

	if cfg.PersonaFile != "" {
		persona, err := LoadPersonaFile(cfg.PersonaFile, cfg.Persona)
		if err != nil {
			return nil, err
		}
		cfg.Persona = persona
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendMongo, BackendMemory, c.StorageBackend)
	}
	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLMProvider)
	}
	if c.TopK < 1 || c.TopK > 20 {
		return fmt.Errorf("RAG_TOP_K must be 1-20, got %d", c.TopK)
	}
	if c.CandidateFactor < 1 {
		return fmt.Errorf("RAG_CANDIDATE_FACTOR must be at least 1, got %d", c.CandidateFactor)
	}
	if c.CompletionMaxRetries < 0 || c.CompletionMaxRetries > 5 {
		return fmt.Errorf("COMPLETION_MAX_RETRIES must be 0-5, got %d", c.CompletionMaxRetries)
	}
	if c.EmbeddingTimeout <= 0 || c.SearchTimeout <= 0 || c.CompletionTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.ChatRateLimit < 1 {
		return fmt.Errorf("CHAT_RATE_LIMIT must be at least 1, got %d", c.ChatRateLimit)
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive, got %v", c.JWTExpiry)
	}
	return nil
}

// RequireServe checks the settings the HTTP server cannot start without.
func (c *Config) RequireServe() error {
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	return c.RequireStorage()
}

// RequireStorage checks the settings needed to open the configured store.
func (c *Config) RequireStorage() error {
	if c.StorageBackend == BackendMongo && c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI must be set when STORAGE_BACKEND=%s", BackendMongo)
	}
	return nil
}

// RequireLLM checks that the selected provider has a credential.
func (c *Config) RequireLLM() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY must be set when LLM_PROVIDER=%s", ProviderGemini)
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY must be set when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	}
	return nil
}

func listenAddr() string {
	if v := os.Getenv("ADDR"); v != "" {
		return v
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8000"
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return splitList(v)
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parsePrefixes accepts bare IPs (as single-host prefixes) and CIDRs.
func parsePrefixes(items []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range items {
		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, err
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, err
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
