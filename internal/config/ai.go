package config

import (
	"fmt"
	"os"
	"time"
)

// Narrative providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NarrativeConfig holds the language-model settings for report narratives
type NarrativeConfig struct {
	Provider    string        `koanf:"provider" json:"provider"` // openai, gemini, or empty for fallback only
	APIKey      string        `koanf:"api_key" json:"-"`         // Never serialize
	BaseURL     string        `koanf:"base_url" json:"baseUrl"`
	Model       string        `koanf:"model" json:"model"`
	Timeout     time.Duration `koanf:"timeout" json:"timeout"`
	MaxTokens   int           `koanf:"max_tokens" json:"maxTokens"`
	Temperature float32       `koanf:"temperature" json:"temperature"`
	CacheSize   int           `koanf:"cache_size" json:"cacheSize"` // LRU entries for generated narratives
}

// DefaultNarrativeConfig returns the default narrative configuration
func DefaultNarrativeConfig() NarrativeConfig {
	return NarrativeConfig{
		Timeout:     20 * time.Second,
		MaxTokens:   1500,
		Temperature: 0.7,
		CacheSize:   512,
	}
}

// IsEnabled returns true if a provider and key are configured
func (c *NarrativeConfig) IsEnabled() bool {
	return c.Provider != "" && c.ResolvedAPIKey() != ""
}

// ResolvedAPIKey falls back to the provider's conventional env var
func (c *NarrativeConfig) ResolvedAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Provider {
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

// ResolvedModel returns the configured model or the provider default
func (c *NarrativeConfig) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOpenAI:
		return getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini")
	case ProviderGemini:
		return getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash")
	}
	return ""
}

// Validate rejects unknown providers
func (c *NarrativeConfig) Validate() error {
	switch c.Provider {
	case "", ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%w: unknown narrative provider %q", ErrInvalidConfig, c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: narrative.timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// DeliveryConfig holds the email and PDF settings for report delivery
type DeliveryConfig struct {
	SendGridAPIKey string        `koanf:"sendgrid_api_key" json:"-"`
	SendGridURL    string        `koanf:"sendgrid_url" json:"sendgridUrl"`
	FromEmail      string        `koanf:"from_email" json:"fromEmail"`
	FromName       string        `koanf:"from_name" json:"fromName"`
	Subject        string        `koanf:"subject" json:"subject"`
	Timeout        time.Duration `koanf:"timeout" json:"timeout"`
	PDFEnabled     bool          `koanf:"pdf_enabled" json:"pdfEnabled"`
	PDFTimeout     time.Duration `koanf:"pdf_timeout" json:"pdfTimeout"`
	ChromePath     string        `koanf:"chrome_path" json:"chromePath"` // Empty uses chromedp's lookup
}

// DefaultDeliveryConfig returns the default delivery configuration
func DefaultDeliveryConfig() DeliveryConfig {
	return DeliveryConfig{
		SendGridURL: "https://api.sendgrid.com/v3/mail/send",
		FromEmail:   "info@nblkconsulting.com",
		FromName:    "NBLK",
		Subject:     "Your Initial Diagnostic Results Are In. Let's Keep Building",
		Timeout:     30 * time.Second,
		PDFEnabled:  true,
		PDFTimeout:  20 * time.Second,
	}
}

// IsSimulated reports whether sends should be simulated for lack of a key
func (c *DeliveryConfig) IsSimulated() bool {
	return c.ResolvedAPIKey() == ""
}

// ResolvedAPIKey falls back to SENDGRID_API_KEY
func (c *DeliveryConfig) ResolvedAPIKey() string {
	if c.SendGridAPIKey != "" {
		return c.SendGridAPIKey
	}
	return os.Getenv("SENDGRID_API_KEY")
}

// Validate checks timeouts and sender
func (c *DeliveryConfig) Validate() error {
	if c.Timeout <= 0 || c.PDFTimeout <= 0 {
		return fmt.Errorf("%w: delivery timeouts must be positive", ErrInvalidConfig)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("%w: delivery.from_email must not be empty", ErrInvalidConfig)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
