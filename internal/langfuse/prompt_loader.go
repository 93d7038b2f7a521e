package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// PromptLoaderConfig describes how to load a policy prompt from Langfuse
// or a local fallback file.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	// FallbackPath is a local text file used when Langfuse is unreachable
	// or not configured. Empty means no local fallback.
	FallbackPath string
}

var errLangfuseDisabled = errors.New("langfuse integration disabled")

// LoadPrompt retrieves a text prompt from Langfuse with an optional local
// fallback. An empty return with nil error means no override is configured
// and the caller should use its built-in default.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	if cfg.PromptName == "" {
		return readPromptFromFile(cfg.FallbackPath)
	}

	if prompt, err := fetchPromptFromLangfuse(ctx, cfg); err == nil {
		return prompt, nil
	} else if !errors.Is(err, errLangfuseDisabled) {
		log.Warn().Err(err).Str("prompt", cfg.PromptName).Msg("langfuse prompt fetch failed")
	}

	return readPromptFromFile(cfg.FallbackPath)
}

func fetchPromptFromLangfuse(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return "", errLangfuseDisabled
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.PromptName)
	query := parsed.Query()
	if cfg.PromptLabel != "" {
		query.Set("label", cfg.PromptLabel)
	}
	parsed.RawQuery = query.Encode()

	requestCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call Langfuse prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("Langfuse prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var promptResp struct {
		Type   string          `json:"type"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&promptResp); err != nil {
		return "", fmt.Errorf("decode Langfuse prompt response: %w", err)
	}

	// Only text prompts can serve as a system policy.
	if promptResp.Type != "" && promptResp.Type != "text" {
		return "", fmt.Errorf("unsupported prompt type %q", promptResp.Type)
	}

	var textPrompt string
	if err := json.Unmarshal(promptResp.Prompt, &textPrompt); err != nil {
		return "", fmt.Errorf("parse text prompt: %w", err)
	}
	return textPrompt, nil
}

func readPromptFromFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}
