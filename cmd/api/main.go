// Evida Coach API
//
// LLM-backed health coaching over wearable data.
//
//	@title			Evida Coach API
//	@version		1.0
//	@description	Chat with a health coach grounded in wearable metrics, demo personas and coaching-call context.
//
//	@BasePath	/
//
//	@tag.name			chat
//	@tag.description	Coaching chat and feedback endpoints
//
//	@tag.name			personas
//	@tag.description	Demo persona catalog endpoints
//
//	@tag.name			upload
//	@tag.description	Wearable export upload endpoints
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/evida/coach-api/internal/api"
	"github.com/evida/coach-api/internal/api/handler"
	"github.com/evida/coach-api/internal/config"
	"github.com/evida/coach-api/internal/langfuse"
	"github.com/evida/coach-api/internal/llm"
	"github.com/evida/coach-api/internal/meeting"
	"github.com/evida/coach-api/internal/persona"
	"github.com/evida/coach-api/internal/prompt"
	"github.com/evida/coach-api/internal/service"
	"github.com/evida/coach-api/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg := config.Load()

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx := context.Background()

	// Initialize OpenTelemetry (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "coach-api")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}
	defer shutdownTracer(ctx)

	// Langfuse ingestion client for traces and feedback scores
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// System policy override: Langfuse prompt management first, local file
	// as fallback, built-in default when neither is configured.
	systemPolicy, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:      cfg.LangfuseBaseURL,
		PublicKey:    cfg.LangfusePublicKey,
		SecretKey:    cfg.LangfuseSecretKey,
		PromptName:   os.Getenv("LANGFUSE_SYSTEM_POLICY_PROMPT"),
		PromptLabel:  os.Getenv("LANGFUSE_SYSTEM_POLICY_LABEL"),
		FallbackPath: cfg.SystemPolicyFile,
	})
	if err != nil {
		log.Warn().Err(err).Msg("System policy override unavailable, using default")
	}

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIMaxTokens)
	if openaiClient == nil {
		log.Warn().Msg("OpenAI API key not configured, chat endpoint will return 503")
	}

	// Meeting-context client with TTL cache (nil when not configured)
	var meetingClient meeting.Client
	if httpClient := meeting.NewHTTPClient(cfg.MeetingsBaseURL); httpClient != nil {
		meetingClient = meeting.NewCachingClient(httpClient, cfg.MeetingCacheSize, cfg.MeetingCacheTTL)
	} else {
		log.Info().Msg("Meeting context service not configured")
	}

	// Initialize services
	summaryService := service.NewSummaryService()
	coachService := service.NewCoachService(openaiClient, prompt.NewStaticProvider(systemPolicy))
	personaStore := persona.NewStore(cfg.PersonaDataDir)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(summaryService, coachService, meetingClient, langfuseClient)
	personaHandler := handler.NewPersonaHandler(personaStore, summaryService)
	uploadHandler := handler.NewUploadHandler(summaryService)
	feedbackHandler := handler.NewFeedbackHandler(langfuseClient)

	// Setup router
	router := api.NewRouter(chatHandler, personaHandler, uploadHandler, feedbackHandler, cfg.CORSOrigins)

	// Start server
	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("Starting server")
	if err := http.ListenAndServe(addr, router.Setup()); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
