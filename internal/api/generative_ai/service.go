package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"
)

// AIClient wraps the Gemini client with the configured model.
type AIClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

func NewAIClient(ctx context.Context, model string, logger *slog.Logger) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		err := fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, err
	}

	return &AIClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// GenerateResponse sends a single prompt and returns the model's raw text.
// Exactly one call per invocation; retries are the caller's decision.
func (ai *AIClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateResponse")
	defer span.End()
	span.SetAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.model),
	)

	interactionID := uuid.New()
	l := ai.logger.With(slog.String("interaction_id", interactionID.String()))
	l.DebugContext(ctx, "Sending prompt to model", slog.Int("prompt_length", len(prompt)))

	chat, err := ai.client.Chats.Create(ctx, ai.model, config, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create chat")
		return "", fmt.Errorf("failed to create chat: %w", err)
	}

	result, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Model call failed")
		return "", fmt.Errorf("model call failed: %w", err)
	}

	txt := result.Text()
	if txt == "" {
		err := fmt.Errorf("no valid content in model response")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response")
		return "", err
	}

	l.DebugContext(ctx, "Model responded", slog.Int("response_length", len(txt)))
	return txt, nil
}
