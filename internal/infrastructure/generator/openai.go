package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"starcast/internal/bootstrap/config"
	"starcast/internal/domain/horoscope"
	"starcast/internal/ports"
)

// OpenAI adapts the chat-completions API to the Generator port. The model is
// asked for a single JSON object; anything else is a generator failure the
// usecase recovers from.
type OpenAI struct {
	client      openai.Client
	model       string
	temperature float64
	configured  bool
}

var _ ports.Generator = (*OpenAI)(nil)

func NewOpenAI(cfg config.GeneratorConfig) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		configured:  strings.TrimSpace(cfg.APIKey) != "",
	}
}

func (o *OpenAI) Generate(ctx context.Context, system, user string) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if !o.configured {
		return nil, horoscope.ErrGeneratorNotConfigured
	}

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(o.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion: %w", horoscope.ErrGeneratorFailed, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: chat completion returned no choices", horoscope.ErrGeneratorFailed)
	}

	fields, err := parseFields(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: parse completion content: %w", horoscope.ErrGeneratorFailed, err)
	}
	return fields, nil
}

// parseFields decodes the model output into flat string fields. Models
// occasionally emit numbers (lucky_number in particular); those are kept.
// Nested values and nulls are dropped so shaping falls back to defaults.
func parseFields(content string) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			fields[key] = strconv.FormatBool(v)
		}
	}
	return fields, nil
}
