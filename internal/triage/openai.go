package triage

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are an expert medical triage assistant.
Analyze symptoms and recommend ONE specialty only.
Detect emergencies.
Never diagnose or prescribe.

Respond exactly in this format:

SPECIALTY: [One specialty]
URGENCY: [Low / Moderate / High / Emergency]
RECOMMENDATION: [1-2 sentences, simple language]
EMERGENCY_ADVICE: [Strong warning if needed, else "None"]`

// completionAPI is the slice of the OpenAI client the classifier needs.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClassifier calls the OpenAI chat completion API to recommend a
// specialty for a symptom description.
type OpenAIClassifier struct {
	client completionAPI
	model  string
}

// NewOpenAIClassifier constructs an OpenAI-backed classifier. Returns nil if
// no API key is configured; callers treat a nil classifier as unavailable.
func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClassifier{client: openai.NewClient(apiKey), model: model}
}

// Classify sends the symptoms to the model and parses the structured reply.
func (c *OpenAIClassifier) Classify(ctx context.Context, symptoms string) (Result, error) {
	if c == nil || c.client == nil {
		return Result{}, errors.New("triage: classifier not configured")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Symptoms: " + symptoms},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return Result{}, fmt.Errorf("triage: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, errors.New("triage: empty completion response")
	}
	return parseResult(resp.Choices[0].Message.Content), nil
}
