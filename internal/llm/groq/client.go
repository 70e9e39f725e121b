package groq

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Akhil21232123/hirematrix/internal/llm"
)

// Client talks to Groq through its OpenAI-compatible chat-completions API.
type Client struct {
	client *openai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.BaseURL

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		code := llm.ErrCodeServiceDown
		if errors.As(err, &apiErr) {
			switch apiErr.HTTPStatusCode {
			case 401, 403:
				code = llm.ErrCodeAPIKey
			case 429:
				code = llm.ErrCodeRateLimit
			}
		}
		return "", &llm.ProviderError{
			Provider: "groq",
			Code:     code,
			Message:  "Failed to generate completion",
			Err:      err,
		}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeMalformed,
			Message:  "Empty response generated",
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) GetProviderName() string {
	return "groq"
}
