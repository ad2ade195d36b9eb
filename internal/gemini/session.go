// Package gemini adapts the Gemini API to the mediator's neutral session
// types. All genai wire details stay behind this package.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/kjstillabower/trip-planner-service/internal/mediator"
)

// Client creates chat sessions against one Gemini model with the weather tool
// declared.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client using API-key auth.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini model name is required")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// NewSession starts a fresh chat. Each plan request gets its own session; the
// mediator never interleaves two tool loops over one session.
func (c *Client) NewSession(ctx context.Context) (mediator.Session, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{weatherTool()},
	}
	chat, err := c.client.Chats.Create(ctx, c.model, config, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return &Session{chat: chat}, nil
}

// Session is one Gemini chat, implementing mediator.Session.
type Session struct {
	chat *genai.Chat
}

// SendText sends a user text message and returns the neutral response.
func (s *Session) SendText(ctx context.Context, text string) (*mediator.Response, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return toResponse(resp), nil
}

// SendToolResult sends a structured function response for the named tool and
// returns the model's follow-up.
func (s *Session) SendToolResult(ctx context.Context, name string, result map[string]any) (*mediator.Response, error) {
	part := genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			Name:     name,
			Response: result,
		},
	}
	resp, err := s.chat.SendMessage(ctx, part)
	if err != nil {
		return nil, fmt.Errorf("send function response: %w", err)
	}
	return toResponse(resp), nil
}

// toResponse maps a genai response to the mediator's neutral form. Responses
// with no candidates or no content map to an empty response, which downstream
// code treats as "no final text".
func toResponse(resp *genai.GenerateContentResponse) *mediator.Response {
	out := &mediator.Response{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil {
			continue
		}
		if p.FunctionCall != nil {
			out.Parts = append(out.Parts, mediator.Part{
				Call: &mediator.ToolCall{
					Name: p.FunctionCall.Name,
					Args: p.FunctionCall.Args,
				},
			})
			continue
		}
		if p.Text != "" {
			out.Parts = append(out.Parts, mediator.Part{Text: p.Text})
		}
	}
	return out
}
