package llm

import (
	"context"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// googleClient implements Client over the Gemini API using the official
// google.golang.org/genai SDK.
type googleClient struct {
	client *genai.Client
	model  string
}

func newGoogleClient(apiKey, model, baseURL string) (*googleClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, eris.Wrap(err, "llm: create google client")
	}
	return &googleClient{client: client, model: model}, nil
}

func (c *googleClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: google completion")
	}
	return resp.Text(), nil
}
