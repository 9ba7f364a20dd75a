package classifier

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIClient suggests a subcategory label for a description. Implementations
// return the suggestion verbatim; the classifier validates it before use.
type AIClient interface {
	SuggestCategory(ctx context.Context, description string, txType models.TransactionType, candidates []string) (string, error)
}

// GeminiClient implements AIClient against the Google Gemini API. The client
// is created lazily on first use so that a configured-but-unused classifier
// never opens a connection.
type GeminiClient struct {
	apiKey string
	model  string

	client *genai.Client
	gm     *genai.GenerativeModel
}

// NewGeminiClient returns a GeminiClient for the given API key and model
// name. An empty model defaults to gemini-1.0-pro.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-1.0-pro"
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

func (g *GeminiClient) ensureClient(ctx context.Context) error {
	if g.gm != nil {
		return nil
	}
	if g.apiKey == "" {
		return fmt.Errorf("gemini API key not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	g.gm = client.GenerativeModel(g.model)
	return nil
}

// SuggestCategory asks the model to pick one of the candidate subcategories
// for the description.
func (g *GeminiClient) SuggestCategory(ctx context.Context, description string, txType models.TransactionType, candidates []string) (string, error) {
	if err := g.ensureClient(ctx); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Categorize the following personal %s description:
%s

Please assign it to exactly one of the following subcategories:
%s

Respond in this format:
Category: [Selected Subcategory]`,
		txType, description, strings.Join(candidates, ", "))

	resp, err := g.gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return extractCategoryFromResponse(responseText, candidates), nil
}

// extractCategoryFromResponse parses the "Category: X" line out of the model
// response, falling back to the first candidate mentioned anywhere in it.
func extractCategoryFromResponse(response string, candidates []string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
		}
	}
	lower := strings.ToLower(response)
	for _, candidate := range candidates {
		if strings.Contains(lower, strings.ToLower(candidate)) {
			return candidate
		}
	}
	return ""
}
