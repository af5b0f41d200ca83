package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/kumul-digital/capdash/backend/pkg/config"
	"github.com/kumul-digital/capdash/backend/pkg/httputil"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// extractionPrompt instructs the model to return the strict JSON shape the
// import pipeline validates. The pipeline treats the reply as untrusted
// regardless of what is asked for here.
const extractionPrompt = `Extract the main data table from this document.
Return ONLY a JSON object of the form {"data": [["header1","header2",...],["cell","cell",...],...]}
with the header row first and every cell as a string.
If the document contains no recognizable table, return {"error": "<short reason>"}.
Do not include any other text.`

// Client talks to the Gemini generative-language API. It serves two roles:
// table extraction from scanned documents and narrative synthesis for
// reports. Extraction is strictly one-shot: one request per document, no
// retry, no streaming.
type Client struct {
	genai   *genai.Client
	logger  *logger.Logger
	limiter *httputil.Client

	narrativeModel  string
	extractionModel string
}

// NewClient creates a Gemini client from config. The shared httputil client
// provides both the transport and the in-process rate limit that guards
// narrative generation.
func NewClient(ctx context.Context, cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) (*Client, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.Gemini.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient.HTTPClient(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		genai:           gc,
		logger:          log,
		limiter:         httpClient,
		narrativeModel:  cfg.Gemini.NarrativeModel,
		extractionModel: cfg.Gemini.ExtractionModel,
	}, nil
}

// ExtractTable submits a document once and returns the model's raw JSON
// reply. Callers must validate the payload shape before trusting it. A
// stalled service stalls this call; there is deliberately no retry here.
func (c *Client) ExtractTable(ctx context.Context, document []byte, mimeType string) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(document, mimeType),
			genai.NewPartFromText(extractionPrompt),
		}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}

	c.logger.WithFields(map[string]interface{}{
		"model":     c.extractionModel,
		"mime_type": mimeType,
		"bytes":     len(document),
	}).Info("Submitting document for table extraction")

	resp, err := c.genai.Models.GenerateContent(ctx, c.extractionModel, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("document extraction request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("extraction service returned an empty response")
	}

	return []byte(stripCodeFence(text)), nil
}

// GenerateNarrative synthesizes report prose from pre-aggregated
// statistics. Calls share the configured requests-per-minute budget.
func (c *Client) GenerateNarrative(ctx context.Context, section string, stats any) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	statsJSON, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode statistics: %w", err)
	}

	prompt := fmt.Sprintf(
		"You are drafting the %q section of a workforce capability assessment report for a government personnel agency.\n"+
			"Write 2-3 concise paragraphs of plain professional prose based strictly on these statistics. "+
			"Do not invent numbers that are not present.\n\nStatistics:\n%s",
		section, statsJSON)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.narrativeModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("narrative generation returned an empty response")
	}

	return text, nil
}

// stripCodeFence removes a surrounding markdown code fence. Models wrap
// JSON in fences even when asked not to.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
