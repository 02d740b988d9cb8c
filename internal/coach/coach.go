// Package coach asks Gemini for a short Mission Control debrief after a run.
// It is optional: the game plays the same without it.
package coach

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/rover-rescue/internal/engine"
	"github.com/tatianab/rover-rescue/internal/models"
)

//go:embed prompts/debrief.txt
var debriefPrompt string

var debriefTmpl = template.Must(template.New("debrief").Parse(debriefPrompt))

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Coach struct {
	client *genai.Client
	model  generator
}

func New(ctx context.Context, apiKey, model string) (*Coach, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultModel
	}
	return &Coach{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

func (c *Coach) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Debrief returns a few sentences of encouragement about rec. previous is
// the run before it on the same mission, if any.
func (c *Coach) Debrief(ctx context.Context, rec models.RunRecord, feedback []string, previous *models.RunRecord) (string, error) {
	prompt, err := buildPrompt(rec, feedback, previous)
	if err != nil {
		return "", err
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}

	out := clean(string(text))
	if out == "" {
		return "", fmt.Errorf("empty debrief from Gemini")
	}
	return out, nil
}

func buildPrompt(rec models.RunRecord, feedback []string, previous *models.RunRecord) (string, error) {
	data := struct {
		Engineer    string
		Mission     int
		MissionName string
		RunNumber   int
		Details     []engine.Detail
		Feedback    []string
		Previous    []engine.Detail
	}{
		Engineer:    rec.EngineerName,
		Mission:     int(rec.Mission),
		MissionName: rec.Mission.String(),
		RunNumber:   rec.RunNumber,
		Details:     engine.RunDetails(rec),
		Feedback:    feedback,
	}
	if data.Engineer == "" {
		data.Engineer = "Engineer"
	}
	if previous != nil {
		data.Previous = engine.RunDetails(*previous)
	}

	var buf bytes.Buffer
	if err := debriefTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// clean strips code fences and markdown emphasis the model adds despite
// being asked not to, and joins the text into one paragraph.
func clean(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.NewReplacer("**", "", "__", "", "`", "").Replace(text)
	return strings.Join(strings.Fields(text), " ")
}
