package autoplay

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/portal-escape/internal/console"
	"github.com/tatianab/portal-escape/internal/engine"
	"github.com/tatianab/portal-escape/internal/logging"
	"github.com/tatianab/portal-escape/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/decide.txt
var decidePrompt string

var decideTemplate = template.Must(template.New("decide").Parse(decidePrompt))

// fallbackName is used when the model's name is unusable.
const fallbackName = "Gemini"

// maxTranscript bounds how many told messages are replayed to the model.
const maxTranscript = 40

// Generator is the part of *genai.GenerativeModel the player uses.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiPlayer asks a Gemini model for every decision.
type GeminiPlayer struct {
	model      Generator
	transcript []string
}

func NewGeminiPlayer(model Generator) *GeminiPlayer {
	return &GeminiPlayer{model: model}
}

// NewGeminiClient opens a client and returns a player on modelName. The
// caller closes the client.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiPlayer, *genai.Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, nil, err
	}
	return NewGeminiPlayer(client.GenerativeModel(modelName)), client, nil
}

func (p *GeminiPlayer) decide(ctx context.Context, question string, options []string, format string) (string, error) {
	start := 0
	if len(p.transcript) > maxTranscript {
		start = len(p.transcript) - maxTranscript
	}
	var buf bytes.Buffer
	data := struct {
		Transcript string
		Question   string
		Options    []string
		Format     string
	}{
		Transcript: strings.Join(p.transcript[start:], "\n"),
		Question:   question,
		Options:    options,
		Format:     format,
	}
	if err := decideTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	resp, err := p.model.GenerateContent(ctx, genai.Text(buf.String()))
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
	return strings.TrimSpace(string(text)), nil
}

func (p *GeminiPlayer) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	answer, err := p.decide(ctx, prompt, nil, "Answer with exactly one word: yes or no.")
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		logging.Warn("gemini yes/no failed, answering yes", logging.Fields{"prompt": prompt, "error": err.Error()})
		return true, nil
	}
	p.transcript = append(p.transcript, prompt+" "+answer)
	return console.ParseYesNo(answer), nil
}

func (p *GeminiPlayer) AskDirection(ctx context.Context, prompt string, options []engine.PortalOption) (models.Direction, error) {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = fmt.Sprintf("%s: %s", o.Direction.Letter(), o)
	}
	answer, err := p.decide(ctx, prompt, labels, "Answer with only the letter of one open portal.")
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		logging.Warn("gemini direction failed, taking first portal", logging.Fields{"error": err.Error()})
		return options[0].Direction, nil
	}
	p.transcript = append(p.transcript, prompt+" "+answer)
	d, err := engine.ParseChoice(answer, options)
	if err == nil {
		for _, o := range options {
			if o.Direction == d {
				return d, nil
			}
		}
	}
	logging.Warn("gemini named no open portal, taking first portal", logging.Fields{"answer": answer})
	return options[0].Direction, nil
}

func (p *GeminiPlayer) AskName(ctx context.Context, prompt string) (string, error) {
	answer, err := p.decide(ctx, prompt, nil, "Answer with only a name of 3 to 12 letters.")
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return fallbackName, nil
	}
	name, err := models.ValidateName(answer)
	if err != nil {
		logging.Warn("gemini name rejected", logging.Fields{"answer": answer, "error": err.Error()})
		return fallbackName, nil
	}
	return name, nil
}

func (p *GeminiPlayer) Tell(msg string) {
	p.transcript = append(p.transcript, msg)
}
