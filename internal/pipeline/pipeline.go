// Package pipeline sequences the generate, self-critique and regenerate
// stages of the medication-education cycle.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/zjjtools/mededu/internal/feedback"
	"github.com/zjjtools/mededu/internal/llm"
	"github.com/zjjtools/mededu/internal/patient"
	"github.com/zjjtools/mededu/internal/prompt"
)

// Sampling temperatures per stage. The critique runs deterministically; the
// two generation stages keep a little creative slack.
const (
	draftTemperature    = 0.2
	critiqueTemperature = 0
	rewriteTemperature  = 0.2
)

// Pipeline drives the self-refine cycle against a completion client.
type Pipeline struct {
	client llm.Client
}

// New creates a pipeline on top of the given completion client.
func New(client llm.Client) *Pipeline {
	return &Pipeline{client: client}
}

// Result carries the outcome of a full refine cycle.
type Result struct {
	Feedback string
	Refined  string
}

// ProduceDraft generates the initial education sheet (V1) from the patient
// record. The model's text is returned as-is apart from an emptiness check.
func (p *Pipeline) ProduceDraft(ctx context.Context, rec patient.Record) (string, error) {
	text, err := p.complete(ctx, prompt.Draft(rec), draftTemperature)
	if err != nil {
		return "", fmt.Errorf("draft stage: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("draft stage: model returned empty text")
	}
	return text, nil
}

// Refine asks the model to critique the draft, extracts the critique from
// its JSON envelope and generates the rewritten sheet (V3). The stages run
// strictly in order and the cycle aborts on the first failure; when the
// critique stage fails no rewrite is attempted.
func (p *Pipeline) Refine(ctx context.Context, rec patient.Record, draft string) (Result, error) {
	raw, err := p.complete(ctx, prompt.Feedback(rec, draft), critiqueTemperature)
	if err != nil {
		return Result{}, fmt.Errorf("critique stage: %w", err)
	}

	fb, err := feedback.Extract(raw)
	if err != nil {
		return Result{}, fmt.Errorf("critique stage: %w", err)
	}

	refined, err := p.complete(ctx, prompt.Refine(rec, draft, fb), rewriteTemperature)
	if err != nil {
		return Result{}, fmt.Errorf("rewrite stage: %w", err)
	}

	return Result{Feedback: fb, Refined: refined}, nil
}

func (p *Pipeline) complete(ctx context.Context, text string, temperature float64) (string, error) {
	return p.client.Complete(ctx, []llm.Message{{Role: llm.RoleUser, Content: text}}, temperature)
}
