package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/linkscope/backend/pkg/ai"
)

// mockAIClient answers GenerateCompletionWithFormat from a configurable
// function and records every user prompt it saw.
type mockAIClient struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string, out *proposeResponse) error
}

func (m *mockAIClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockAIClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	res, ok := out.(*proposeResponse)
	if !ok {
		return fmt.Errorf("unexpected output type %T", out)
	}
	return m.respond(prompt, res)
}

func (m *mockAIClient) ResetMetrics() {}

func (m *mockAIClient) GetMetrics() ai.ModelMetrics {
	return ai.ModelMetrics{}
}

func candidatesFromPrompt(prompt string) []string {
	var candidates []string
	for _, line := range strings.Split(prompt, "\n") {
		if after, ok := strings.CutPrefix(line, "- "); ok {
			candidates = append(candidates, after)
		}
	}
	return candidates
}

// proposeEachCandidate is the standard mock behavior: one entity per
// candidate line plus a relationship between the batch's first and last
// entity.
func proposeEachCandidate(prompt string, out *proposeResponse) error {
	candidates := candidatesFromPrompt(prompt)
	for i, candidate := range candidates {
		out.Entities = append(out.Entities, proposeEntity{
			WorkingID:  fmt.Sprintf("w%d", i),
			Label:      candidate,
			EntityType: "OTHER",
		})
	}
	if len(candidates) > 1 {
		out.Relationships = append(out.Relationships, proposeRelationship{
			SourceID:  "w0",
			TargetID:  fmt.Sprintf("w%d", len(candidates)-1),
			Label:     "appears with",
			Direction: "non-directional",
		})
	}
	return nil
}

func TestAnalyzeEmptyInput(t *testing.T) {
	client := NewAnalysisClient(NewAnalysisClientParams{})
	mock := &mockAIClient{respond: proposeEachCandidate}

	res, err := client.Analyze(context.Background(), AnalysisRequest{
		Candidates:      []string{"", "   ", "\t"},
		AnalysisContext: "fraud case",
	}, mock)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(res.IdentifiedEntities) != 0 || len(res.Relationships) != 0 {
		t.Errorf("got %d entities, %d relationships, want empty result",
			len(res.IdentifiedEntities), len(res.Relationships))
	}
	if res.AnalysisSummary == "" {
		t.Errorf("summary empty, want explanation that nothing was supplied")
	}
	if res.AnalysisContext != "fraud case" {
		t.Errorf("context = %q, want passed through", res.AnalysisContext)
	}
	if len(mock.prompts) != 0 {
		t.Errorf("oracle was called %d times for empty input, want 0", len(mock.prompts))
	}
}

func TestAnalyzeBuildsGraph(t *testing.T) {
	client := NewAnalysisClient(NewAnalysisClientParams{})
	mock := &mockAIClient{respond: proposeEachCandidate}

	res, err := client.Analyze(context.Background(), AnalysisRequest{
		Candidates: []string{"Acme Corp", "John Smith", "Acme Corp"},
		FileOrigin: "case42.csv",
	}, mock)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := entityIDs(res.IdentifiedEntities); len(got) != 3 {
		t.Fatalf("entity ids = %#v, want 3 entities", got)
	} else if got[0] != "Acme_Corp" || got[1] != "John_Smith" || got[2] != "Acme_Corp_2" {
		t.Errorf("entity ids = %#v, want [Acme_Corp John_Smith Acme_Corp_2]", got)
	}

	if len(res.Relationships) != 1 {
		t.Fatalf("len(relationships) = %d, want 1", len(res.Relationships))
	}
	rel := res.Relationships[0]
	if rel.Source != "Acme_Corp" || rel.Target != "Acme_Corp_2" {
		t.Errorf("relationship endpoints = (%q, %q), want (Acme_Corp, Acme_Corp_2)", rel.Source, rel.Target)
	}

	if !strings.Contains(res.AnalysisSummary, "3 entities") {
		t.Errorf("summary = %q, want entity count mentioned", res.AnalysisSummary)
	}
	if res.FileOrigin != "case42.csv" {
		t.Errorf("file origin = %q, want passed through", res.FileOrigin)
	}
}

func TestAnalyzeTruncatesCandidates(t *testing.T) {
	client := NewAnalysisClient(NewAnalysisClientParams{MaxCandidates: 5})
	mock := &mockAIClient{respond: proposeEachCandidate}

	candidates := make([]string, 8)
	for i := range candidates {
		candidates[i] = fmt.Sprintf("candidate %d", i)
	}

	res, err := client.Analyze(context.Background(), AnalysisRequest{Candidates: candidates}, mock)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	var processed int
	for _, prompt := range mock.prompts {
		processed += len(candidatesFromPrompt(prompt))
	}
	if processed != 5 {
		t.Errorf("oracle saw %d candidates, want first 5 only", processed)
	}
	if len(res.IdentifiedEntities) != 5 {
		t.Errorf("len(entities) = %d, want 5", len(res.IdentifiedEntities))
	}
	if !strings.Contains(res.AnalysisSummary, "8 candidates") || !strings.Contains(res.AnalysisSummary, "first 5") {
		t.Errorf("summary = %q, want truncation warning with both counts", res.AnalysisSummary)
	}
}

func TestAnalyzeFailsWhenOracleFails(t *testing.T) {
	client := NewAnalysisClient(NewAnalysisClientParams{MaxRetries: 1})
	mock := &mockAIClient{
		respond: func(prompt string, out *proposeResponse) error {
			return errors.New("model unavailable")
		},
	}

	_, err := client.Analyze(context.Background(), AnalysisRequest{
		Candidates: []string{"Acme Corp"},
	}, mock)
	if err == nil {
		t.Fatalf("Analyze() error = nil, want failure when every batch fails")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Errorf("error = %v, want oracle error wrapped", err)
	}
}

func TestAnalyzeEmptyProposalsWithoutError(t *testing.T) {
	client := NewAnalysisClient(NewAnalysisClientParams{})
	mock := &mockAIClient{
		respond: func(prompt string, out *proposeResponse) error {
			// The oracle answered, it just found nothing.
			return nil
		},
	}

	res, err := client.Analyze(context.Background(), AnalysisRequest{
		Candidates: []string{"gibberish 1", "gibberish 2"},
	}, mock)
	if err != nil {
		t.Fatalf("Analyze() error = %v, want nil when the oracle answers with nothing", err)
	}
	if len(res.IdentifiedEntities) != 0 || len(res.Relationships) != 0 {
		t.Errorf("got %d entities, %d relationships, want empty result",
			len(res.IdentifiedEntities), len(res.Relationships))
	}
	if !strings.Contains(res.AnalysisSummary, "no usable entities") {
		t.Errorf("summary = %q, want explanation that nothing was proposed", res.AnalysisSummary)
	}
}

func TestAnalyzeFailsWhenFailuresLeaveNothingUsable(t *testing.T) {
	// One batch per candidate: the first fails after retries, the second
	// answers with zero proposals. The failure must surface instead of an
	// empty result pretending the oracle found nothing.
	client := NewAnalysisClient(NewAnalysisClientParams{
		BatchTokenBudget:   1,
		ParallelAiRequests: 1,
		MaxRetries:         1,
	})
	mock := &mockAIClient{
		respond: func(prompt string, out *proposeResponse) error {
			if strings.Contains(prompt, "Broken") {
				return errors.New("model unavailable")
			}
			return nil
		},
	}

	_, err := client.Analyze(context.Background(), AnalysisRequest{
		Candidates: []string{"Broken Candidate", "gibberish"},
	}, mock)
	if err == nil {
		t.Fatalf("Analyze() error = nil, want failed batch propagated when nothing usable survived")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Errorf("error = %v, want oracle error wrapped", err)
	}
}

func TestAnalyzeToleratesPartialBatchFailure(t *testing.T) {
	// A one-token budget forces one batch per candidate.
	client := NewAnalysisClient(NewAnalysisClientParams{
		BatchTokenBudget:   1,
		ParallelAiRequests: 1,
		MaxRetries:         1,
	})
	mock := &mockAIClient{
		respond: func(prompt string, out *proposeResponse) error {
			if strings.Contains(prompt, "Broken") {
				return errors.New("model unavailable")
			}
			return proposeEachCandidate(prompt, out)
		},
	}

	res, err := client.Analyze(context.Background(), AnalysisRequest{
		Candidates: []string{"Acme Corp", "Broken Candidate", "John Smith"},
	}, mock)
	if err != nil {
		t.Fatalf("Analyze() error = %v, want partial results despite one failed batch", err)
	}

	got := entityIDs(res.IdentifiedEntities)
	if len(got) != 2 || got[0] != "Acme_Corp" || got[1] != "John_Smith" {
		t.Errorf("entity ids = %#v, want surviving batches [Acme_Corp John_Smith]", got)
	}
}
