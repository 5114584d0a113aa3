package graph

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/linkscope/backend/internal/util"
	"github.com/linkscope/backend/pkg/ai"
	"github.com/linkscope/backend/pkg/common"
	"github.com/linkscope/backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// AnalysisRequest carries one immutable input snapshot for the engine:
// the raw candidate strings plus pass-through metadata. EntityTypes may
// override the categories offered to the oracle.
type AnalysisRequest struct {
	Candidates      []string `json:"candidates"`
	AnalysisContext string   `json:"analysisContext,omitempty"`
	FileOrigin      string   `json:"fileOrigin,omitempty"`
	EntityTypes     []string `json:"entityTypes,omitempty"`
}

const noDataSummary = "No candidate entities were supplied; there is nothing to analyze."

// Analyze runs the full pipeline for one request: cap and batch the
// candidates, collect oracle proposals, normalize entities into
// canonical ids, reconcile relationships against them, and build the
// summary text.
//
// Only total oracle failure returns an error. Empty input, truncation,
// unlabeled entities and dangling relationships are routine data quality
// noise handled by dropping and reporting, so callers always receive a
// structurally valid graph.
func (c *AnalysisClient) Analyze(
	ctx context.Context,
	req AnalysisRequest,
	aiClient ai.LinkAIClient,
) (*common.AnalysisResult, error) {
	candidates := cleanCandidates(req.Candidates)

	if len(candidates) == 0 {
		logger.Info("[Analyze] No candidates supplied")
		return &common.AnalysisResult{
			IdentifiedEntities: []common.Entity{},
			Relationships:      []common.Relationship{},
			AnalysisSummary:    noDataSummary,
			AnalysisContext:    req.AnalysisContext,
			FileOrigin:         req.FileOrigin,
		}, nil
	}

	received := len(candidates)
	truncationNote := ""
	if received > c.maxCandidates {
		candidates = candidates[:c.maxCandidates]
		truncationNote = fmt.Sprintf(
			"Warning: %d candidates were supplied but only the first %d were processed. ",
			received, c.maxCandidates,
		)
		logger.Warn("[Analyze] Candidate list truncated", "received", received, "cap", c.maxCandidates)
	}

	batches, err := batchCandidates(candidates, c.tokenEncoder, c.batchTokenBudget)
	if err != nil {
		return nil, fmt.Errorf("failed to batch candidates: %w", err)
	}

	logger.Info("[Analyze] Requesting proposals", "candidates", len(candidates), "batches", len(batches))

	results, err := c.collectProposals(ctx, batches, req, aiClient)
	if err != nil {
		return nil, err
	}

	proposedEntities, proposedRelationships, err := mergeBatchProposals(results)
	if err != nil {
		return nil, err
	}

	g, droppedEntities, droppedRelationships, err := Reconcile(proposedEntities, proposedRelationships)
	if err != nil {
		return nil, err
	}

	if droppedEntities > 0 {
		logger.Warn("[Normalize] Dropped proposals without label", "count", droppedEntities)
	}
	if droppedRelationships > 0 {
		logger.Info("[Reconcile] Dropped dangling relationships", "count", droppedRelationships)
	}

	summary := truncationNote + buildSummary(g, droppedRelationships, req.AnalysisContext)

	logger.Info(
		"[Analyze] Analysis completed",
		"entities", len(g.Entities),
		"relationships", len(g.Relationships),
		"dropped_relationships", droppedRelationships,
	)

	return &common.AnalysisResult{
		IdentifiedEntities: g.Entities,
		Relationships:      g.Relationships,
		AnalysisSummary:    summary,
		AnalysisContext:    req.AnalysisContext,
		FileOrigin:         req.FileOrigin,
	}, nil
}

// collectProposals runs the oracle over all batches in parallel. A
// failed batch (after retries) is logged and skipped as long as the
// surviving batches produced something; partial proposals are still
// usable output. When batches failed and nothing usable came back, the
// oracle error is propagated instead of returning a silently empty
// result.
func (c *AnalysisClient) collectProposals(
	ctx context.Context,
	batches [][]string,
	req AnalysisRequest,
	aiClient ai.LinkAIClient,
) ([]batchProposals, error) {
	results := make([]batchProposals, len(batches))
	progress := util.NewExtractionProgress(len(batches))

	var lastErrLock sync.Mutex
	var lastErr error

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.parallelAiRequests)

	for i, batch := range batches {
		eg.Go(func() error {
			entities, relationships, err := util.Retry2WithContext(
				gCtx, c.maxRetries,
				func(ctx context.Context) ([]ProposedEntity, []ProposedRelationship, error) {
					return proposeFromBatch(ctx, batch, req.AnalysisContext, req.EntityTypes, aiClient)
				},
			)
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				_, pct := progress.MarkFailed()
				logger.Error("[Analyze] Proposal batch failed", "batch", i+1, "percentage", pct, "err", err)
				lastErrLock.Lock()
				lastErr = err
				lastErrLock.Unlock()
				return nil
			}

			results[i] = batchProposals{entities: entities, relationships: relationships}
			_, pct := progress.MarkCompleted()
			logger.Debug("[Analyze] Proposal batch completed", "step", progress.Step(), "percentage", pct)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("proposal extraction aborted: %w", err)
	}

	if failed := progress.Failed(); failed > 0 {
		usable := 0
		for _, r := range results {
			usable += len(r.entities) + len(r.relationships)
		}
		if usable == 0 {
			return nil, fmt.Errorf(
				"proposal extraction failed for %d of %d batches and produced no usable proposals: %w",
				failed, len(batches), lastErr,
			)
		}
	}

	return results, nil
}

// cleanCandidates drops blank candidates and folds interior whitespace,
// keeping order. Candidates are rendered one per line in the oracle
// prompt, so embedded newlines must not survive.
func cleanCandidates(candidates []string) []string {
	cleaned := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = util.CollapseWhitespace(candidate)
		if candidate == "" {
			continue
		}
		cleaned = append(cleaned, candidate)
	}
	return cleaned
}

func buildSummary(g *common.Graph, droppedRelationships int, analysisContext string) string {
	if len(g.Entities) == 0 {
		return "The extraction step proposed no usable entities for the supplied candidates."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Identified %d entities and %d relationships", len(g.Entities), len(g.Relationships))
	if strings.TrimSpace(analysisContext) != "" {
		fmt.Fprintf(&b, " in the %q context", analysisContext)
	}
	b.WriteString(".")
	if droppedRelationships > 0 {
		fmt.Fprintf(&b, " %d proposed relationships referenced unknown entities and were discarded.", droppedRelationships)
	}
	return b.String()
}
