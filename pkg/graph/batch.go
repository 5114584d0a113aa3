package graph

import (
	"github.com/pkoukk/tiktoken-go"
)

// batchCandidates groups the candidate strings into token-budgeted
// batches so a single oracle request never overflows the proposal
// model's context. Candidate order is preserved across batches; the
// normalizer's suffix assignment depends on it.
//
// A candidate larger than the budget still gets its own batch rather
// than being dropped.
func batchCandidates(candidates []string, encoder string, maxTokens int) ([][]string, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return nil, err
	}

	var batches [][]string
	var current []string
	currentTokens := 0

	for _, candidate := range candidates {
		tokens := len(enc.Encode(candidate, nil, nil)) + 1

		if currentTokens+tokens > maxTokens && len(current) > 0 {
			batches = append(batches, current)
			current = nil
			currentTokens = 0
		}

		current = append(current, candidate)
		currentTokens += tokens
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches, nil
}
