package graph

// AnalysisClient runs the candidate → proposal → reconciliation pipeline.
// It holds the per-process tuning knobs; all per-request state lives in
// the request's own Graph instance, so a single client is safe to share
// across concurrent callers.
//
// An AnalysisClient should be created using NewAnalysisClient.
type AnalysisClient struct {
	tokenEncoder       string
	maxCandidates      int
	batchTokenBudget   int
	parallelAiRequests int
	maxRetries         int
}

// NewAnalysisClientParams defines the configuration parameters for
// creating a new AnalysisClient.
//
// TokenEncoder selects the tiktoken encoding used to budget oracle
// batches. MaxCandidates caps how many candidate strings a single request
// may carry (default 100). BatchTokenBudget bounds the candidate tokens
// per oracle call. ParallelAiRequests controls how many oracle calls run
// concurrently. MaxRetries bounds retries per oracle call.
type NewAnalysisClientParams struct {
	TokenEncoder       string
	MaxCandidates      int
	BatchTokenBudget   int
	ParallelAiRequests int
	MaxRetries         int
}

const (
	defaultTokenEncoder     = "o200k_base"
	defaultMaxCandidates    = 100
	defaultBatchTokenBudget = 2000
	defaultParallelRequests = 4
	defaultMaxRetries       = 3
)

// NewAnalysisClient creates and returns a new AnalysisClient configured
// with the provided parameters. Zero values fall back to defaults.
//
// Example:
//
//	client := graph.NewAnalysisClient(graph.NewAnalysisClientParams{
//		TokenEncoder:  "o200k_base",
//		MaxCandidates: 100,
//	})
func NewAnalysisClient(params NewAnalysisClientParams) *AnalysisClient {
	encoder := params.TokenEncoder
	if encoder == "" {
		encoder = defaultTokenEncoder
	}
	maxCandidates := params.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}
	budget := params.BatchTokenBudget
	if budget <= 0 {
		budget = defaultBatchTokenBudget
	}
	parallel := params.ParallelAiRequests
	if parallel <= 0 {
		parallel = defaultParallelRequests
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &AnalysisClient{
		tokenEncoder:       encoder,
		maxCandidates:      maxCandidates,
		batchTokenBudget:   budget,
		parallelAiRequests: parallel,
		maxRetries:         maxRetries,
	}
}
