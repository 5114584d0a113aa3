package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/linkscope/backend/internal/util"

	"github.com/linkscope/backend/pkg/ai"
	oai "github.com/linkscope/backend/pkg/ai/ollama"
	gai "github.com/linkscope/backend/pkg/ai/openai"
	"github.com/linkscope/backend/pkg/common"
	"github.com/linkscope/backend/pkg/graph"
	"github.com/linkscope/backend/pkg/layout"
	"github.com/linkscope/backend/pkg/logger"
	"github.com/linkscope/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	// LinkAiClient
	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.LinkAIClient

	switch adapter {
	case "ollama":
		client, err := oai.NewLinkOllamaClient(oai.NewLinkOllamaClientParams{
			SummaryModel:  util.GetEnv("AI_CHAT_SUMMARY_MODEL"),
			ProposalModel: util.GetEnv("AI_CHAT_PROPOSE_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_MAX_CONCURRENT", 1)),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		aiClient = client
	default:
		aiClient = gai.NewLinkOpenAIClient(gai.NewLinkOpenAIClientParams{
			SummaryModel:  util.GetEnv("AI_CHAT_SUMMARY_MODEL"),
			ProposalModel: util.GetEnv("AI_CHAT_PROPOSE_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}

	req, err := readRequest(os.Args[1:])
	if err != nil {
		logger.Fatal("Could not read analysis request", "err", err)
	}

	analysisClient := graph.NewAnalysisClient(graph.NewAnalysisClientParams{
		TokenEncoder:       util.GetEnv("AI_TOKEN_ENCODER"),
		MaxCandidates:      int(util.GetEnvNumeric("ANALYZE_MAX_CANDIDATES", 0)),
		BatchTokenBudget:   int(util.GetEnvNumeric("ANALYZE_BATCH_TOKEN_BUDGET", 0)),
		ParallelAiRequests: int(util.GetEnvNumeric("ANALYZE_PARALLEL_REQUESTS", 0)),
		MaxRetries:         int(util.GetEnvNumeric("ANALYZE_MAX_RETRIES", 0)),
	})

	result, err := analysisClient.Analyze(ctx, *req, aiClient)
	if err != nil {
		logger.Fatal("Analysis failed", "err", err)
	}

	g := &common.Graph{
		Entities:      result.IdentifiedEntities,
		Relationships: result.Relationships,
	}
	nodes, err := layout.Compute(g, layoutConfig())
	if err != nil {
		logger.Fatal("Layout failed", "err", err)
	}
	result.LayoutNodes = nodes

	metrics := aiClient.GetMetrics()
	logger.Info(
		"Model usage",
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"duration_ms", metrics.DurationMs,
	)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Fatal("Could not write result", "err", err)
	}
}

// readRequest decodes the analysis request from the file named by the
// first argument, or from stdin when no argument is given.
func readRequest(args []string) (*graph.AnalysisRequest, error) {
	var reader io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	var req graph.AnalysisRequest
	if err := json.NewDecoder(reader).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func layoutConfig() layout.Config {
	direction := layout.TopToBottom
	if util.GetEnvString("LAYOUT_DIRECTION", "") == string(layout.LeftToRight) {
		direction = layout.LeftToRight
	}
	return layout.Config{
		Direction:     direction,
		NodeSep:       util.GetEnvNumeric("LAYOUT_NODE_SEP", 0),
		LayerSep:      util.GetEnvNumeric("LAYOUT_LAYER_SEP", 0),
		MaxIterations: int(util.GetEnvNumeric("LAYOUT_MAX_ITERATIONS", 0)),
	}
}
