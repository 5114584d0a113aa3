package openai

import (
	"sync"

	"github.com/linkscope/backend/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// LinkOpenAIClient implements the ai.LinkAIClient interface against the
// OpenAI API or any OpenAI-compatible endpoint. Separate models are used
// for free-text summaries and schema-constrained proposal extraction.
//
// A LinkOpenAIClient should be created using NewLinkOpenAIClient.
type LinkOpenAIClient struct {
	summaryModel  string
	proposalModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewLinkOpenAIClientParams defines the configuration parameters for
// creating a new LinkOpenAIClient.
//
// SummaryModel is used for plain completions, ProposalModel for the
// structured entity/relationship proposal step. ChatURL and ChatKey
// configure the chat/completion API endpoint; an empty ChatURL targets
// the official OpenAI API.
type NewLinkOpenAIClientParams struct {
	SummaryModel  string
	ProposalModel string

	ChatURL string
	ChatKey string
}

// NewLinkOpenAIClient creates and returns a new LinkOpenAIClient
// configured with the provided parameters.
//
// Example:
//
//	client := openai.NewLinkOpenAIClient(openai.NewLinkOpenAIClientParams{
//		SummaryModel:  "gpt-4o-mini",
//		ProposalModel: "gpt-4o-mini",
//		ChatKey:       os.Getenv("OPENAI_API_KEY"),
//	})
func NewLinkOpenAIClient(
	params NewLinkOpenAIClientParams,
) *LinkOpenAIClient {
	chatClient := newOpenaiClient(params.ChatURL, params.ChatKey)

	return &LinkOpenAIClient{
		summaryModel:  params.SummaryModel,
		proposalModel: params.ProposalModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: chatClient,
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
