package index

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/philippgille/chromem-go"
	"google.golang.org/genai"
)

// Embedding settings for the Gemini backend.
const (
	embeddingDimension = 768
	taskTypeDocument   = "RETRIEVAL_DOCUMENT"
	taskTypeQuery      = "RETRIEVAL_QUERY"

	// queryTaskPrefix marks a text as a search query rather than a document.
	// Every embedder built by this package strips it before embedding; the
	// Gemini backend additionally switches to the query task type. The marker
	// must never reach a backend verbatim.
	queryTaskPrefix = "QUERY_TASK:"
)

// NewGeminiEmbedder returns an embedding function backed by Gemini's
// embedding API. Texts carrying the query prefix are embedded with the
// retrieval-query task type; everything else as a document.
func NewGeminiEmbedder(ctx context.Context, apiKey, modelName string) (chromem.EmbeddingFunc, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return func(ctx context.Context, text string) ([]float32, error) {
		taskType := taskTypeDocument
		if strings.HasPrefix(text, queryTaskPrefix) {
			taskType = taskTypeQuery
			text = strings.TrimPrefix(text, queryTaskPrefix)
		}

		contents := []*genai.Content{{Parts: []*genai.Part{{Text: text}}}}
		dim := int32(embeddingDimension)
		res, err := client.Models.EmbedContent(ctx, modelName, contents, &genai.EmbedContentConfig{
			TaskType:             taskType,
			OutputDimensionality: &dim,
		})
		if err != nil {
			return nil, fmt.Errorf("embedding failed: %w", err)
		}
		if len(res.Embeddings) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}
		values := res.Embeddings[0].Values
		normalize(values)
		return values, nil
	}, nil
}

// NewOpenAICompatEmbedder returns an embedding function for any
// OpenAI-compatible embeddings endpoint. The API has no task-type notion,
// so the query marker is stripped and queries embed like documents.
func NewOpenAICompatEmbedder(baseURL, apiKey, modelName string) chromem.EmbeddingFunc {
	normalized := true
	embed := chromem.NewEmbeddingFuncOpenAICompat(baseURL, apiKey, modelName, &normalized)
	return func(ctx context.Context, text string) ([]float32, error) {
		return embed(ctx, strings.TrimPrefix(text, queryTaskPrefix))
	}
}

// normalize performs L2 normalization in place. Unit-length vectors keep
// cosine similarity well behaved across backends.
func normalize(v []float32) {
	var sum float64
	for _, val := range v {
		sum += float64(val * val)
	}
	magnitude := float32(math.Sqrt(sum))
	if magnitude <= 0 {
		return
	}
	for i := range v {
		v[i] /= magnitude
	}
}
