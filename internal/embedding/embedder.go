// Package embedding maps text to dense vectors for semantic similarity.
package embedding

import (
	"context"
	"fmt"
)

// Embedder produces vector embeddings for text. Vectors returned by Embed and EmbedBatch are
// freshly allocated and owned by the caller.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// Provider identifies an Embedder implementation.
type Provider string

const (
	// ProviderONNX runs a sentence-transformer exported to ONNX (requires CGO and onnxruntime).
	ProviderONNX Provider = "onnx"
	// ProviderHashing uses the deterministic feature-hashing embedder.
	ProviderHashing Provider = "hashing"
)

// DefaultOutputName is the token-embedding output of a sentence-transformers ONNX export.
const DefaultOutputName = "last_hidden_state"

// Options configures New.
type Options struct {
	Provider   string
	ModelPath  string
	VocabPath  string // WordPiece vocab.txt shipped with the model
	OutputName string // model output to read, default last_hidden_state
	Pooling    string // mean | none, default mean
	Dimensions int
	MaxTokens  int
}

// New creates the embedder for opts.Provider. An error here means the model could not be loaded
// and the caller cannot serve any screening request.
func New(opts Options) (Embedder, error) {
	switch Provider(opts.Provider) {
	case ProviderONNX, "":
		if opts.OutputName == "" {
			opts.OutputName = DefaultOutputName
		}
		switch opts.Pooling {
		case "":
			opts.Pooling = PoolingMean
		case PoolingMean, PoolingNone:
		default:
			return nil, fmt.Errorf("unknown pooling: %s (supported: mean, none)", opts.Pooling)
		}
		e, err := NewONNXEmbedder(opts)
		if err != nil {
			return nil, fmt.Errorf("load onnx model %s: %w", opts.ModelPath, err)
		}
		return e, nil
	case ProviderHashing:
		return NewHashingEmbedder(opts.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: onnx, hashing)", opts.Provider)
	}
}
