package careercompass

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/careercompass/internal/domain/prediction"
)

// Embedder converts text to a vector. Required for Predict.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BatchEmbedder vectorizes multiple texts in a single call.
// Optional: when the Embedder also implements it, role vectors are built in one request.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)
}

// embedderAdapter wraps the public Embedder to satisfy prediction.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (prediction.EmbeddingResult, error) {
	v, err := a.inner.Embed(ctx, text)
	if err != nil {
		return prediction.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return prediction.EmbeddingResult{Embedding: v}, nil
}

// batchEmbedderAdapter additionally forwards BatchEmbed.
type batchEmbedderAdapter struct {
	embedderAdapter
	batch BatchEmbedder
}

func (a *batchEmbedderAdapter) BatchEmbed(ctx context.Context, texts []string) (prediction.BatchEmbeddingResult, error) {
	vs, err := a.batch.BatchEmbed(ctx, texts)
	if err != nil {
		return prediction.BatchEmbeddingResult{}, fmt.Errorf("batch embed: %w", err)
	}
	return prediction.BatchEmbeddingResult{Embeddings: vs}, nil
}

func adaptEmbedder(e Embedder) prediction.Embedder {
	if e == nil {
		return nil
	}
	if b, ok := e.(BatchEmbedder); ok {
		return &batchEmbedderAdapter{embedderAdapter: embedderAdapter{inner: e}, batch: b}
	}
	return &embedderAdapter{inner: e}
}
