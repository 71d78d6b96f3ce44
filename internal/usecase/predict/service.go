package predict

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careercompass/internal/domain"
	"github.com/kailas-cloud/careercompass/internal/domain/prediction"
	"github.com/kailas-cloud/careercompass/internal/logger"
)

// DefaultTopK is the number of alternatives returned when topK <= 0.
const DefaultTopK = 3

type roleVector struct {
	role   string
	vector []float32
}

// Service ranks roles by embedding similarity to a free-text profile.
type Service struct {
	catalog Catalog
	docs    prediction.Embedder
	query   prediction.Embedder
	topK    int

	mu    sync.Mutex
	roles []roleVector
}

// New creates a predictor. docs embeds role profiles, query embeds user profiles.
// A nil query embedder disables prediction; a nil docs embedder reuses query.
func New(catalog Catalog, docs, query prediction.Embedder, topK int) *Service {
	if docs == nil {
		docs = query
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{catalog: catalog, docs: docs, query: query, topK: topK}
}

// Enabled reports whether an embedder is configured.
func (s *Service) Enabled() bool { return s.query != nil }

// Predict returns the role nearest to profile plus up to topK alternatives.
func (s *Service) Predict(ctx context.Context, profile string) (prediction.Prediction, error) {
	if !s.Enabled() {
		return prediction.Prediction{}, domain.ErrPredictorDisabled
	}

	profile = strings.TrimSpace(profile)
	if profile == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: profile is required", domain.ErrInvalidQuery)
	}
	if len(profile) > prediction.MaxProfileLength {
		return prediction.Prediction{}, fmt.Errorf("%w: profile exceeds %d bytes",
			domain.ErrInvalidQuery, prediction.MaxProfileLength)
	}

	roles, err := s.roleVectors(ctx)
	if err != nil {
		return prediction.Prediction{}, err
	}
	if len(roles) == 0 {
		return prediction.Prediction{}, fmt.Errorf("no roles loaded: %w", domain.ErrNotFound)
	}

	res, err := s.query.Embed(ctx, profile)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("embed profile: %w", err)
	}

	ranked := make([]prediction.Candidate, len(roles))
	for i, rv := range roles {
		ranked[i] = prediction.Candidate{Role: rv.role, Score: prediction.Cosine(res.Embedding, rv.vector)}
	}
	slices.SortStableFunc(ranked, func(a, b prediction.Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	alts := ranked[1:]
	if len(alts) > s.topK {
		alts = alts[:s.topK]
	}

	logger.FromContext(ctx).Debug("Role predicted",
		zap.String("role", ranked[0].Role),
		zap.Float64("score", ranked[0].Score),
		zap.Int("profile_tokens", res.TotalTokens),
	)

	return prediction.Prediction{
		Role:         ranked[0].Role,
		Score:        ranked[0].Score,
		Alternatives: slices.Clone(alts),
	}, nil
}

// roleVectors embeds every role profile on first use. A failed attempt is retried on the next call.
func (s *Service) roleVectors(ctx context.Context) ([]roleVector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roles != nil {
		return s.roles, nil
	}

	records := s.catalog.Records()
	if len(records) == 0 {
		return nil, nil
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = prediction.ProfileText(r)
	}

	res, err := prediction.EmbedAll(ctx, s.docs, texts)
	if err != nil {
		return nil, fmt.Errorf("embed roles: %w", err)
	}

	roles := make([]roleVector, len(records))
	for i, r := range records {
		roles[i] = roleVector{role: r.Role(), vector: res.Embeddings[i]}
	}
	s.roles = roles

	logger.FromContext(ctx).Info("Role vectors built",
		zap.Int("roles", len(roles)),
		zap.Int("tokens", res.TotalTokens),
	)
	return roles, nil
}
