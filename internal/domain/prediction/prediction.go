// Package prediction holds the role prediction result and the vector math behind it.
package prediction

import (
	"math"
	"strings"

	"github.com/kailas-cloud/careercompass/internal/domain/career"
)

// MaxProfileLength bounds the free-text profile accepted for prediction.
const MaxProfileLength = 4096

// Candidate is one scored role.
type Candidate struct {
	Role  string
	Score float64
}

// Prediction is the best role plus runners-up, best first.
type Prediction struct {
	Role         string
	Score        float64
	Alternatives []Candidate
}

// ProfileText is the text embedded for a career record.
func ProfileText(r career.Record) string {
	parts := []string{r.Role(), r.Description(), r.RequiredSkills(), r.DomainIndustries()}
	var b strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(". ")
		}
		b.WriteString(p)
	}
	return b.String()
}

// Cosine returns the cosine similarity of a and b, or 0 when lengths differ or either is zero.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
