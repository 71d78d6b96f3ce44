package chi

import (
	domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/prediction"
	domstats "github.com/kailas-cloud/careercompass/internal/domain/stats"
	healthuc "github.com/kailas-cloud/careercompass/internal/usecase/health"
)

// ErrorCode is the machine-readable error code returned to clients.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeUnknownField           ErrorCode = "unknown_field"
	CodeCareerNotFound         ErrorCode = "career_not_found"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodePredictorDisabled      ErrorCode = "predictor_disabled"
	CodePredictorProviderError ErrorCode = "predictor_provider_error"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Career is a record rendered as its field map.
type Career map[string]string

// CareerListResponse wraps a list of careers.
type CareerListResponse struct {
	Items []Career `json:"items"`
	Total int      `json:"total"`
	Query string   `json:"query"`
}

// FieldsResponse lists the dataset columns.
type FieldsResponse struct {
	Fields []string `json:"fields"`
}

// CountItem is one chart bar.
type CountItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GrowthSummary summarizes growth scores.
type GrowthSummary struct {
	Parsed int     `json:"parsed"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// StatsResponse carries the chart series.
type StatsResponse struct {
	Total        int           `json:"total"`
	Domains      []CountItem   `json:"domains"`
	Skills       []CountItem   `json:"skills"`
	DemandLevels []CountItem   `json:"demand_levels"`
	Growth       GrowthSummary `json:"growth"`
}

// PredictRequest is the body of POST /api/v1/predict.
type PredictRequest struct {
	Profile string `json:"profile"`
}

// CandidateItem is one scored role.
type CandidateItem struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

// PredictResponse is the predicted role with runners-up.
type PredictResponse struct {
	Role         string          `json:"role"`
	Score        float64         `json:"score"`
	Alternatives []CandidateItem `json:"alternatives"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Records int               `json:"records"`
	Checks  map[string]string `json:"checks"`
}

// ListCareersParams are the query parameters of GET /api/v1/careers.
type ListCareersParams struct {
	Query *string
}

// SearchCareersParams are the query parameters of GET /api/v1/search.
type SearchCareersParams struct {
	Query  *string
	Domain *string
	Skill  *string
	Filter *[]string
}

func careerToDTO(r domcareer.Record) Career {
	return Career(r.Fields())
}

func careersToList(records []domcareer.Record, query string) CareerListResponse {
	items := make([]Career, len(records))
	for i, r := range records {
		items[i] = careerToDTO(r)
	}
	return CareerListResponse{Items: items, Total: len(items), Query: query}
}

func countsToDTO(cs []domstats.Count) []CountItem {
	out := make([]CountItem, len(cs))
	for i, c := range cs {
		out[i] = CountItem{Label: c.Label, Count: c.Count}
	}
	return out
}

func statsToDTO(s domstats.Summary) StatsResponse {
	return StatsResponse{
		Total:        s.Total,
		Domains:      countsToDTO(s.Domains),
		Skills:       countsToDTO(s.Skills),
		DemandLevels: countsToDTO(s.DemandLevels),
		Growth: GrowthSummary{
			Parsed: s.Growth.Parsed,
			Mean:   s.Growth.Mean,
			Min:    s.Growth.Min,
			Max:    s.Growth.Max,
		},
	}
}

func predictionToDTO(p prediction.Prediction) PredictResponse {
	alts := make([]CandidateItem, len(p.Alternatives))
	for i, c := range p.Alternatives {
		alts[i] = CandidateItem{Role: c.Role, Score: c.Score}
	}
	return PredictResponse{Role: p.Role, Score: p.Score, Alternatives: alts}
}

func healthToDTO(r healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Records: r.Records, Checks: checks}
}
