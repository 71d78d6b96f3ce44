// Package mcp exposes career search and lookup as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/kailas-cloud/careercompass/internal/domain"
	domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/prediction"
	domstats "github.com/kailas-cloud/careercompass/internal/domain/stats"
	careeruc "github.com/kailas-cloud/careercompass/internal/usecase/career"
	predictuc "github.com/kailas-cloud/careercompass/internal/usecase/predict"
	searchuc "github.com/kailas-cloud/careercompass/internal/usecase/search"
	statsuc "github.com/kailas-cloud/careercompass/internal/usecase/stats"
)

// Tool names.
const (
	ToolSearchCareers = "search_careers"
	ToolGetCareer     = "get_career"
	ToolListFields    = "list_fields"
	ToolCareerStats   = "career_stats"
	ToolPredictRole   = "predict_role"
)

// Handlers implements the MCP tools on top of the use cases.
type Handlers struct {
	careers *careeruc.Service
	search  *searchuc.Service
	stats   *statsuc.Service
	predict *predictuc.Service
	logger  *zap.Logger
}

// NewHandlers creates tool handlers. predict may be nil.
func NewHandlers(
	careers *careeruc.Service,
	search *searchuc.Service,
	stats *statsuc.Service,
	predict *predictuc.Service,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{careers: careers, search: search, stats: stats, predict: predict, logger: logger}
}

// NewServer builds an MCP server with every tool registered.
// predict_role is only listed when the predictor is enabled.
func NewServer(name, version string, h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(name, version)

	s.AddTool(tool(ToolSearchCareers,
		"Search careers by keyword across role, description, skills and industries, optionally filtered by domain and skill",
		map[string]any{
			"query":  stringProp("Free-text keyword, case-insensitive; empty returns every career"),
			"domain": stringProp("Substring that domain_industries must contain"),
			"skill":  stringProp("Substring that required_skills must contain"),
			"filters": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Extra field:substring conditions, e.g. job_demand_level:high; all must match",
			},
		}), h.SearchCareers)

	s.AddTool(tool(ToolGetCareer, "Get one career by its role name (case-insensitive)",
		map[string]any{"role": stringProp("Role name, e.g. Data Scientist")}, "role"), h.GetCareer)

	s.AddTool(tool(ToolListFields, "List the fields every career record may carry", map[string]any{}),
		h.ListFields)

	s.AddTool(tool(ToolCareerStats, "Summarize the dataset: top industries, skills, demand levels and growth",
		map[string]any{}), h.CareerStats)

	if h.predict != nil && h.predict.Enabled() {
		s.AddTool(tool(ToolPredictRole, "Suggest the best-fitting role for a free-text profile of skills and interests",
			map[string]any{"profile": stringProp("Skills, interests and experience")}, "profile"), h.PredictRole)
	}

	return s
}

// SearchCareers handles search_careers.
func (h *Handlers) SearchCareers(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	args := arguments(req)
	params := searchuc.Params{
		Query:   stringArg(args, "query"),
		Domain:  stringArg(args, "domain"),
		Skill:   stringArg(args, "skill"),
		Filters: stringsArg(args, "filters"),
	}

	sreq, err := searchuc.BuildRequest(params)
	if err != nil {
		return h.toolError(ToolSearchCareers, err), nil
	}
	results, err := h.search.Search(ctx, &sreq)
	if err != nil {
		return h.toolError(ToolSearchCareers, err), nil
	}

	return jsonResult(map[string]any{
		"items": recordsToMaps(results),
		"total": len(results),
		"query": sreq.Query(),
	})
}

// GetCareer handles get_career.
func (h *Handlers) GetCareer(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	role := stringArg(arguments(req), "role")
	if strings.TrimSpace(role) == "" {
		return mcpgo.NewToolResultError("role is required"), nil
	}

	rec, err := h.careers.Get(ctx, role)
	if err != nil {
		return h.toolError(ToolGetCareer, err), nil
	}
	return jsonResult(rec.Fields())
}

// ListFields handles list_fields.
func (h *Handlers) ListFields(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return jsonResult(map[string]any{"fields": h.careers.Fields(ctx)})
}

// CareerStats handles career_stats.
func (h *Handlers) CareerStats(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return jsonResult(statsView(h.stats.Summary(ctx)))
}

// PredictRole handles predict_role.
func (h *Handlers) PredictRole(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if h.predict == nil {
		return h.toolError(ToolPredictRole, domain.ErrPredictorDisabled), nil
	}
	pred, err := h.predict.Predict(ctx, stringArg(arguments(req), "profile"))
	if err != nil {
		return h.toolError(ToolPredictRole, err), nil
	}
	return jsonResult(predictionView(pred))
}

// toolError reports a failure to the client. Internal errors are logged and masked.
func (h *Handlers) toolError(tool string, err error) *mcpgo.CallToolResult {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrInvalidSchema),
		errors.Is(err, domain.ErrPredictorDisabled):
		return mcpgo.NewToolResultError(err.Error())
	case errors.Is(err, domain.ErrPredictorProviderError):
		h.logger.Warn("Tool provider error", zap.String("tool", tool), zap.Error(err))
		return mcpgo.NewToolResultError(domain.ErrPredictorProviderError.Error())
	default:
		h.logger.Error("Tool failed", zap.String("tool", tool), zap.Error(err))
		return mcpgo.NewToolResultError("internal error")
	}
}

func tool(name, description string, props map[string]any, required ...string) mcpgo.Tool {
	t := mcpgo.NewTool(name, mcpgo.WithDescription(description))
	t.InputSchema = mcpgo.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
	return t
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func arguments(req mcpgo.CallToolRequest) map[string]any {
	args, _ := req.Params.Arguments.(map[string]any)
	return args
}

func stringArg(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return v
}

// stringsArg accepts a JSON array of strings or a single string.
func stringsArg(args map[string]any, name string) []string {
	switch v := args[name].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func recordsToMaps(records []domcareer.Record) []map[string]string {
	out := make([]map[string]string, len(records))
	for i, r := range records {
		out[i] = r.Fields()
	}
	return out
}

func jsonResult(v any) (*mcpgo.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcpgo.NewToolResultText(string(data)), nil
}

type countView struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func countsView(cs []domstats.Count) []countView {
	out := make([]countView, len(cs))
	for i, c := range cs {
		out[i] = countView{Label: c.Label, Count: c.Count}
	}
	return out
}

func statsView(s domstats.Summary) map[string]any {
	return map[string]any{
		"total":         s.Total,
		"domains":       countsView(s.Domains),
		"skills":        countsView(s.Skills),
		"demand_levels": countsView(s.DemandLevels),
		"growth": map[string]any{
			"parsed": s.Growth.Parsed,
			"mean":   s.Growth.Mean,
			"min":    s.Growth.Min,
			"max":    s.Growth.Max,
		},
	}
}

type candidateView struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

func predictionView(p prediction.Prediction) map[string]any {
	alts := make([]candidateView, len(p.Alternatives))
	for i, c := range p.Alternatives {
		alts[i] = candidateView{Role: c.Role, Score: c.Score}
	}
	return map[string]any{"role": p.Role, "score": p.Score, "alternatives": alts}
}
