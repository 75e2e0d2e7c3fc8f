package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"debtster-insights/internal/search"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type SearchRequest struct {
	Query           string             `json:"query"`
	FuzzyThreshold  float64            `json:"fuzzy_threshold"`
	MaxResults      int                `json:"max_results"`
	Fields          []string           `json:"fields"`
	BoostFields     map[string]float64 `json:"boost_fields"`
	ExactMatchBoost float64            `json:"exact_match_boost"`
}

func ValidateSearchRequest(r *http.Request) (*SearchRequest, error) {
	var req SearchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return nil, err
	}

	if strings.TrimSpace(req.Query) == "" {
		return nil, &ValidationError{Field: "query", Message: "query is required"}
	}
	if req.FuzzyThreshold < 0 || req.FuzzyThreshold > 1 {
		return nil, &ValidationError{Field: "fuzzy_threshold", Message: "fuzzy_threshold must be within [0,1]"}
	}
	if req.MaxResults < 0 {
		return nil, &ValidationError{Field: "max_results", Message: "max_results must not be negative"}
	}

	for _, field := range req.Fields {
		if !search.KnownField(field) {
			return nil, &ValidationError{Field: "fields", Message: "unknown search field: " + field}
		}
	}
	for field := range req.BoostFields {
		if !search.KnownField(field) {
			return nil, &ValidationError{Field: "boost_fields", Message: "unknown search field: " + field}
		}
	}

	return &req, nil
}

func (r *SearchRequest) ToOptions(defaultMax int) search.Options {
	opts := search.Options{
		FuzzyThreshold:  r.FuzzyThreshold,
		MaxResults:      r.MaxResults,
		Fields:          r.Fields,
		BoostFields:     r.BoostFields,
		ExactMatchBoost: r.ExactMatchBoost,
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = defaultMax
	}
	return opts
}

type RecommendationsRequest struct {
	MaxRecommendations int  `json:"max_recommendations"`
	OnlyActionable     bool `json:"only_actionable"`
}

func ValidateRecommendationsRequest(r *http.Request) (*RecommendationsRequest, error) {
	var req RecommendationsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return nil, err
	}

	if req.MaxRecommendations < 0 {
		return nil, &ValidationError{Field: "max_recommendations", Message: "max_recommendations must not be negative"}
	}

	return &req, nil
}

type ReportExportRequest struct {
	Fields             []string `json:"fields"`
	MaxRecommendations int      `json:"max_recommendations"`
}

func ValidateReportExportRequest(r *http.Request) (*ReportExportRequest, error) {
	var req ReportExportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return nil, err
	}

	if req.MaxRecommendations < 0 {
		return nil, &ValidationError{Field: "max_recommendations", Message: "max_recommendations must not be negative"}
	}

	return &req, nil
}
