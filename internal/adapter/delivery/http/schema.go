package http

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/trimmer/internal/entity"
)

const statusError = "error"

// createLinkRequest represents the structure for a request to create a link.
type createLinkRequest struct {
	LongURL     string `json:"long_url" validate:"required,http_url,max=2048"`
	Title       string `json:"title" validate:"required,max=200"`
	CustomAlias string `json:"custom_alias"`
}

// updateTitleRequest represents the structure for a request to rename a link.
type updateTitleRequest struct {
	Title *string `json:"title" validate:"required,max=200"`
}

// linkResponse represents a link as returned by the API.
type linkResponse struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	ShortCode   string    `json:"short_code"`
	CustomAlias string    `json:"custom_alias,omitempty"`
	ShortURL    string    `json:"short_url"`
	LongURL     string    `json:"long_url"`
	Title       string    `json:"title"`
	ClickCount  int64     `json:"click_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toLinkResponse(link *entity.Link, baseURL string) linkResponse {
	return linkResponse{
		ID:          link.ID,
		Key:         link.Key(),
		ShortCode:   link.ShortCode,
		CustomAlias: link.CustomAlias,
		ShortURL:    strings.TrimRight(baseURL, "/") + "/" + link.Key(),
		LongURL:     link.LongURL,
		Title:       link.Title,
		ClickCount:  link.ClickCount,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
	}
}

type linkListResponse struct {
	Links []linkResponse `json:"links"`
}

func toLinkListResponse(links []*entity.Link, baseURL string) linkListResponse {
	resp := linkListResponse{
		Links: make([]linkResponse, 0, len(links)),
	}
	for _, link := range links {
		resp.Links = append(resp.Links, toLinkResponse(link, baseURL))
	}
	return resp
}

type clickResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Referrer  string    `json:"referrer,omitempty"`
	Device    string    `json:"device,omitempty"`
	Country   string    `json:"country,omitempty"`
}

// linkStatsResponse represents the click statistics of a link.
type linkStatsResponse struct {
	LinkID       string           `json:"link_id"`
	ClickCount   int64            `json:"click_count"`
	RecentClicks []clickResponse  `json:"recent_clicks"`
	Devices      map[string]int64 `json:"devices"`
	Countries    map[string]int64 `json:"countries"`
}

func toLinkStatsResponse(stats *entity.LinkStats) linkStatsResponse {
	resp := linkStatsResponse{
		LinkID:       stats.LinkID,
		ClickCount:   stats.ClickCount,
		RecentClicks: make([]clickResponse, 0, len(stats.RecentEvents)),
		Devices:      stats.Devices,
		Countries:    stats.Countries,
	}
	for _, e := range stats.RecentEvents {
		resp.RecentClicks = append(resp.RecentClicks, clickResponse{
			Timestamp: e.Timestamp,
			Referrer:  e.Metadata.Referrer,
			Device:    e.Metadata.Device,
			Country:   e.Metadata.Country,
		})
	}
	if resp.Devices == nil {
		resp.Devices = map[string]int64{}
	}
	if resp.Countries == nil {
		resp.Countries = map[string]int64{}
	}
	return resp
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	invalidQueryResponse = errorResponse{
		Status:  statusError,
		Message: "invalid query parameters",
	}

	unauthorizedResponse = errorResponse{
		Status:  statusError,
		Message: "missing user identity",
	}

	invalidURLResponse = errorResponse{
		Status:  statusError,
		Message: "long url must be an absolute http or https url",
	}

	invalidAliasResponse = errorResponse{
		Status:  statusError,
		Message: "custom alias may only contain letters, digits, '-' and '_' and must not be a reserved word",
	}

	aliasTakenResponse = errorResponse{
		Status:  statusError,
		Message: "custom alias is already taken",
	}

	linkNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "link not found",
	}

	tryAgainResponse = errorResponse{
		Status:  statusError,
		Message: "could not allocate a short code, try again",
	}

	unavailableResponse = errorResponse{
		Status:  statusError,
		Message: "service temporarily unavailable",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url", "http_url":
		return "invalid url"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
