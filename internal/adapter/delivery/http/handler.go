package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/trimmer/internal/analytics"
	"github.com/vadimbarashkov/trimmer/internal/entity"
	"github.com/vadimbarashkov/trimmer/internal/usecase"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type healthResponse struct {
	Status    string           `json:"status"`
	Analytics *analytics.Stats `json:"analytics,omitempty"`
}

func handleHealth(stats func() analytics.Stats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		if stats != nil {
			s := stats()
			resp.Analytics = &s
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, resp)
	}
}

type linkUseCase interface {
	CreateLink(ctx context.Context, in usecase.CreateLinkInput) (*entity.Link, error)
	Resolve(ctx context.Context, key string, meta entity.ClickMetadata) (*entity.Link, error)
	GetLink(ctx context.Context, id, ownerID string) (*entity.Link, error)
	ListLinks(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Link, error)
	UpdateTitle(ctx context.Context, id, ownerID, title string) (*entity.Link, error)
	GetLinkStats(ctx context.Context, id, ownerID string) (*entity.LinkStats, error)
}

type linkHandler struct {
	useCase  linkUseCase
	validate *validator.Validate
	baseURL  string
}

func newLinkHandler(useCase linkUseCase, validate *validator.Validate, baseURL string) *linkHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &linkHandler{
		useCase:  useCase,
		validate: validate,
		baseURL:  baseURL,
	}
}

// decode reads and validates a JSON body, writing the error response itself.
func (h *linkHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		render.Status(r, http.StatusBadRequest)
		if errors.Is(err, io.EOF) {
			render.JSON(w, r, emptyRequestBodyResponse)
		} else {
			render.JSON(w, r, invalidRequestBodyResponse)
		}
		return false
	}

	if err := h.validate.Struct(v); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return false
	}

	return true
}

// renderError maps a use case error onto a status code and response body.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := http.StatusInternalServerError, serverErrorResponse

	switch {
	case errors.Is(err, entity.ErrInvalidURL):
		status, resp = http.StatusBadRequest, invalidURLResponse
	case errors.Is(err, entity.ErrInvalidAlias):
		status, resp = http.StatusBadRequest, invalidAliasResponse
	case errors.Is(err, entity.ErrOwnerRequired):
		status, resp = http.StatusUnauthorized, unauthorizedResponse
	case errors.Is(err, entity.ErrAliasTaken):
		status, resp = http.StatusConflict, aliasTakenResponse
	case errors.Is(err, entity.ErrLinkNotFound):
		status, resp = http.StatusNotFound, linkNotFoundResponse
	case errors.Is(err, entity.ErrGenerationExhausted):
		status, resp = http.StatusServiceUnavailable, tryAgainResponse
	case errors.Is(err, entity.ErrStoreUnavailable):
		status, resp = http.StatusServiceUnavailable, unavailableResponse
	}

	if status >= http.StatusInternalServerError {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

func (h *linkHandler) createLink(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest

	if !h.decode(w, r, &req) {
		return
	}

	link, err := h.useCase.CreateLink(r.Context(), usecase.CreateLinkInput{
		LongURL: req.LongURL,
		Title:   req.Title,
		OwnerID: ownerFromContext(r.Context()),
		Alias:   req.CustomAlias,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toLinkResponse(link, h.baseURL))
}

func (h *linkHandler) listLinks(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidQueryResponse)
		return
	}

	offset, err := queryInt(r, "offset")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidQueryResponse)
		return
	}

	links, err := h.useCase.ListLinks(r.Context(), ownerFromContext(r.Context()), limit, offset)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkListResponse(links, h.baseURL))
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}

	return n, nil
}

func (h *linkHandler) getLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	link, err := h.useCase.GetLink(r.Context(), id, ownerFromContext(r.Context()))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkResponse(link, h.baseURL))
}

func (h *linkHandler) updateTitle(w http.ResponseWriter, r *http.Request) {
	var req updateTitleRequest

	if !h.decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")

	link, err := h.useCase.UpdateTitle(r.Context(), id, ownerFromContext(r.Context()), *req.Title)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkResponse(link, h.baseURL))
}

func (h *linkHandler) getLinkStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	stats, err := h.useCase.GetLinkStats(r.Context(), id, ownerFromContext(r.Context()))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLinkStatsResponse(stats))
}

// redirect sends the visitor to the destination of key. The click is
// recorded in the background and never delays the response.
func (h *linkHandler) redirect(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	link, err := h.useCase.Resolve(r.Context(), key, analytics.MetadataFromRequest(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=0, no-cache")
	http.Redirect(w, r, link.LongURL, http.StatusFound)
}
