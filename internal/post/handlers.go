package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"postboard-go/internal/common/response"
	userctx "postboard-go/internal/context"
	"postboard-go/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const invalidPageMessage = "limit must be a positive integer and offset a non-negative integer"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := userctx.GetUserFromContext(r.Context())

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if err := validation.Validate(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidInput, validation.Message(err))
		return
	}

	post, err := h.service.Create(r.Context(), user.ID, &req)
	if err != nil {
		response.InternalError(w, err, "creating post")
		return
	}

	response.JSON(w, http.StatusCreated, PostResponse{Post: post})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidInput, invalidPageMessage)
		return
	}

	posts, err := h.service.List(r.Context(), page)
	if err != nil {
		if errors.Is(err, ErrInvalidPage) {
			response.Error(w, http.StatusBadRequest, response.CodeInvalidInput, invalidPageMessage)
			return
		}
		response.InternalError(w, err, "listing posts")
		return
	}

	response.JSON(w, http.StatusOK, PostsResponse{Posts: posts})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := userctx.GetUserFromContext(r.Context())

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		response.Error(w, http.StatusNotFound, response.CodeNotFound, "Post not found")
		return
	}

	err = h.service.Delete(r.Context(), user.ID, postID)
	switch {
	case err == nil:
		response.Message(w, http.StatusOK, "Post deleted")
	case errors.Is(err, ErrPostNotFound):
		response.Error(w, http.StatusNotFound, response.CodeNotFound, "Post not found")
	case errors.Is(err, ErrForbidden):
		response.Error(w, http.StatusForbidden, response.CodeForbidden, "You can only delete your own posts")
	default:
		response.InternalError(w, err, "deleting post")
	}
}

// parsePage reads limit and offset, falling back to the first page
func parsePage(r *http.Request) (Page, error) {
	page := Page{Limit: DefaultLimit}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return page, ErrInvalidPage
		}
		page.Limit = limit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return page, ErrInvalidPage
		}
		page.Offset = offset
	}
	return page, nil
}
