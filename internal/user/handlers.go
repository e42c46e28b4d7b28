package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"postboard-go/internal/auth"
	"postboard-go/internal/common/models"
	"postboard-go/internal/common/response"
	userctx "postboard-go/internal/context"
	"postboard-go/internal/uploader"
	"postboard-go/internal/validation"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog/log"
)

// AuthService issues session tokens for authenticated users
type AuthService interface {
	GenerateToken(user *models.User) (string, error)
	TokenExpiry() time.Duration
}

// Uploads receives profile pictures and removes them again when needed
type Uploads interface {
	Receive(w http.ResponseWriter, r *http.Request) (*uploader.StoredFile, error)
	Discard(file *uploader.StoredFile) error
	DiscardPath(path string) error
}

type Handler struct {
	service     Service
	authService AuthService
	uploads     Uploads
}

func NewHandler(service Service, authService AuthService, uploads Uploads) *Handler {
	return &Handler{
		service:     service,
		authService: authService,
		uploads:     uploads,
	}
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidInput, validation.Message(err))
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			response.Error(w, http.StatusConflict, response.CodeAlreadyExists, "Email already exists")
			return
		}
		response.InternalError(w, err, "registering user")
		return
	}

	if !h.startSession(w, r, user) {
		return
	}
	response.JSON(w, http.StatusCreated, UserResponse{User: user.Public()})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}

	if err := validation.Validate(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidInput, validation.Message(err))
		return
	}

	user, err := h.service.ValidateCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid email or password")
			return
		}
		response.InternalError(w, err, "validating credentials")
		return
	}

	if !h.startSession(w, r, user) {
		return
	}
	response.JSON(w, http.StatusOK, UserResponse{User: user.Public()})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w, r)
	response.Message(w, http.StatusOK, "Logged out successfully")
}

// HandleCheckAuth reports the current session without requiring one.
// It runs behind jwtauth.Verifier but not behind the authenticator.
func (h *Handler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	info := userctx.GetUserFromContext(r.Context())
	if err != nil || token == nil || info == nil {
		response.Message(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.service.GetByID(r.Context(), info.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Message(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		response.InternalError(w, err, "checking authentication")
		return
	}

	response.JSON(w, http.StatusOK, UserResponse{User: user.Public()})
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	info := userctx.GetUserFromContext(r.Context())

	user, err := h.service.GetByID(r.Context(), info.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, response.CodeNotFound, "User not found")
			return
		}
		response.InternalError(w, err, "loading profile")
		return
	}

	response.JSON(w, http.StatusOK, UserResponse{User: user.Public()})
}

// HandleUploadProfilePic stores a new profile picture and points the
// profile at it. The stored file is removed again if the profile cannot
// be updated, and the previous picture is removed once it has been replaced.
func (h *Handler) HandleUploadProfilePic(w http.ResponseWriter, r *http.Request) {
	info := userctx.GetUserFromContext(r.Context())

	previous, err := h.service.GetByID(r.Context(), info.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, response.CodeNotFound, "User not found")
			return
		}
		response.InternalError(w, err, "loading profile")
		return
	}

	file, err := h.uploads.Receive(w, r)
	if err != nil {
		uploader.WriteError(w, err)
		return
	}

	user, err := h.service.UpdateProfilePic(r.Context(), info.ID, file.Path)
	if err != nil {
		if rmErr := h.uploads.Discard(file); rmErr != nil {
			log.Error().
				Err(rmErr).
				Str("filename", file.Filename).
				Msg("failed to remove orphaned upload")
		}
		if errors.Is(err, ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, response.CodeNotFound, "User not found")
			return
		}
		response.InternalError(w, err, "saving profile picture")
		return
	}

	if previous.ProfilePic != "" && previous.ProfilePic != user.ProfilePic {
		if err := h.uploads.DiscardPath(previous.ProfilePic); err != nil {
			log.Warn().
				Err(err).
				Str("path", previous.ProfilePic).
				Msg("failed to remove replaced profile picture")
		}
	}

	response.JSON(w, http.StatusOK, UserResponse{User: user.Public()})
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) bool {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		response.InternalError(w, err, "generating token")
		return false
	}
	auth.SetCookie(w, r, token, h.authService.TokenExpiry())
	return true
}
