package dashboard

import (
	"errors"
	"net/http"

	"postboard-go/internal/common/response"
	"postboard-go/internal/context"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	user := context.GetUserFromContext(r.Context())
	if user == nil {
		response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Not authenticated")
		return
	}

	overview, err := h.service.GetOverview(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, response.CodeNotFound, "User not found")
			return
		}
		response.InternalError(w, err, "fetching dashboard")
		return
	}

	response.JSON(w, http.StatusOK, overview)
}
