package auth

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/anshul/ecommerce-store/backend/internal/common"
	"github.com/anshul/ecommerce-store/backend/internal/httpx"
	"github.com/anshul/ecommerce-store/backend/internal/models"
	"github.com/anshul/ecommerce-store/backend/internal/validate"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register creates a new user account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "username, email, and password are required")
		return
	}

	token, user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpx.ServiceError(w, h.log, err)
		return
	}

	h.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	httpx.JSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

// Login authenticates a user and issues a fresh token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.ServiceError(w, h.log, err)
		return
	}

	httpx.JSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := common.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		httpx.ServiceError(w, h.log, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]models.PublicUser{"user": user})
}
