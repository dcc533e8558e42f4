package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hongminglow/attendance-be/internal/auth"
	"github.com/hongminglow/attendance-be/internal/http/respond"
	"github.com/hongminglow/attendance-be/internal/models/dto"
	"github.com/hongminglow/attendance-be/internal/service"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	accounts *service.AccountService
	tokens   *auth.TokenManager
	logger   *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(accounts *service.AccountService, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /register", h.handleRegister)
	mux.HandleFunc("POST /login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if _, err := h.accounts.Register(r.Context(), req.Email, req.Password); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Registration successful. Wait for admin approval"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error("generate token failed", "user_id", user.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Message: "Login successful", Token: token, User: user})
}
