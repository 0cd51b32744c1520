package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/elskow/gatekeeper/internal/api"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authPayload struct {
	User  Profile `json:"user"`
	Token string  `json:"token"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = NormalizeEmail(req.Email)

	if violations := ValidateSignup(req.Username, req.Email, req.Password); violations != nil {
		h.log.Warn("invalid signup request",
			zap.String("username", req.Username),
			zap.Int("violations", len(violations)))
		api.WriteValidationErrors(w, violations)
		return
	}

	user, token, err := h.service.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			api.WriteError(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, ErrEmailTaken):
			api.WriteError(w, http.StatusBadRequest, "Email already exists")
		case errors.Is(err, ErrUserExists):
			api.WriteError(w, http.StatusBadRequest, "User already exists")
		default:
			h.log.Error("failed to register user",
				zap.String("username", req.Username),
				zap.Error(err))
			api.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.log.Info("user registered", zap.String("user_id", user.ID))

	api.WriteSuccess(w, http.StatusCreated, "User registered successfully", authPayload{
		User:  user.Profile(),
		Token: token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = NormalizeEmail(req.Email)

	if violations := ValidateLogin(req.Email, req.Password); violations != nil {
		api.WriteValidationErrors(w, violations)
		return
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			api.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	api.WriteSuccess(w, http.StatusOK, "Login successful", authPayload{
		User:  user.Profile(),
		Token: token,
	})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserFromContext(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.Profile(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			api.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("failed to fetch profile",
			zap.String("user_id", userID),
			zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	api.WriteSuccess(w, http.StatusOK, "", map[string]Profile{"user": user.Profile()})
}
