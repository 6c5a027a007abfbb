package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/iKaueMatos/twitter-microservices/internal/common"
	"github.com/iKaueMatos/twitter-microservices/internal/server/messages"
)

// activationCodePattern matches the UUID shape of issued activation keys.
var activationCodePattern = regexp.MustCompile(`^\w{8}-\w{4}-\w{4}-\w{4}-\w{12}$`)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type authenticationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authenticationResponse struct {
	JWT string `json:"jwt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateRegister(&req); msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	_, err := s.auth.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		s.writeFailure(w, r, err, req.Email)
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: messages.Generate("activation.send.success")})
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	jwt, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeFailure(w, r, err, req.Email)
		return
	}

	s.writeJSON(w, http.StatusOK, authenticationResponse{JWT: jwt})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("activationCode")
	if !activationCodePattern.MatchString(key) {
		s.writeError(w, http.StatusBadRequest, "invalid activation code format")
		return
	}

	if err := s.auth.Activate(r.Context(), key); err != nil {
		s.writeFailure(w, r, err, key)
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: messages.Generate("account.activation.success")})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	signed := mux.Vars(r)["jwt"]

	status, err := s.tokens.IsValid(r.Context(), signed)
	if err != nil {
		s.writeFailure(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(status))
}

// writeFailure maps a lifecycle failure kind to its wire status and body.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error, subject string) {
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		s.writeError(w, http.StatusConflict, messages.Generate("error.account.already_exists", subject))
	case errors.Is(err, common.ErrNotFound):
		s.writeError(w, http.StatusNotFound, messages.Generate("error.activation_code.not_found"))
	case errors.Is(err, common.ErrActivationCodeExpired):
		s.writeError(w, http.StatusGone, messages.Generate("error.activation_code.expired"))
	case errors.Is(err, common.ErrInvalidCredentials):
		s.writeError(w, http.StatusForbidden, messages.Generate("error.account.credentials_invalid"))
	case errors.Is(err, common.ErrAccountNotActivated):
		s.writeError(w, http.StatusForbidden, messages.Generate("error.account.not_activated", subject))
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, errorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func validateRegister(req *registerRequest) string {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return "a valid email is required"
	}
	if len(req.Password) < 8 {
		return "password must be at least 8 characters"
	}
	if req.Username == "" {
		return "username is required"
	}
	return ""
}
