package http

import (
	"context"
	"net/http"

	"github.com/lealknar/Group-1-Library-Website/internal/app"
	"github.com/lealknar/Group-1-Library-Website/internal/domain"
)

// UserRegistrar is the minimal interface for the auth endpoints.
type UserRegistrar interface {
	Register(ctx context.Context, in app.RegisterInput) (domain.User, error)
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
}

// HandleRegister serves POST /auth/register.
func HandleRegister(svc UserRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req registerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), app.RegisterInput{
			FullName: req.FullName,
			Mobile:   req.Mobile,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(userResponse{
			UserID:   user.ID,
			FullName: user.FullName,
			Message:  "Account created successfully!",
		})
	}
}

// HandleLogin serves POST /auth/login. It only verifies credentials; there
// is no session, and callers pass the returned identity into later calls.
func HandleLogin(svc UserRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req loginRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userResponse{
			UserID:   user.ID,
			FullName: user.FullName,
			Message:  "Authentication Successful!",
		})
	}
}

type registerRequest struct {
	FullName string `json:"fullname"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"fullname"`
	Message  string `json:"message"`
}
