package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/response"
	authdomain "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

type AuthService interface {
	StartFlow(ctx context.Context, provider string, req authdomain.FlowRequest) (authdomain.FlowResult, error)
	CompleteMagicLink(ctx context.Context, userID, secret, next string) (authdomain.SignIn, error)
	CompleteCallback(ctx context.Context, provider string, cb authdomain.Callback) (authdomain.SignIn, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*authdomain.User, error)
	EndSession(ctx context.Context, token string) error
}

type AuthHandler struct {
	auth   AuthService
	logger *logger.Logger
}

func NewAuthHandler(auth AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: log.Named("AuthHandler")}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// HandleLogin exchanges an email and password for a session token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, "Login", err)
		return
	}
	response.JSON(w, http.StatusOK, tokenResponse{Token: token})
}

type startFlowRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	SuccessRedirect string `json:"successRedirect" validate:"omitempty,url"`
	FailureRedirect string `json:"failureRedirect" validate:"omitempty,url"`
}

// HandleStartFlow begins sign-in with the provider named in the path.
func (h *AuthHandler) HandleStartFlow(w http.ResponseWriter, r *http.Request) {
	var req startFlowRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	result, err := h.auth.StartFlow(r.Context(), chi.URLParam(r, "provider"), authdomain.FlowRequest{
		Email:           req.Email,
		SuccessRedirect: req.SuccessRedirect,
		FailureRedirect: req.FailureRedirect,
	})
	if err != nil {
		writeError(w, h.logger, "StartFlow", err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// HandleVerify completes a magic link sign-in. With next set the browser is
// redirected there; otherwise the token is returned as JSON.
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.auth.CompleteMagicLink(r.Context(), q.Get("userId"), q.Get("secret"), q.Get("next"))
	if err != nil {
		writeError(w, h.logger, "Verify", err)
		return
	}
	writeSignIn(w, r, result)
}

// HandleOAuthCallback is where the provider sends the browser back after consent.
func (h *AuthHandler) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.auth.CompleteCallback(r.Context(), chi.URLParam(r, "provider"), authdomain.Callback{
		State: q.Get("state"),
		Code:  q.Get("code"),
		Error: q.Get("error"),
	})
	if err != nil {
		writeError(w, h.logger, "OAuthCallback", err)
		return
	}
	writeSignIn(w, r, result)
}

func writeSignIn(w http.ResponseWriter, r *http.Request, result authdomain.SignIn) {
	if result.RedirectURL != "" {
		http.Redirect(w, r, result.RedirectURL, http.StatusFound)
		return
	}
	response.JSON(w, http.StatusOK, tokenResponse{Token: result.Token})
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context(), middleware.TokenFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, "Me", err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.EndSession(r.Context(), middleware.TokenFromContext(r.Context())); err != nil {
		writeError(w, h.logger, "Logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
