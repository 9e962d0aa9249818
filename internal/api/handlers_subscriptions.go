package api

import (
	"errors"
	"net/http"

	"github.com/ignite/newsletter/internal/pkg/httputil"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// handleSubscribe accepts a form-encoded signup (fields "name" and "email"),
// stores the pending subscriber, and triggers the confirmation email.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "malformed form body")
		return
	}
	name := r.PostForm.Get("name")
	email := r.PostForm.Get("email")

	err := s.subscriptions.Subscribe(r.Context(), name, email)
	var verr *subscription.ValidationError
	switch {
	case err == nil:
		httputil.OK(w)
	case errors.As(err, &verr):
		httputil.JSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: verr.Reason,
			Field: verr.Field,
		})
	default:
		// Storage and confirmation-delivery failures both leave the client
		// without a usable confirmation link.
		httputil.InternalError(w, err)
	}
}

// handleConfirm activates the subscriber named by the subscription_token
// query parameter.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("subscription_token")
	if token == "" {
		httputil.BadRequest(w, "subscription_token is required")
		return
	}

	err := s.subscriptions.Confirm(r.Context(), token)
	switch {
	case err == nil:
		httputil.OK(w)
	case errors.Is(err, subscription.ErrTokenNotFound):
		httputil.NotFound(w, "unknown subscription token")
	default:
		httputil.InternalError(w, err)
	}
}
