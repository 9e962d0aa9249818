package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ignite/newsletter/internal/auth"
	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/pkg/httputil"
	"github.com/ignite/newsletter/internal/pkg/logger"
)

// publishRequest uses pointers so a missing field is distinguishable from an
// empty one: absent title or content is a 400.
type publishRequest struct {
	Title   *string `json:"title"`
	Content *struct {
		HTML *string `json:"html"`
		Text *string `json:"text"`
	} `json:"content"`
}

// handlePublish broadcasts an issue to all confirmed subscribers. Requires
// Basic credentials of a registered publisher.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	creds, err := auth.ParseBasicAuth(r.Header.Get("Authorization"))
	if err != nil {
		unauthorized(w)
		return
	}

	userID, err := s.validator.ValidateCredentials(r.Context(), creds)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			unauthorized(w)
			return
		}
		httputil.InternalError(w, err)
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "malformed JSON body")
		return
	}
	issue, err := req.toIssue()
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	logger.Info("publishing issue", "user_id", userID.String(), "title", issue.Title)

	if err := s.newsletters.Publish(r.Context(), issue); err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w)
}

func (r *publishRequest) toIssue() (domain.Issue, error) {
	if r.Title == nil {
		return domain.Issue{}, errors.New("title is required")
	}
	if r.Content == nil {
		return domain.Issue{}, errors.New("content is required")
	}
	if r.Content.HTML == nil {
		return domain.Issue{}, errors.New("content.html is required")
	}
	if r.Content.Text == nil {
		return domain.Issue{}, errors.New("content.text is required")
	}
	return domain.Issue{
		Title: *r.Title,
		HTML:  *r.Content.HTML,
		Text:  *r.Content.Text,
	}, nil
}

// unauthorized writes the 401 challenge. The realm tells Basic-auth clients
// which credential scope to present.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="publish"`)
	httputil.Error(w, http.StatusUnauthorized, "authentication required")
}
