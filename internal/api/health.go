package api

import (
	"net/http"

	"github.com/ignite/newsletter/internal/pkg/httputil"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// handleHealth reports liveness. When a database is configured it is pinged
// so load balancers see storage outages.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}

	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			httputil.JSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}

	httputil.JSON(w, http.StatusOK, resp)
}
