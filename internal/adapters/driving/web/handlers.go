package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.ports.Groups.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	detail, err := s.ports.Groups.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := domain.SearchOptions{}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}
	for _, g := range q["group"] {
		for _, id := range strings.Split(g, ",") {
			if id = strings.TrimSpace(id); id != "" {
				opts.GroupIDs = append(opts.GroupIDs, id)
			}
		}
	}

	results, err := s.ports.Search.Search(r.Context(), q.Get("q"), opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.ports.Topics.Topics(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) handleHighlights(w http.ResponseWriter, r *http.Request) {
	if s.ports.Highlights == nil {
		writeError(w, http.StatusServiceUnavailable, "highlights not available")
		return
	}
	highlights, err := s.ports.Highlights.List(r.Context(), r.URL.Query().Get("groupId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, highlights)
}

type addHighlightRequest struct {
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName"`
	Text      string `json:"text"`
}

func (s *Server) handleAddHighlight(w http.ResponseWriter, r *http.Request) {
	if s.ports.Highlights == nil {
		writeError(w, http.StatusServiceUnavailable, "highlights not available")
		return
	}

	var req addHighlightRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h, err := s.ports.Highlights.Add(r.Context(), req.GroupID, req.GroupName, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleRemoveHighlight(w http.ResponseWriter, r *http.Request) {
	if s.ports.Highlights == nil {
		writeError(w, http.StatusServiceUnavailable, "highlights not available")
		return
	}
	if err := s.ports.Highlights.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("api: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}
