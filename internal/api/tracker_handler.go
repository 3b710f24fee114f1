// File path: internal/api/tracker_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gjagils/Grip/internal/common"
	"github.com/gjagils/Grip/internal/store"
)

func (s *Server) handleTrackers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	activeOnly := r.URL.Query().Get("all") == ""
	trackers, err := s.store.Trackers(ctx, activeOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"trackers": trackers})
}

func (s *Server) handleCreateTracker(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var input store.TrackerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tracker, err := s.store.CreateTracker(ctx, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	logger.Info("api: tracker created", "id", tracker.ID, "name", tracker.Name)
	writeJSON(w, http.StatusCreated, tracker)
}

func (s *Server) handleUpdateTracker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var patch store.TrackerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tracker, err := s.store.UpdateTracker(ctx, id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tracker)
}

func (s *Server) handleDeleteTracker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteTracker(ctx, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// handleUpsertTrackerEntry logs one value for (tracker, date); logging
// the same date again overwrites the stored value.
func (s *Server) handleUpsertTrackerEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req trackerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("value required"))
		return
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.today()
	}
	entry, err := s.store.UpsertTrackerEntry(ctx, id, date, *req.Value)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleTrackerEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	since := s.windowStart(r)
	entries, err := s.store.EntriesForTracker(ctx, id, since)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleAllTrackerEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	since := s.windowStart(r)
	rows, err := s.store.TrackerEntriesSince(ctx, since)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": rows})
}

// windowStart resolves the ?days= query (default 30) to an ISO date.
func (s *Server) windowStart(r *http.Request) string {
	days := 30
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}
	return s.now().AddDate(0, 0, -days).Format(dateLayout)
}
