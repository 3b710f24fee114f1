// File path: internal/api/insights_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gjagils/Grip/internal/common"
)

func (s *Server) handleInsightHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	history, err := s.store.InsightHistory(ctx, 20)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

// handleAskInsight sends the user's question plus the serialized context
// to the coaching model and records the exchange in the insight log.
func (s *Server) handleAskInsight(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("question required"))
		return
	}
	contextType := req.ContextType
	if contextType == "" {
		contextType = "general"
	}
	logger.Info("api: insight requested", "question_length", len(question), "context_type", contextType)
	answer, err := s.coach.Ask(ctx, question)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	insight, err := s.store.RecordInsight(ctx, question, answer, contextType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response": answer,
		"insight":  insight,
		"provider": s.provider.Name(),
	})
}
