package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charan23k2004/Reminder-Agent/logging"
	"github.com/charan23k2004/Reminder-Agent/services"
	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssistantHandler struct {
	db     *pgxpool.Pool
	gemini *services.GeminiClient
}

func NewAssistantHandler(db *pgxpool.Pool, gemini *services.GeminiClient) *AssistantHandler {
	return &AssistantHandler{db: db, gemini: gemini}
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	services.ParsedReminder
	Source string `json:"source"`
}

// Parse turns free-form text into a structured reminder draft. Gemini does
// the extraction when configured; otherwise (or when the call fails) the
// rule agent produces a usable draft.
func (h *AssistantHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Field 'text' is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	if h.gemini.Enabled() {
		parsed, err := h.gemini.ParseReminder(r.Context(), req.Text, now)
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(parseResponse{ParsedReminder: *parsed, Source: "gemini"})
			return
		}
		logging.Logger.Warnf("Gemini parse failed, using rule agent: %v", err)
	}

	parsed := services.FallbackParse(req.Text, now)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parseResponse{ParsedReminder: *parsed, Source: "rules"})
}

type suggestRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type suggestResponse struct {
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	SnoozeMinutes int    `json:"snooze_minutes"`
}

// Suggest runs the rule agent over a draft reminder.
func (h *AssistantHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "Field 'title' is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggestResponse{
		Category:      services.SuggestCategory(req.Title, req.Body),
		Priority:      services.ClassifyPriority(req.Title, req.Body),
		SnoozeMinutes: services.SuggestSnoozeMinutes(req.Title),
	})
}

// Summary reports the caller's reminder counts by category.
func (h *AssistantHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	reminders, err := utils.GetReminders(userID, h.db)
	if err != nil {
		logging.Logger.Errorf("Error summarizing reminders for %s: %v", userID, err)
		http.Error(w, "Failed to fetch reminders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"summary": services.SummarizeReminders(reminders)})
}
