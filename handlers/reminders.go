package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charan23k2004/Reminder-Agent/logging"
	"github.com/charan23k2004/Reminder-Agent/models"
	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type ReminderHandler struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewReminderHandler(db *pgxpool.Pool, redisClient *redis.Client) *ReminderHandler {
	return &ReminderHandler{db: db, redis: redisClient}
}

type createReminderRequest struct {
	Title                 string `json:"title"`
	Body                  string `json:"body"`
	When                  string `json:"when"`
	Recurrence            string `json:"recurrence"`
	RepeatIntervalSeconds *int64 `json:"repeat_interval_seconds"`
	Category              string `json:"category"`
	Tags                  string `json:"tags"`
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	var req createReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateTitle(req.Title); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := utils.ValidateRecurrence(req.Recurrence); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	when, err := time.Parse(time.RFC3339, req.When)
	if err != nil {
		http.Error(w, "Field 'when' must be an RFC3339 timestamp", http.StatusBadRequest)
		return
	}

	rem := models.Reminder{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          req.Title,
		Body:           req.Body,
		When:           when.Unix(),
		CreatedAt:      time.Now().Unix(),
		Status:         models.StatusScheduled,
		Recurrence:     req.Recurrence,
		RepeatInterval: req.RepeatIntervalSeconds,
		Category:       req.Category,
		Tags:           req.Tags,
	}

	if err := utils.SaveReminder(rem, h.db); err != nil {
		logging.Logger.Errorf("Error saving reminder: %v", err)
		http.Error(w, "Failed to create reminder", http.StatusInternalServerError)
		return
	}
	if err := utils.ScheduleReminder(h.redis, rem.ID, rem.When); err != nil {
		logging.Logger.Errorf("Error scheduling reminder %s: %v", rem.ID, err)
		http.Error(w, "Failed to schedule reminder", http.StatusInternalServerError)
		return
	}

	logging.Logger.Infof("Scheduled reminder %s for %s", rem.ID, when.UTC().Format(time.RFC3339))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"id":            rem.ID,
		"scheduled_for": when.UTC().Format(time.RFC3339),
	})
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	reminders, err := utils.GetReminders(userID, h.db)
	if err != nil {
		logging.Logger.Errorf("Error listing reminders for %s: %v", userID, err)
		http.Error(w, "Failed to fetch reminders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}

// loadOwned fetches a reminder and hides its existence from non-owners.
func (h *ReminderHandler) loadOwned(w http.ResponseWriter, r *http.Request) *models.Reminder {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return nil
	}

	rid := mux.Vars(r)["rid"]
	rem, err := utils.GetReminder(rid, h.db)
	if err != nil || rem.UserID != userID {
		http.Error(w, "Reminder not found", http.StatusNotFound)
		return nil
	}
	return rem
}

func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	rem := h.loadOwned(w, r)
	if rem == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rem)
}

func (h *ReminderHandler) Snooze(w http.ResponseWriter, r *http.Request) {
	rem := h.loadOwned(w, r)
	if rem == nil {
		return
	}

	minutes := 5
	if raw := r.URL.Query().Get("minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid minutes value", http.StatusBadRequest)
			return
		}
		minutes = parsed
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if err := utils.SnoozeReminder(rem.ID, until.Unix(), h.db); err != nil {
		logging.Logger.Errorf("Error snoozing reminder %s: %v", rem.ID, err)
		http.Error(w, "Failed to snooze reminder", http.StatusInternalServerError)
		return
	}
	if err := utils.ScheduleReminder(h.redis, rem.ID, until.Unix()); err != nil {
		logging.Logger.Errorf("Error rescheduling snoozed reminder %s: %v", rem.ID, err)
		http.Error(w, "Failed to snooze reminder", http.StatusInternalServerError)
		return
	}

	logging.Logger.Infof("Snoozed reminder %s for %d minutes", rem.ID, minutes)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":            rem.ID,
		"snoozed_until": until.UTC().Format(time.RFC3339),
	})
}

func (h *ReminderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	rem := h.loadOwned(w, r)
	if rem == nil {
		return
	}

	if err := utils.UpdateReminderStatus(rem.ID, models.StatusCancelled, h.db); err != nil {
		logging.Logger.Errorf("Error cancelling reminder %s: %v", rem.ID, err)
		http.Error(w, "Failed to cancel reminder", http.StatusInternalServerError)
		return
	}
	if err := utils.UnscheduleReminder(h.redis, rem.ID); err != nil {
		logging.Logger.Errorf("Error unscheduling reminder %s: %v", rem.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": rem.ID, "status": models.StatusCancelled})
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rem := h.loadOwned(w, r)
	if rem == nil {
		return
	}

	if err := utils.DeleteReminder(rem.ID, h.db); err != nil {
		logging.Logger.Errorf("Error deleting reminder %s: %v", rem.ID, err)
		http.Error(w, "Failed to delete reminder", http.StatusInternalServerError)
		return
	}
	if err := utils.UnscheduleReminder(h.redis, rem.ID); err != nil {
		logging.Logger.Errorf("Error unscheduling reminder %s: %v", rem.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": rem.ID, "status": "deleted"})
}

// Poll returns the caller's fired reminders, newer than ?since when given.
func (h *ReminderHandler) Poll(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	var since int64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid since value %q", raw), http.StatusBadRequest)
			return
		}
		since = parsed
	}

	notifications, err := utils.FiredReminders(userID, since, h.db)
	if err != nil {
		logging.Logger.Errorf("Error polling notifications for %s: %v", userID, err)
		http.Error(w, "Failed to fetch notifications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.Notification{"notifications": notifications})
}
