package handlers

import (
	"fmt"
	"net/http"
	"strings"

	applog "nutrisnap/internal/log"
)

const (
	eventGuideDismissed  = "guide_dismissed"
	eventTutorialWatched = "tutorial_watched"
	eventTimeSpent       = "time_spent"
	eventReset           = "reset"
)

type experienceEvent struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Minutes int    `json:"minutes"`
}

// Experience returns the activity summary that drives in-app guidance.
func Experience(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if activity == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "activity tracking is not configured")
		return
	}

	summary, err := activity.Summary(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ExperienceEvents records guide, tutorial and time-spent events.
func ExperienceEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if activity == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "activity tracking is not configured")
		return
	}

	var event experienceEvent
	if err := decodeJSON(w, r, &event); err != nil {
		respondError(w, r, err)
		return
	}

	ctx := r.Context()
	var err error
	switch strings.TrimSpace(event.Type) {
	case eventGuideDismissed:
		if strings.TrimSpace(event.ID) == "" {
			err = fmt.Errorf("%w: id is required", errInvalidRequest)
			break
		}
		_, err = activity.GuideDismissed(ctx, userID, event.ID)
	case eventTutorialWatched:
		if strings.TrimSpace(event.ID) == "" {
			err = fmt.Errorf("%w: id is required", errInvalidRequest)
			break
		}
		_, err = activity.TutorialWatched(ctx, userID, event.ID)
	case eventTimeSpent:
		_, err = activity.TimeSpent(ctx, userID, event.Minutes)
	case eventReset:
		err = activity.Reset(ctx, userID)
	default:
		err = fmt.Errorf("%w: unknown event type %q", errInvalidRequest, event.Type)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	applog.Debug(ctx, "experience event recorded", "type", event.Type)

	summary, err := activity.Summary(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
