package experience

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	applog "nutrisnap/internal/log"
)

const keyPrefix = "nutrisnap_user_activity:"

// Tracker records activity events per user in a Store. Updates made through
// one Tracker are serialised; separate processes sharing a Store may
// interleave.
type Tracker struct {
	store Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewTracker returns a Tracker backed by store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Load returns the stored activity for userID, or a fresh one.
func (t *Tracker) Load(ctx context.Context, userID string) (Activity, error) {
	key, err := activityKey(userID)
	if err != nil {
		return Activity{}, err
	}

	data, err := t.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return NewActivity(t.now()), nil
	}
	if err != nil {
		return Activity{}, err
	}

	var activity Activity
	if err := json.Unmarshal(data, &activity); err != nil {
		applog.Error(ctx, "discarding unreadable activity record", "userID", userID, "error", err)
		return NewActivity(t.now()), nil
	}
	if activity.FirstLogin.IsZero() {
		activity.FirstLogin = t.now().UTC()
	}
	return activity, nil
}

// Summary loads the activity of userID and derives its summary.
func (t *Tracker) Summary(ctx context.Context, userID string) (Summary, error) {
	activity, err := t.Load(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(activity, t.now()), nil
}

// MealLogged counts a logged meal.
func (t *Tracker) MealLogged(ctx context.Context, userID string) (Activity, error) {
	return t.update(ctx, userID, func(a *Activity, now time.Time) {
		a.MealsLogged++
		a.LastLogin = now
	})
}

// PhotoAnalyzed counts an analyzed photo.
func (t *Tracker) PhotoAnalyzed(ctx context.Context, userID string) (Activity, error) {
	return t.update(ctx, userID, func(a *Activity, now time.Time) {
		a.PhotosAnalyzed++
		a.LastLogin = now
	})
}

// GuideDismissed records that the user closed guide.
func (t *Tracker) GuideDismissed(ctx context.Context, userID, guide string) (Activity, error) {
	guide = strings.TrimSpace(guide)
	if guide == "" {
		return Activity{}, errors.New("experience: guide must not be empty")
	}
	return t.update(ctx, userID, func(a *Activity, _ time.Time) {
		if !slices.Contains(a.GuideDismissals, guide) {
			a.GuideDismissals = append(a.GuideDismissals, guide)
		}
	})
}

// TutorialWatched records that the user watched tutorial.
func (t *Tracker) TutorialWatched(ctx context.Context, userID, tutorial string) (Activity, error) {
	tutorial = strings.TrimSpace(tutorial)
	if tutorial == "" {
		return Activity{}, errors.New("experience: tutorial must not be empty")
	}
	return t.update(ctx, userID, func(a *Activity, _ time.Time) {
		if !slices.Contains(a.TutorialsWatched, tutorial) {
			a.TutorialsWatched = append(a.TutorialsWatched, tutorial)
		}
	})
}

// TimeSpent adds minutes of usage. Negative values are ignored.
func (t *Tracker) TimeSpent(ctx context.Context, userID string, minutes int) (Activity, error) {
	return t.update(ctx, userID, func(a *Activity, _ time.Time) {
		if minutes > 0 {
			a.TotalMinutes += minutes
		}
	})
}

// Reset forgets all activity of userID.
func (t *Tracker) Reset(ctx context.Context, userID string) error {
	key, err := activityKey(userID)
	if err != nil {
		return err
	}
	return t.store.Delete(ctx, key)
}

func (t *Tracker) update(ctx context.Context, userID string, apply func(*Activity, time.Time)) (Activity, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	activity, err := t.Load(ctx, userID)
	if err != nil {
		return Activity{}, err
	}

	apply(&activity, t.now().UTC())

	data, err := json.Marshal(activity)
	if err != nil {
		return Activity{}, fmt.Errorf("experience: encode activity: %w", err)
	}
	key, _ := activityKey(userID)
	if err := t.store.Set(ctx, key, data); err != nil {
		return Activity{}, err
	}

	applog.Debug(ctx, "activity updated", "userID", userID, "meals", activity.MealsLogged, "photos", activity.PhotosAnalyzed)
	return activity, nil
}

func activityKey(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("experience: user id must not be empty")
	}
	return keyPrefix + userID, nil
}
