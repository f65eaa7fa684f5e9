// Package experience derives how familiar a user is with the app from their
// activity, and which in-app guidance they should see as a result.
package experience

import (
	"slices"
	"time"
)

// Experience is the coarse familiarity level of a user.
type Experience string

const (
	New         Experience = "new"
	Experienced Experience = "experienced"
	Expert      Experience = "expert"
)

const (
	experiencedMeals  = 10
	experiencedPhotos = 15
	expertMeals       = 50
	expertPhotos      = 75
	expertDays        = 7
	advancedMeals     = 20
)

// Activity is the usage history of one user.
type Activity struct {
	MealsLogged      int       `json:"meals_logged"`
	PhotosAnalyzed   int       `json:"photos_analyzed"`
	FirstLogin       time.Time `json:"first_login"`
	LastLogin        time.Time `json:"last_login"`
	GuideDismissals  []string  `json:"guide_dismissals"`
	TutorialsWatched []string  `json:"tutorials_watched"`
	TotalMinutes     int       `json:"total_minutes"`
}

// NewActivity returns the activity of a user seen for the first time at now.
func NewActivity(now time.Time) Activity {
	return Activity{
		FirstLogin:       now.UTC(),
		LastLogin:        now.UTC(),
		GuideDismissals:  []string{},
		TutorialsWatched: []string{},
	}
}

// DaysSinceFirstLogin counts whole days between the first login and now.
func (a Activity) DaysSinceFirstLogin(now time.Time) int {
	if a.FirstLogin.IsZero() || now.Before(a.FirstLogin) {
		return 0
	}
	return int(now.Sub(a.FirstLogin) / (24 * time.Hour))
}

// GuideDismissed reports whether the user closed the named guide.
func (a Activity) GuideDismissed(guide string) bool {
	return slices.Contains(a.GuideDismissals, guide)
}

// TutorialWatched reports whether the user watched the named tutorial.
func (a Activity) TutorialWatched(tutorial string) bool {
	return slices.Contains(a.TutorialsWatched, tutorial)
}

// Level classifies a. Expert wins over experienced.
func Level(a Activity, now time.Time) Experience {
	if a.MealsLogged >= expertMeals ||
		a.PhotosAnalyzed >= expertPhotos ||
		(a.DaysSinceFirstLogin(now) >= expertDays && a.MealsLogged >= experiencedMeals) {
		return Expert
	}
	if a.MealsLogged >= experiencedMeals ||
		a.PhotosAnalyzed >= experiencedPhotos ||
		len(a.GuideDismissals) >= 2 ||
		len(a.TutorialsWatched) >= 1 {
		return Experienced
	}
	return New
}

// ShouldShowOnboarding is true until the user logs a meal or analyzes a photo.
func ShouldShowOnboarding(a Activity) bool {
	return a.MealsLogged == 0 && a.PhotosAnalyzed == 0
}

// Guidance controls how much help the UI offers.
type Guidance struct {
	ShowVideoFirst          bool `json:"show_video_first"`
	AutoExpandDetails       bool `json:"auto_expand_details"`
	ShowQuickTipsOnly       bool `json:"show_quick_tips_only"`
	SuggestAdvancedFeatures bool `json:"suggest_advanced_features"`
}

// GuidanceFor computes the guidance flags for a.
func GuidanceFor(a Activity, now time.Time) Guidance {
	level := Level(a, now)
	return Guidance{
		ShowVideoFirst:          level == New && len(a.TutorialsWatched) == 0,
		AutoExpandDetails:       level == New,
		ShowQuickTipsOnly:       level == Expert,
		SuggestAdvancedFeatures: level == Expert && a.MealsLogged >= advancedMeals,
	}
}

// Summary is the activity of a user together with derived values.
type Summary struct {
	Activity
	Level               Experience `json:"level"`
	DaysSinceFirstLogin int        `json:"days_since_first_login"`
	ShowOnboarding      bool       `json:"show_onboarding"`
	Guidance            Guidance   `json:"guidance"`
}

// Summarize derives the summary of a at now.
func Summarize(a Activity, now time.Time) Summary {
	return Summary{
		Activity:            a,
		Level:               Level(a, now),
		DaysSinceFirstLogin: a.DaysSinceFirstLogin(now),
		ShowOnboarding:      ShouldShowOnboarding(a),
		Guidance:            GuidanceFor(a, now),
	}
}
