package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"nutrisnap/internal/ai"
	"nutrisnap/internal/experience"
	"nutrisnap/internal/foodsearch"
	applog "nutrisnap/internal/log"
	"nutrisnap/internal/nutrition"
	"nutrisnap/internal/storage"
)

const (
	sessionUserIDKey   = "identity:user:id"
	sessionDraftKey    = "meal:draft"
	sessionPhotoURLKey = "meal:photo"

	defaultUserHeader = "X-User-ID"
	maxUserIDLength   = 64
)

// FoodAnalyzer recognises foods on photos and estimates their nutrition.
type FoodAnalyzer interface {
	IdentifyFoods(ctx context.Context, image []byte, mimeType string) ([]ai.IdentifiedFood, error)
	EstimateNutrition(ctx context.Context, food string, grams float64) (nutrition.Record, error)
}

// FoodSearcher looks up foods in the nutrition database.
type FoodSearcher interface {
	Search(ctx context.Context, term string) ([]foodsearch.Food, error)
}

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB

	analyzer   FoodAnalyzer
	foodSearch FoodSearcher
	photoStore storage.PhotoStore
	activity   *experience.Tracker
	userHeader = defaultUserHeader

	labelExtractor nutrition.Extractor = nutrition.RegexExtractor{}

	now = time.Now
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	database = db
}

// Services are the optional collaborators of the handlers. Nil members
// disable the endpoints that need them.
type Services struct {
	Analyzer   FoodAnalyzer
	Foods      FoodSearcher
	Photos     storage.PhotoStore
	Tracker    *experience.Tracker
	UserHeader string
}

// ConfigureServices installs the external services used by the API.
func ConfigureServices(s Services) {
	analyzer = s.Analyzer
	foodSearch = s.Foods
	photoStore = s.Photos
	activity = s.Tracker
	userHeader = strings.TrimSpace(s.UserHeader)
	if userHeader == "" {
		userHeader = defaultUserHeader
	}
}

var errInvalidUser = errors.New("invalid user identity")

// RequireUser reads the user id set by the authenticating gateway and binds
// it to the request context and session. A session that changes hands loses
// its draft.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := userFromHeader(r)
		if err != nil {
			applog.Debug(r.Context(), "request without usable user identity", "path", r.URL.Path, "error", err)
			writeJSONError(w, http.StatusUnauthorized, "missing or invalid user identity")
			return
		}

		ctx := applog.WithUser(r.Context(), userID)
		r = r.WithContext(ctx)

		if sessionManager != nil {
			previous := sessionManager.GetString(ctx, sessionUserIDKey)
			if previous != userID {
				if previous != "" {
					applog.Debug(ctx, "session user changed; discarding draft", "previous", previous)
				}
				sessionManager.Remove(ctx, sessionDraftKey)
				sessionManager.Remove(ctx, sessionPhotoURLKey)
				sessionManager.Put(ctx, sessionUserIDKey, userID)
			}
		}

		next.ServeHTTP(w, r)
	})
}

func userFromHeader(r *http.Request) (string, error) {
	value := strings.TrimSpace(r.Header.Get(userHeader))
	if value == "" || len(value) > maxUserIDLength {
		return "", errInvalidUser
	}
	for _, c := range value {
		if unicode.IsControl(c) || unicode.IsSpace(c) {
			return "", errInvalidUser
		}
	}
	return value, nil
}

// currentUserID returns the user bound by RequireUser.
func currentUserID(r *http.Request) (string, bool) {
	return applog.UserFrom(r.Context())
}

func readAllLimited(body io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}
