package handlers

import (
	"net/http"

	applog "nutrisnap/internal/log"
)

// SearchFoods looks up correction candidates for a misidentified food.
func SearchFoods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if foodSearch == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "food search is not configured")
		return
	}

	term := r.URL.Query().Get("q")
	foods, err := foodSearch.Search(r.Context(), term)
	if err != nil {
		applog.Error(r.Context(), "food search failed", "term", term, "error", err)
		writeJSONError(w, http.StatusBadGateway, "food search is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"foods": foods})
}
