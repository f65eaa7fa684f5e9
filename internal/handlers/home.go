package handlers

import "net/http"

// Home sends visitors of the site root to the dashboard.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}
