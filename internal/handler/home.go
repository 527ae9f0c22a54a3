package handler

import "net/http"

// HandleHome sends visitors to the study page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/study", http.StatusFound)
}
