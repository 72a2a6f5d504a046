package httpx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PathID parses a numeric chi URL parameter. On failure it writes a 400
// problem response and reports ok=false.
func PathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid ID", param+" must be an integer")
		return 0, false
	}
	return id, true
}
