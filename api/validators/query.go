package validators

import (
	"net/http"
	"strings"
)

// QueryString reads a trimmed query parameter.
func QueryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
