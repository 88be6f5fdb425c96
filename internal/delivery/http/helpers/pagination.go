package helpers

import (
	"fmt"
	"net/http"
	"strconv"
)

// ParsePage reads the page query parameter. A missing parameter means page 1;
// a non-integer value is a malformed request. Zero and negative values are
// returned as-is so the service can reject them with its own error.
func ParsePage(r *http.Request) (int, error) {
	s := r.URL.Query().Get("page")
	if s == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("page must be an integer, got %q", s)
	}
	return page, nil
}
