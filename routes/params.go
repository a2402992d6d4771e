package routes

import (
	"fmt"
	"net/http"
	"strconv"
)

// extentParam reads an optional 8-bit extent from the query string, defaulting
// to 1.
func extentParam(r *http.Request, name string) (uint8, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 1, nil
	}
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return uint8(n), nil
}

func coordParam(value string) (int32, error) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", value)
	}
	return int32(n), nil
}

// extentOrDefault treats an omitted extent as 1.
func extentOrDefault(v *uint8) uint8 {
	if v == nil {
		return 1
	}
	return *v
}
