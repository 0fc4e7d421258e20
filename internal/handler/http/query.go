package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

// queryString returns a pointer to a non-empty query value, or nil.
func queryString(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}
	return &value
}

// queryBool accepts true/false/1/0; anything else is treated as absent.
func queryBool(r *http.Request, key string) *bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &value
}

// queryInt returns the parsed value, or fallback when missing or malformed.
// Negative values are passed through so filter validation can reject them.
func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return value
}

func pageParams(r *http.Request) (page, limit int) {
	return queryInt(r, "page", 1), queryInt(r, "limit", 20)
}

// decodeJSON decodes the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func decodeJSONQuiet(r *http.Request, dst any) bool {
	return json.NewDecoder(r.Body).Decode(dst) == nil
}

// clientIP returns the caller address without the port. RealIP has already
// replaced RemoteAddr when the request came through a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
