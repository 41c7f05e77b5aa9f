package middleware

import (
	"mime"
	"net/http"
	"strings"
)

const methodOverrideField = "_method"

// multipart form values buffer in memory up to this size before spilling to disk
const overrideParseMemory = 32 << 20

var overridableMethods = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride lets HTML-form clients tunnel PUT/PATCH/DELETE through POST
// via a _method field or the X-HTTP-Method-Override header. Multipart bodies
// stay readable by downstream handlers after parsing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if override := overrideFrom(r); override != "" {
				r.Method = override
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideFrom(r *http.Request) string {
	candidate := strings.ToUpper(strings.TrimSpace(r.Header.Get("X-HTTP-Method-Override")))
	if candidate == "" {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mediaType {
		case "multipart/form-data":
			if err := r.ParseMultipartForm(overrideParseMemory); err != nil {
				return ""
			}
			candidate = strings.ToUpper(strings.TrimSpace(r.FormValue(methodOverrideField)))
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return ""
			}
			candidate = strings.ToUpper(strings.TrimSpace(r.PostFormValue(methodOverrideField)))
		}
	}
	if overridableMethods[candidate] {
		return candidate
	}
	return ""
}
