package httptransport

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"worldsmith/internal/account"
)

const (
	// headerUserID carries the caller identity asserted by the fronting
	// gateway. Requests without it run as the system caller.
	headerUserID = "X-User-Id"

	maxBodyBytes = 1 << 20
)

// decode reads the JSON body into dst and answers the request itself on
// failure. The caller checks the returned flag and stops on false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"code": "validation", "message": "the request body is not valid"},
		})
		return false
	}
	return true
}

// requestAttributes extracts the session attributes recorded alongside a
// session: the client address and the user agent.
func requestAttributes(r *http.Request) map[string]string {
	attributes := map[string]string{}
	if ip := clientIP(r); ip != "" {
		attributes["IpAddress"] = ip
	}
	if ua := r.UserAgent(); ua != "" {
		attributes["User-Agent"] = ua
	}
	return attributes
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First hop is the client; the rest are proxies.
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			forwarded = forwarded[:idx]
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// callerFrom derives the caller identity from the gateway headers. The
// service re-checks authorization, so a missing or garbled header simply
// degrades to the system caller.
func callerFrom(r *http.Request) account.Caller {
	raw := r.Header.Get(headerUserID)
	if raw == "" {
		return account.SystemCaller()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return account.SystemCaller()
	}
	return account.UserCaller(id)
}
