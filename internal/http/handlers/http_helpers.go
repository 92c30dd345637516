package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/acme-storefront/internal/session"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// readOptionalJSON is readJSON for endpoints where an empty body means "use defaults".
func readOptionalJSON(w http.ResponseWriter, r *http.Request, data any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := readJSON(w, r, data)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func writeValidationErrors(w http.ResponseWriter, errs []ValidationError) {
	if err := writeJSON(w, http.StatusBadRequest, errs); err != nil {
		log.Error().Err(err).Msg("write validation errors")
	}
}

// currentSession loads the session resolved by the session middleware.
func currentSession(r *http.Request) (*session.Session, error) {
	return sessions.Get(r.Context(), session.IDFromContext(r.Context()))
}

// updateSession applies fn to the request's session under its lock.
func updateSession(r *http.Request, fn func(*session.Session) error) (*session.Session, error) {
	return sessions.Update(r.Context(), session.IDFromContext(r.Context()), fn)
}

func intURLParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// viewportWidth reads the ?w= hint. Missing or malformed input means unknown (0).
func viewportWidth(raw string) int {
	w, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || w < 0 {
		return 0
	}
	return w
}

// safeReturn only allows redirects to local paths.
func safeReturn(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return raw
}
