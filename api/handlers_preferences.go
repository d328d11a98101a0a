package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CreativeUnicorns/vaultprefs"
)

// preferenceResponse is the body of single-preference responses.
type preferenceResponse struct {
	Key    string      `json:"key"`
	Value  interface{} `json:"value"`
	Stored bool        `json:"stored"`
}

type setPreferenceRequest struct {
	Value interface{} `json:"value"`
}

type passwordReminderResponse struct {
	Frequency     string    `json:"frequency"`
	FrequencyCode int32     `json:"frequency_code"`
	LastConfirmed time.Time `json:"last_confirmed"`
	Needed        bool      `json:"needed"`
}

// profile opens the facade for the {profileID} path parameter, writing a 400
// response when the id is unusable.
func (s *Server) profile(w http.ResponseWriter, r *http.Request) (*vaultprefs.Preferences, bool) {
	p, err := s.open(chi.URLParam(r, "profileID"))
	if err != nil {
		if errors.Is(err, vaultprefs.ErrInvalidInput) {
			s.respondWithError(w, r, http.StatusBadRequest, "Invalid profile id", err)
		} else {
			s.respondWithError(w, r, http.StatusInternalServerError, "Failed to open preferences", err)
		}
		return nil, false
	}
	return p, true
}

// handleListPreferences returns effective values, optionally filtered by ?category=.
func (s *Server) handleListPreferences(w http.ResponseWriter, r *http.Request) {
	p, ok := s.profile(w, r)
	if !ok {
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, p.ByCategory(r.URL.Query().Get("category")))
}

func (s *Server) handleGetPreference(w http.ResponseWriter, r *http.Request) {
	p, ok := s.profile(w, r)
	if !ok {
		return
	}

	key := chi.URLParam(r, "key")
	value, err := p.Value(key)
	if err != nil {
		s.respondWithError(w, r, http.StatusNotFound, "Preference not defined", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, preferenceResponse{Key: key, Value: value, Stored: p.IsStored(key)})
}

// handleSetPreference validates and stores {"value": ...}.
func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	p, ok := s.profile(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()

	var req setPreferenceRequest
	if err := decoder.Decode(&req); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	key := chi.URLParam(r, "key")
	if err := p.SetValue(key, req.Value); err != nil {
		switch {
		case errors.Is(err, vaultprefs.ErrPreferenceNotDefined):
			s.respondWithError(w, r, http.StatusNotFound, "Preference not defined", err)
		case errors.Is(err, vaultprefs.ErrInvalidValue), errors.Is(err, vaultprefs.ErrInvalidKey):
			s.respondWithError(w, r, http.StatusBadRequest, "Invalid preference value", err)
		default:
			s.respondWithError(w, r, http.StatusInternalServerError, "Failed to set preference", err)
		}
		return
	}

	value, _ := p.Value(key)
	s.respondWithJSON(w, r, http.StatusOK, preferenceResponse{Key: key, Value: value, Stored: p.IsStored(key)})
}

// handleResetPreference removes the stored value so the default applies again.
func (s *Server) handleResetPreference(w http.ResponseWriter, r *http.Request) {
	p, ok := s.profile(w, r)
	if !ok {
		return
	}

	if err := p.Reset(chi.URLParam(r, "key")); err != nil {
		s.respondWithError(w, r, http.StatusNotFound, "Preference not defined", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPasswordReminder(w http.ResponseWriter, r *http.Request) {
	p, ok := s.profile(w, r)
	if !ok {
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, passwordReminderStatus(p))
}

// handleResetPasswordReminder records that the user just confirmed their password.
func (s *Server) handleResetPasswordReminder(w http.ResponseWriter, r *http.Request) {
	p, ok := s.profile(w, r)
	if !ok {
		return
	}
	p.ResetPasswordReminderTimestamp()
	s.respondWithJSON(w, r, http.StatusOK, passwordReminderStatus(p))
}

func passwordReminderStatus(p *vaultprefs.Preferences) passwordReminderResponse {
	freq := p.PasswordReminderFrequency()
	return passwordReminderResponse{
		Frequency:     freq.String(),
		FrequencyCode: int32(freq),
		LastConfirmed: p.PasswordReminderTimestamp().UTC(),
		Needed:        p.IsPasswordReminderNeeded(),
	}
}
