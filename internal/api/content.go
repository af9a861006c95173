package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/humanmode/internal/catalog"
	"github.com/kalambet/humanmode/internal/demo"
	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/schemas"
	"github.com/kalambet/humanmode/internal/setup"
)

// Option is one selectable enum value.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Options lists every choice the setup steps offer.
type Options struct {
	SkillLevels     []Option            `json:"skill_levels"`
	Tones           []Option            `json:"tones"`
	CompanyTypes    []Option            `json:"company_types"`
	InterviewStages []Option            `json:"interview_stages"`
	SkillAreas      []profile.SkillArea `json:"skill_areas"`
}

func BuildOptions() Options {
	var o Options
	for _, l := range profile.AllSkillLevels() {
		o.SkillLevels = append(o.SkillLevels, Option{string(l), l.Label(), l.Description()})
	}
	for _, t := range profile.AllTones() {
		o.Tones = append(o.Tones, Option{string(t), t.Label(), t.Description()})
	}
	for _, c := range profile.AllCompanyTypes() {
		o.CompanyTypes = append(o.CompanyTypes, Option{string(c), c.Label(), c.Description()})
	}
	for _, s := range profile.AllInterviewStages() {
		o.InterviewStages = append(o.InterviewStages, Option{string(s), s.Label(), s.Description()})
	}
	o.SkillAreas = profile.SkillAreas()
	return o
}

func handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BuildOptions())
}

func handleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Questions())
}

// handleResponse is the raw selector. An unknown question id is not an HTTP
// error: the body carries the not-found sentinel.
func handleResponse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	level, err := profile.ParseSkillLevel(r.URL.Query().Get("skill"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "skill: %v", err)
		return
	}
	tone, err := profile.ParseTone(r.URL.Query().Get("tone"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "tone: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"question_id": id,
		"skill":       level,
		"tone":        tone,
		"response":    catalog.GetResponse(id, level, tone),
	})
}

func handleGenericResponse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, map[string]any{
		"question_id": id,
		"response":    catalog.GetGenericResponse(id),
	})
}

func handleCompare(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := deps.Demo.Compare(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			demoError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func handleCompareAll(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := deps.Demo.CompareAll(r.Context())
		if err != nil {
			demoError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func demoError(w http.ResponseWriter, err error) {
	var incomplete *demo.SetupIncompleteError
	switch {
	case errors.As(err, &incomplete):
		setupIncompleteError(w, incomplete)
	case errors.Is(err, demo.ErrUnknownQuestion):
		httpError(w, http.StatusNotFound, "not_found_error", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

type profileResponse struct {
	profile.UserProfile
	SetupComplete bool       `json:"setup_complete"`
	NextStep      setup.Step `json:"next_step"`
}

func newProfileResponse(p profile.UserProfile) profileResponse {
	return profileResponse{
		UserProfile:   p,
		SetupComplete: p.SetupComplete(),
		NextStep:      setup.NextStep(p),
	}
}

func handleGetProfile(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newProfileResponse(deps.Profiles.GetProfile(r.Context())))
	}
}

func handleExportProfile(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="humanmode-profile.json"`)
		writeJSON(w, http.StatusOK, deps.Profiles.GetProfile(r.Context()))
	}
}

// handleImportProfile replaces the stored profile with a schema-valid
// exported document.
func handleImportProfile(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "reading body: %v", err)
			return
		}
		p, err := schemas.DecodeProfileDocument(body)
		if err != nil {
			var verr *schemas.ValidationError
			if errors.As(err, &verr) {
				fieldsError(w, "profile document failed schema validation", verr.Errors)
				return
			}
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		if err := deps.Profiles.Import(r.Context(), p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		writeJSON(w, http.StatusOK, deps.Flow.Status(r.Context()))
	}
}
