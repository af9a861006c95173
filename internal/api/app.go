package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/kalambet/humanmode/internal/demo"
	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/schemas"
	"github.com/kalambet/humanmode/internal/setup"
)

const maxRequestBodySize = 1 << 20 // 1MB

type AppDeps struct {
	Profiles *profile.Manager
	Flow     *setup.Flow
	Demo     *demo.Service
	Token    string
}

// NewAppHandler returns the HTTP API. Every route except /health requires
// the bearer token when one is configured.
func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Get("/options", handleOptions)

		r.Get("/setup/status", handleSetupStatus(deps))
		r.Delete("/setup", handleSetupReset(deps))
		r.Post("/setup/voice/recordings", handleStartRecording(deps))
		r.Get("/setup/voice/recordings/{id}", handleGetRecording(deps))
		r.Post("/setup/voice/recordings/{id}/stop", handleStopRecording(deps))
		r.Get("/setup/voice", handleGetVoice(deps))
		r.Get("/setup/skills", handleGetSkills(deps))
		r.Put("/setup/skills", handlePutSkills(deps))
		r.Put("/setup/skills/{area}", handlePutSkill(deps))
		r.Get("/setup/context", handleGetContext(deps))
		r.Put("/setup/context", handlePutContext(deps))

		r.Get("/profile", handleGetProfile(deps))
		r.Get("/profile/export", handleExportProfile(deps))
		r.Put("/profile/import", handleImportProfile(deps))

		r.Get("/questions", handleQuestions)
		r.Get("/responses/{id}", handleResponse)
		r.Get("/responses/{id}/generic", handleGenericResponse)

		r.Get("/demo/questions/{id}", handleCompare(deps))
		r.Get("/demo/comparisons", handleCompareAll(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody reads a size-limited JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

// validateBody runs struct validation and writes a 400 listing the failing
// fields.
func validateBody(w http.ResponseWriter, v any) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "validation failed: %v", err)
		return false
	}
	fields := make([]schemas.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, schemas.FieldError{
			Field:   fieldPath(fe),
			Message: validationMessage(fe),
		})
	}
	fieldsError(w, "request validation failed", fields)
	return false
}

// fieldPath drops the top-level struct name from the namespace
// ("skillsRequest.skills[react]" becomes "skills[react]").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encoding response failed", "error", err)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"message": fmt.Sprintf(format, args...),
			"type":    errType,
		},
	})
}

func fieldsError(w http.ResponseWriter, msg string, fields []schemas.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "invalid_request_error",
			"fields":  fields,
		},
	})
}

func setupIncompleteError(w http.ResponseWriter, e *demo.SetupIncompleteError) {
	writeJSON(w, http.StatusConflict, map[string]any{
		"error": map[string]any{
			"message":   e.Error(),
			"type":      "setup_incomplete",
			"next_step": e.Step,
		},
	})
}
