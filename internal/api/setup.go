package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/setup"
	"github.com/kalambet/humanmode/internal/voice"
)

type recordingResponse struct {
	ID             string `json:"id"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Clock          string `json:"clock"`
	MaxSeconds     int    `json:"max_seconds"`
	Done           bool   `json:"done"`
}

type skillsRequest struct {
	Skills map[string]string `json:"skills" validate:"required,min=1,dive,keys,required,endkeys,oneof=beginner intermediate expert"`
}

type skillRequest struct {
	Level string `json:"level" validate:"required,oneof=beginner intermediate expert"`
}

type contextRequest struct {
	CompanyType    string `json:"companyType"`
	InterviewStage string `json:"interviewStage"`
	DesiredVibe    string `json:"desiredVibe"`
}

func handleSetupStatus(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Flow.Status(r.Context()))
	}
}

func handleSetupReset(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Flow.Reset(r.Context())
		slog.Info("profile reset")
		w.WriteHeader(http.StatusNoContent)
	}
}

func toRecordingResponse(rec setup.Recording, limit int) recordingResponse {
	return recordingResponse{
		ID:             rec.ID,
		ElapsedSeconds: rec.ElapsedSeconds(),
		Clock:          voice.FormatClock(rec.ElapsedSeconds()),
		MaxSeconds:     limit,
		Done:           rec.Done,
	}
}

func handleStartRecording(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := deps.Flow.StartRecording()
		writeJSON(w, http.StatusCreated, toRecordingResponse(rec, deps.Flow.RecordingLimit()))
	}
}

func handleGetRecording(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := deps.Flow.Recording(chi.URLParam(r, "id"))
		if err != nil {
			recordingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordingResponse(rec, deps.Flow.RecordingLimit()))
	}
}

// handleStopRecording ends the recording and runs the voice analysis. With
// "Accept: text/event-stream" each stage is streamed as a progress event
// followed by a result event; otherwise the patterns are returned as JSON.
func handleStopRecording(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, err := deps.Flow.Recording(id)
		if err != nil {
			recordingError(w, err)
			return
		}
		if rec.Stopped {
			recordingError(w, setup.ErrRecordingFinished)
			return
		}

		if !wantsEventStream(r) {
			patterns, err := deps.Flow.AnalyzeVoice(r.Context(), id, nil)
			if err != nil {
				recordingError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, patterns)
			return
		}

		sse, err := newSSEWriter(w)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
			return
		}
		patterns, err := deps.Flow.AnalyzeVoice(r.Context(), id, func(st voice.Stage) {
			if err := sse.event("progress", st); err != nil {
				slog.Debug("writing progress event failed", "error", err)
			}
		})
		if err != nil {
			slog.Warn("voice analysis failed", "recording", id, "error", err)
			sse.event("error", map[string]string{"message": err.Error()}) //nolint:errcheck
			return
		}
		sse.event("result", patterns) //nolint:errcheck
	}
}

func recordingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, setup.ErrUnknownRecording):
		httpError(w, http.StatusNotFound, "not_found_error", "%v", err)
	case errors.Is(err, setup.ErrRecordingFinished):
		httpError(w, http.StatusConflict, "conflict_error", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

func handleGetVoice(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := deps.Flow.VoicePatterns(r.Context())
		if !ok {
			httpError(w, http.StatusNotFound, "not_found_error", "no voice analysis saved")
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func handleGetSkills(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"skills": deps.Flow.Skills(r.Context()),
			"areas":  profile.SkillAreas(),
		})
	}
}

func handlePutSkills(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skillsRequest
		if !decodeBody(w, r, &req) || !validateBody(w, req) {
			return
		}
		skills := make(profile.SkillSet, len(req.Skills))
		for area, level := range req.Skills {
			skills[area] = profile.SkillLevel(level)
		}
		if err := deps.Flow.SubmitSkills(r.Context(), skills); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"skills": skills})
	}
}

func handlePutSkill(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skillRequest
		if !decodeBody(w, r, &req) || !validateBody(w, req) {
			return
		}
		skills, err := deps.Flow.SetSkill(r.Context(), chi.URLParam(r, "area"), profile.SkillLevel(req.Level))
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"skills": skills})
	}
}

func handleGetContext(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Flow.Context(r.Context()))
	}
}

func handlePutContext(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contextRequest
		if !decodeBody(w, r, &req) {
			return
		}
		ic := profile.InterviewContext{
			CompanyType:    profile.CompanyType(req.CompanyType),
			InterviewStage: profile.InterviewStage(req.InterviewStage),
			DesiredVibe:    profile.Tone(req.DesiredVibe),
		}
		if !validateBody(w, ic) {
			return
		}
		if err := deps.Flow.SubmitContext(r.Context(), ic); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		writeJSON(w, http.StatusOK, deps.Flow.Status(r.Context()))
	}
}
