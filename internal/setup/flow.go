// Package setup drives the setup wizard: voice sample, skill ratings and
// interview context. Each step persists only its own profile slice.
package setup

import (
	"context"
	"fmt"

	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/voice"
)

// Step names a wizard step. StepDemo means setup is complete.
type Step string

const (
	StepVoice   Step = "voice"
	StepSkills  Step = "skills"
	StepContext Step = "context"
	StepDemo    Step = "demo"
)

// Steps returns the wizard steps in order.
func Steps() []Step {
	return []Step{StepVoice, StepSkills, StepContext, StepDemo}
}

// NextStep is the first step whose slice p lacks, or StepDemo.
func NextStep(p profile.UserProfile) Step {
	switch {
	case p.VoicePatterns == nil:
		return StepVoice
	case p.Skills == nil:
		return StepSkills
	case p.InterviewContext == nil:
		return StepContext
	}
	return StepDemo
}

// Status summarises wizard progress.
type Status struct {
	VoiceAnalyzed bool `json:"voice_analyzed"`
	SkillsSaved   bool `json:"skills_saved"`
	ContextSaved  bool `json:"context_saved"`
	Complete      bool `json:"setup_complete"`
	NextStep      Step `json:"next_step"`
}

// StatusOf derives the wizard status from an assembled profile.
func StatusOf(p profile.UserProfile) Status {
	return Status{
		VoiceAnalyzed: p.VoicePatterns != nil,
		SkillsSaved:   p.Skills != nil,
		ContextSaved:  p.InterviewContext != nil,
		Complete:      p.SetupComplete(),
		NextStep:      NextStep(p),
	}
}

// VoiceAnalyzer runs the (simulated) voice analysis.
type VoiceAnalyzer interface {
	Analyze(ctx context.Context, onStage func(voice.Stage)) (profile.VoicePatterns, error)
}

// Flow is the setup wizard controller.
type Flow struct {
	profiles *profile.Manager
	recorder *Recorder
	analyzer VoiceAnalyzer
}

func NewFlow(profiles *profile.Manager, recorder *Recorder, analyzer VoiceAnalyzer) *Flow {
	return &Flow{profiles: profiles, recorder: recorder, analyzer: analyzer}
}

// Status reports wizard progress from the stored slices.
func (f *Flow) Status(ctx context.Context) Status {
	return StatusOf(f.profiles.GetProfile(ctx))
}

// StartRecording opens a voice recording session.
func (f *Flow) StartRecording() Recording {
	return f.recorder.Start()
}

// Recording reports a session's progress.
func (f *Flow) Recording(id string) (Recording, error) {
	return f.recorder.Get(id)
}

// RecordingLimit is the longest a voice sample may run.
func (f *Flow) RecordingLimit() int {
	return int(f.recorder.Limit().Seconds())
}

// AnalyzeVoice stops the recording, runs the analysis and saves the voice
// slice. onStage receives each analysis stage and may be nil.
func (f *Flow) AnalyzeVoice(ctx context.Context, recordingID string, onStage func(voice.Stage)) (profile.VoicePatterns, error) {
	if _, err := f.recorder.Stop(recordingID); err != nil {
		return profile.VoicePatterns{}, err
	}
	defer f.recorder.Discard(recordingID)

	patterns, err := f.analyzer.Analyze(ctx, onStage)
	if err != nil {
		return profile.VoicePatterns{}, fmt.Errorf("analyzing voice sample: %w", err)
	}
	if err := f.profiles.SetVoicePatterns(ctx, patterns); err != nil {
		return profile.VoicePatterns{}, err
	}
	return patterns, nil
}

// VoicePatterns returns the saved voice analysis, if any.
func (f *Flow) VoicePatterns(ctx context.Context) (profile.VoicePatterns, bool) {
	return f.profiles.VoicePatterns(ctx)
}

// Skills returns the saved ratings, or the defaults the step starts from.
func (f *Flow) Skills(ctx context.Context) profile.SkillSet {
	if s, ok := f.profiles.Skills(ctx); ok {
		return s
	}
	return profile.DefaultSkillSet()
}

// SubmitSkills saves the skills step.
func (f *Flow) SubmitSkills(ctx context.Context, skills profile.SkillSet) error {
	return f.profiles.SetSkills(ctx, skills)
}

// SetSkill edits one rating in place.
func (f *Flow) SetSkill(ctx context.Context, area string, level profile.SkillLevel) (profile.SkillSet, error) {
	return f.profiles.SetSkill(ctx, area, level)
}

// Context returns the saved interview context, or the defaults.
func (f *Flow) Context(ctx context.Context) profile.InterviewContext {
	if c, ok := f.profiles.InterviewContext(ctx); ok {
		return c
	}
	return profile.DefaultInterviewContext()
}

// SubmitContext saves the context step and marks setup complete.
func (f *Flow) SubmitContext(ctx context.Context, c profile.InterviewContext) error {
	if err := f.profiles.SetInterviewContext(ctx, c); err != nil {
		return err
	}
	f.profiles.CompleteSetup(ctx)
	return nil
}

// Reset clears every slice and open recording; the wizard restarts at StepVoice.
func (f *Flow) Reset(ctx context.Context) {
	f.profiles.Reset(ctx)
	f.recorder.Reset()
}
