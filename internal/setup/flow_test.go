package setup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/storage"
	"github.com/kalambet/humanmode/internal/voice"
)

type failingAnalyzer struct{ err error }

func (f failingAnalyzer) Analyze(context.Context, func(voice.Stage)) (profile.VoicePatterns, error) {
	return profile.VoicePatterns{}, f.err
}

func newTestFlow(t *testing.T) (*Flow, *profile.Manager) {
	t.Helper()
	mgr := profile.NewManager(storage.NewMemoryStore())
	rec, _ := newTestRecorder()
	analyzer := voice.NewAnalyzer(voice.NewRand(3), 0)
	return NewFlow(mgr, rec, analyzer), mgr
}

func TestFlow_FullWizard(t *testing.T) {
	ctx := context.Background()
	flow, mgr := newTestFlow(t)

	st := flow.Status(ctx)
	assert.Equal(t, StepVoice, st.NextStep)
	assert.False(t, st.Complete)

	rec := flow.StartRecording()
	var stages []voice.Stage
	patterns, err := flow.AnalyzeVoice(ctx, rec.ID, func(s voice.Stage) { stages = append(stages, s) })
	require.NoError(t, err)
	assert.Len(t, stages, 6)
	assert.Equal(t, voice.GenerateVoiceAnalysis(voice.NewRand(3)), patterns)
	assert.Equal(t, StepSkills, flow.Status(ctx).NextStep)

	saved, ok := flow.VoicePatterns(ctx)
	require.True(t, ok)
	assert.Equal(t, patterns, saved)

	assert.Equal(t, profile.DefaultSkillSet(), flow.Skills(ctx), "skills step starts from defaults")
	require.NoError(t, flow.SubmitSkills(ctx, profile.DefaultSkillSet()))
	assert.Equal(t, StepContext, flow.Status(ctx).NextStep)

	assert.Equal(t, profile.DefaultInterviewContext(), flow.Context(ctx))
	ic := profile.InterviewContext{
		CompanyType:    profile.Enterprise,
		InterviewStage: profile.PhoneScreen,
		DesiredVibe:    profile.Casual,
	}
	require.NoError(t, flow.SubmitContext(ctx, ic))

	st = flow.Status(ctx)
	assert.True(t, st.Complete)
	assert.Equal(t, StepDemo, st.NextStep)
	assert.Equal(t, ic, flow.Context(ctx))
	assert.True(t, mgr.GetProfile(ctx).VoiceAnalyzed)
}

func TestFlow_AnalyzeVoiceTwice(t *testing.T) {
	ctx := context.Background()
	flow, _ := newTestFlow(t)

	rec := flow.StartRecording()
	_, err := flow.AnalyzeVoice(ctx, rec.ID, nil)
	require.NoError(t, err)

	_, err = flow.AnalyzeVoice(ctx, rec.ID, nil)
	assert.ErrorIs(t, err, ErrUnknownRecording, "analyzed recordings are discarded")
}

func TestFlow_AnalyzeVoiceFailureSavesNothing(t *testing.T) {
	ctx := context.Background()
	mgr := profile.NewManager(storage.NewMemoryStore())
	rec, _ := newTestRecorder()
	boom := errors.New("interrupted")
	flow := NewFlow(mgr, rec, failingAnalyzer{err: boom})

	r := flow.StartRecording()
	_, err := flow.AnalyzeVoice(ctx, r.ID, nil)
	assert.ErrorIs(t, err, boom)

	_, ok := flow.VoicePatterns(ctx)
	assert.False(t, ok)
}

func TestFlow_SetSkill(t *testing.T) {
	ctx := context.Background()
	flow, _ := newTestFlow(t)

	skills, err := flow.SetSkill(ctx, profile.SkillKubernetes, profile.Expert)
	require.NoError(t, err)
	assert.Equal(t, profile.Expert, skills[profile.SkillKubernetes])
	assert.Equal(t, profile.Expert, flow.Skills(ctx)[profile.SkillKubernetes])

	_, err = flow.SetSkill(ctx, profile.SkillKubernetes, "wizard")
	assert.Error(t, err)
}

func TestFlow_SubmitContextRejectsInvalid(t *testing.T) {
	flow, _ := newTestFlow(t)
	err := flow.SubmitContext(context.Background(), profile.InterviewContext{CompanyType: profile.Startup})
	assert.Error(t, err)
	assert.False(t, flow.Status(context.Background()).ContextSaved)
}

func TestFlow_Reset(t *testing.T) {
	ctx := context.Background()
	flow, _ := newTestFlow(t)

	rec := flow.StartRecording()
	require.NoError(t, flow.SubmitSkills(ctx, profile.DefaultSkillSet()))
	require.NoError(t, flow.SubmitContext(ctx, profile.DefaultInterviewContext()))

	flow.Reset(ctx)

	st := flow.Status(ctx)
	assert.Equal(t, StepVoice, st.NextStep)
	assert.False(t, st.SkillsSaved)
	assert.False(t, st.ContextSaved)
	_, err := flow.Recording(rec.ID)
	assert.ErrorIs(t, err, ErrUnknownRecording)
}

func TestNextStep(t *testing.T) {
	ic := profile.DefaultInterviewContext()
	vp := profile.VoicePatterns{}

	assert.Equal(t, StepVoice, NextStep(profile.UserProfile{}))
	assert.Equal(t, StepSkills, NextStep(profile.UserProfile{VoicePatterns: &vp}))
	assert.Equal(t, StepContext, NextStep(profile.UserProfile{VoicePatterns: &vp, Skills: profile.SkillSet{}}))
	assert.Equal(t, StepDemo, NextStep(profile.UserProfile{VoicePatterns: &vp, Skills: profile.SkillSet{}, InterviewContext: &ic}))
}
