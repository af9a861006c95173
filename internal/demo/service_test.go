package demo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalambet/humanmode/internal/catalog"
	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/setup"
)

type staticProfile struct{ p profile.UserProfile }

func (s staticProfile) GetProfile(context.Context) profile.UserProfile { return s.p }

func completeProfile() profile.UserProfile {
	ic := profile.InterviewContext{
		CompanyType:    profile.Enterprise,
		InterviewStage: profile.FinalRound,
		DesiredVibe:    profile.Formal,
	}
	return profile.UserProfile{
		VoiceAnalyzed: true,
		VoicePatterns: &profile.VoicePatterns{
			FillerWords:   []string{"well", "so", "right"},
			CommonPhrases: []string{"generally", "typically", "usually"},
		},
		Skills: profile.SkillSet{
			profile.SkillReact:           profile.Beginner,
			profile.SkillKubernetes:      profile.Intermediate,
			profile.SkillMachineLearning: profile.Expert,
			profile.SkillSystemDesign:    profile.Intermediate,
		},
		InterviewContext: &ic,
	}
}

func noSleep(context.Context, time.Duration) error { return nil }

func TestCompare_NeuralNetworks(t *testing.T) {
	var waited time.Duration
	svc := NewService(staticProfile{completeProfile()}, 2*time.Second).
		WithSleeper(func(_ context.Context, d time.Duration) error {
			waited = d
			return nil
		})

	c, err := svc.Compare(context.Background(), "neural_networks")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, waited)
	assert.Equal(t, "Can you explain how neural networks work?", c.Question)
	assert.Equal(t, catalog.CategoryMachineLearning, c.Category)
	assert.Equal(t, profile.Expert, c.SkillLevel)
	assert.Equal(t, catalog.ResolvedFromSkillSet, c.Resolution)
	assert.Equal(t, profile.Formal, c.Tone)
	assert.Equal(t, catalog.GetResponse("neural_networks", profile.Expert, profile.Formal), c.Personalized)
	assert.Equal(t, catalog.GetGenericResponse("neural_networks"), c.Generic)
	assert.Equal(t, []string{"Too formal", "Robotic vocabulary", "Overconfident", "Generic structure"}, c.GenericFlags)
	assert.Equal(t, []string{"Natural vocabulary", "Matched to expert level", "formal tone", "enterprise context"}, c.Highlights)
	require.Len(t, c.Adaptations, 3)
	assert.Equal(t, "Skill Calibration", c.Adaptations[1].Title)
	assert.Contains(t, c.Adaptations[1].Detail, "expert level")
	assert.Equal(t, "Adapted formality for enterprise company with formal vibe", c.Adaptations[2].Detail)
}

func TestCompare_BehavioralUsesDefaultLevel(t *testing.T) {
	svc := NewService(staticProfile{completeProfile()}, 0).WithSleeper(noSleep)

	c, err := svc.Compare(context.Background(), "tell_me_failure")
	require.NoError(t, err)
	assert.Equal(t, profile.Intermediate, c.SkillLevel)
	assert.Equal(t, catalog.CategoryUnmapped, c.Resolution)
}

func TestCompare_SetupIncomplete(t *testing.T) {
	p := completeProfile()
	p.VoicePatterns = nil
	svc := NewService(staticProfile{p}, 0).WithSleeper(noSleep)

	_, err := svc.Compare(context.Background(), "neural_networks")
	var incomplete *SetupIncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, setup.StepVoice, incomplete.Step)

	p = completeProfile()
	p.InterviewContext = nil
	_, err = NewService(staticProfile{p}, 0).Compare(context.Background(), "neural_networks")
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, setup.StepContext, incomplete.Step)
}

func TestCompare_UnknownQuestion(t *testing.T) {
	svc := NewService(staticProfile{completeProfile()}, 0).WithSleeper(noSleep)
	_, err := svc.Compare(context.Background(), "does_not_exist")
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestCompare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(staticProfile{completeProfile()}, time.Hour)
	_, err := svc.Compare(ctx, "neural_networks")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareAll_PreservesOrder(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	svc := NewService(staticProfile{completeProfile()}, time.Millisecond).
		WithSleeper(func(context.Context, time.Duration) error {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil
		})

	all, err := svc.CompareAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, len(catalog.IDs()))
	for i, id := range catalog.IDs() {
		assert.Equal(t, id, all[i].QuestionID)
	}
	assert.Equal(t, len(catalog.IDs()), calls)
}

func TestCompareAll_SetupIncomplete(t *testing.T) {
	svc := NewService(staticProfile{profile.UserProfile{}}, 0)
	_, err := svc.CompareAll(context.Background())
	var incomplete *SetupIncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, setup.StepVoice, incomplete.Step)
}
