// Package demo builds side-by-side comparisons of the generic answer and the
// answer personalized to the stored profile.
package demo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kalambet/humanmode/internal/catalog"
	"github.com/kalambet/humanmode/internal/profile"
	"github.com/kalambet/humanmode/internal/setup"
	"github.com/kalambet/humanmode/internal/voice"
)

// ErrUnknownQuestion is returned for a question id missing from the catalog.
var ErrUnknownQuestion = errors.New("unknown question")

// SetupIncompleteError means the profile lacks a slice the demo needs.
type SetupIncompleteError struct {
	Step setup.Step
}

func (e *SetupIncompleteError) Error() string {
	return fmt.Sprintf("setup incomplete: continue at the %s step", e.Step)
}

// DefaultGenerateDelay is the simulated generation time per comparison.
const DefaultGenerateDelay = 1500 * time.Millisecond

// GenericFlags are the weaknesses called out on every generic answer.
var GenericFlags = []string{"Too formal", "Robotic vocabulary", "Overconfident", "Generic structure"}

// Adaptation explains one way the personalized answer was adjusted.
type Adaptation struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Comparison is a generic answer next to the personalized one.
type Comparison struct {
	QuestionID   string                 `json:"question_id"`
	Question     string                 `json:"question"`
	Category     string                 `json:"category"`
	Generic      string                 `json:"generic"`
	Personalized string                 `json:"personalized"`
	SkillLevel   profile.SkillLevel     `json:"skill_level"`
	Resolution   catalog.Resolution     `json:"skill_resolution"`
	Tone         profile.Tone           `json:"tone"`
	CompanyType  profile.CompanyType    `json:"company_type"`
	Stage        profile.InterviewStage `json:"interview_stage"`
	GenericFlags []string               `json:"generic_flags"`
	Highlights   []string               `json:"highlights"`
	Adaptations  []Adaptation           `json:"adaptations"`
}

// ProfileReader supplies the assembled profile.
type ProfileReader interface {
	GetProfile(ctx context.Context) profile.UserProfile
}

// Service builds comparisons.
type Service struct {
	profiles ProfileReader
	delay    time.Duration
	sleep    voice.Sleeper
}

// NewService creates a Service that waits delay before each comparison.
func NewService(profiles ProfileReader, delay time.Duration) *Service {
	if delay < 0 {
		delay = 0
	}
	return &Service{profiles: profiles, delay: delay, sleep: voice.Sleep}
}

// WithSleeper replaces the sleeper (for tests).
func (s *Service) WithSleeper(sl voice.Sleeper) *Service {
	s.sleep = sl
	return s
}

// Compare builds the comparison for questionID from the stored profile.
func (s *Service) Compare(ctx context.Context, questionID string) (Comparison, error) {
	p := s.profiles.GetProfile(ctx)
	if step := setup.NextStep(p); step != setup.StepDemo {
		return Comparison{}, &SetupIncompleteError{Step: step}
	}
	entry, ok := catalog.Lookup(questionID)
	if !ok {
		return Comparison{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if err := s.sleep(ctx, s.delay); err != nil {
		return Comparison{}, err
	}
	return build(entry, p.Skills, *p.InterviewContext), nil
}

// CompareAll builds a comparison for every catalog question, in catalog order.
func (s *Service) CompareAll(ctx context.Context) ([]Comparison, error) {
	p := s.profiles.GetProfile(ctx)
	if step := setup.NextStep(p); step != setup.StepDemo {
		return nil, &SetupIncompleteError{Step: step}
	}

	ids := catalog.IDs()
	out := make([]Comparison, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, id := range ids {
		g.Go(func() error {
			c, err := s.Compare(gctx, id)
			if err != nil {
				return fmt.Errorf("comparing %s: %w", id, err)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func build(e catalog.Entry, skills profile.SkillSet, ic profile.InterviewContext) Comparison {
	level, res := catalog.ResolveSkillLevel(e.Category, skills)
	return Comparison{
		QuestionID:   e.ID,
		Question:     e.Question,
		Category:     e.Category,
		Generic:      catalog.GetGenericResponse(e.ID),
		Personalized: catalog.GetResponse(e.ID, level, ic.DesiredVibe),
		SkillLevel:   level,
		Resolution:   res,
		Tone:         ic.DesiredVibe,
		CompanyType:  ic.CompanyType,
		Stage:        ic.InterviewStage,
		GenericFlags: append([]string(nil), GenericFlags...),
		Highlights: []string{
			"Natural vocabulary",
			fmt.Sprintf("Matched to %s level", level),
			fmt.Sprintf("%s tone", ic.DesiredVibe),
			fmt.Sprintf("%s context", ic.CompanyType),
		},
		Adaptations: []Adaptation{
			{
				Title:  "Voice Matching",
				Detail: "Adjusted vocabulary and sentence structure to match your natural speaking style",
			},
			{
				Title:  "Skill Calibration",
				Detail: fmt.Sprintf("Calibrated confidence to your %s level in this area - honest about what you know", level),
			},
			{
				Title:  "Context Awareness",
				Detail: fmt.Sprintf("Adapted formality for %s company with %s vibe", ic.CompanyType, ic.DesiredVibe),
			},
		},
	}
}
