package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Manager provides cached, structured access to the profile slices. Each
// slice is read independently; there is no single atomic profile write.
type Manager struct {
	slices *Slices
	clock  Clock
	ttl    time.Duration

	mu       sync.RWMutex
	cached   *UserProfile
	cachedAt time.Time
}

// NewManager creates a Manager with a 60-second cache TTL.
func NewManager(store Store) *Manager {
	return &Manager{
		slices: NewSlices(store),
		clock:  realClock{},
		ttl:    60 * time.Second,
	}
}

// NewManagerWithClock creates a Manager with a custom clock (for testing).
func NewManagerWithClock(store Store, clock Clock, ttl time.Duration) *Manager {
	return &Manager{
		slices: NewSlices(store),
		clock:  clock,
		ttl:    ttl,
	}
}

// GetProfile assembles a UserProfile from all four slices (or the cache).
// Missing or unreadable slices leave their fields empty. A build that hit a
// store failure is returned but not cached.
func (m *Manager) GetProfile(ctx context.Context) UserProfile {
	// Fast path: read lock for cache hit.
	m.mu.RLock()
	if m.cached != nil && m.clock.Now().Before(m.cachedAt.Add(m.ttl)) {
		p := deepCopyProfile(m.cached)
		m.mu.RUnlock()
		return p
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil && m.clock.Now().Before(m.cachedAt.Add(m.ttl)) {
		return deepCopyProfile(m.cached)
	}

	p, err := m.buildProfile(ctx)
	if err != nil {
		return p
	}
	m.cached = &p
	m.cachedAt = m.clock.Now()
	return deepCopyProfile(&p)
}

// buildProfile reads every slice. The error joins the store failures; the
// profile is still filled from the slices that could be read.
func (m *Manager) buildProfile(ctx context.Context) (UserProfile, error) {
	var p UserProfile
	var errs []error
	load := func(key string, target any) bool {
		ok, err := m.slices.Lookup(ctx, key, target)
		if err != nil {
			errs = append(errs, err)
		}
		return ok
	}

	var stored UserProfile
	if load(KeyUserProfile, &stored) {
		p.Name = stored.Name
		p.VoiceAnalyzed = stored.VoiceAnalyzed
	}

	var voice VoicePatterns
	if load(KeyVoicePatterns, &voice) {
		p.VoicePatterns = &voice
	}

	var skills SkillSet
	if load(KeySkills, &skills) {
		p.Skills = skills
	}

	var ic InterviewContext
	if load(KeyInterviewContext, &ic) {
		p.InterviewContext = &ic
	}
	return p, errors.Join(errs...)
}

// VoicePatterns returns the saved voice analysis, if any.
func (m *Manager) VoicePatterns(ctx context.Context) (VoicePatterns, bool) {
	p := m.GetProfile(ctx)
	if p.VoicePatterns == nil {
		return VoicePatterns{}, false
	}
	return *p.VoicePatterns, true
}

// Skills returns the saved skill ratings, if any.
func (m *Manager) Skills(ctx context.Context) (SkillSet, bool) {
	p := m.GetProfile(ctx)
	return p.Skills, p.Skills != nil
}

// InterviewContext returns the saved interview context, if any.
func (m *Manager) InterviewContext(ctx context.Context) (InterviewContext, bool) {
	p := m.GetProfile(ctx)
	if p.InterviewContext == nil {
		return InterviewContext{}, false
	}
	return *p.InterviewContext, true
}

// SetVoicePatterns persists the voice slice.
func (m *Manager) SetVoicePatterns(ctx context.Context, v VoicePatterns) error {
	if len(v.FillerWords) != 3 || len(v.CommonPhrases) != 3 {
		return fmt.Errorf("voice patterns need exactly 3 filler words and 3 common phrases")
	}
	m.write(ctx, KeyVoicePatterns, v)
	return nil
}

// SetSkills replaces the skills slice.
func (m *Manager) SetSkills(ctx context.Context, s SkillSet) error {
	if len(s) == 0 {
		return fmt.Errorf("skill set is empty")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	m.write(ctx, KeySkills, s)
	return nil
}

// SetSkill overwrites one skill rating in place. When no skills are saved
// yet, the default ratings are used as the base. The read and the write
// happen under one lock so concurrent edits of different areas all land.
func (m *Manager) SetSkill(ctx context.Context, area string, level SkillLevel) (SkillSet, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return nil, fmt.Errorf("skill area name is empty")
	}
	if !level.Valid() {
		return nil, fmt.Errorf("skill %q: invalid level %q", area, string(level))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var skills SkillSet
	ok, err := m.slices.Lookup(ctx, KeySkills, &skills)
	if err != nil {
		return nil, fmt.Errorf("reading saved skills: %w", err)
	}
	if !ok {
		skills = DefaultSkillSet()
	}
	skills[area] = level
	m.slices.Set(ctx, KeySkills, skills)
	m.cached = nil
	return skills.Clone(), nil
}

// SetInterviewContext persists the interview context slice.
func (m *Manager) SetInterviewContext(ctx context.Context, c InterviewContext) error {
	if !c.CompanyType.Valid() || !c.InterviewStage.Valid() || !c.DesiredVibe.Valid() {
		return fmt.Errorf("interview context has an invalid field: %+v", c)
	}
	m.write(ctx, KeyInterviewContext, c)
	return nil
}

// CompleteSetup marks the voice step done and writes the profile slice from
// the saved skills and interview context.
func (m *Manager) CompleteSetup(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.buildProfile(ctx)
	if err != nil {
		slog.Error("completing setup skipped, profile could not be read", "error", err)
		return
	}
	m.slices.Set(ctx, KeyUserProfile, UserProfile{
		Name:             p.Name,
		VoiceAnalyzed:    true,
		Skills:           p.Skills,
		InterviewContext: p.InterviewContext,
	})
	m.cached = nil
}

// Import writes every slice of p. Slices that p lacks are removed so the
// stored profile matches the imported document.
func (m *Manager) Import(ctx context.Context, p UserProfile) error {
	if p.Skills != nil {
		if err := p.Skills.Validate(); err != nil {
			return err
		}
	}
	if p.InterviewContext != nil {
		c := p.InterviewContext
		if !c.CompanyType.Valid() || !c.InterviewStage.Valid() || !c.DesiredVibe.Valid() {
			return fmt.Errorf("interview context has an invalid field: %+v", *c)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached = nil

	m.slices.Set(ctx, KeyUserProfile, UserProfile{
		Name:             p.Name,
		VoiceAnalyzed:    p.VoiceAnalyzed,
		Skills:           p.Skills,
		InterviewContext: p.InterviewContext,
	})
	if p.VoicePatterns != nil {
		m.slices.Set(ctx, KeyVoicePatterns, p.VoicePatterns)
	} else {
		m.slices.Remove(ctx, KeyVoicePatterns)
	}
	if p.Skills != nil {
		m.slices.Set(ctx, KeySkills, p.Skills)
	} else {
		m.slices.Remove(ctx, KeySkills)
	}
	if p.InterviewContext != nil {
		m.slices.Set(ctx, KeyInterviewContext, p.InterviewContext)
	} else {
		m.slices.Remove(ctx, KeyInterviewContext)
	}
	return nil
}

// Reset clears every persisted slice.
func (m *Manager) Reset(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slices.Clear(ctx)
	m.cached = nil
}

func (m *Manager) write(ctx context.Context, key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slices.Set(ctx, key, value)
	m.cached = nil
}

func deepCopyProfile(p *UserProfile) UserProfile {
	if p == nil {
		return UserProfile{}
	}
	cp := *p
	if p.VoicePatterns != nil {
		v := p.VoicePatterns.clone()
		cp.VoicePatterns = &v
	}
	cp.Skills = p.Skills.Clone()
	if p.InterviewContext != nil {
		c := *p.InterviewContext
		cp.InterviewContext = &c
	}
	return cp
}
