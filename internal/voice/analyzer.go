package voice

import (
	"context"
	"fmt"
	"time"

	"github.com/kalambet/humanmode/internal/profile"
)

// Stage is one step of the simulated analysis.
type Stage struct {
	Progress int           `json:"progress"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
}

var stages = [...]Stage{
	{Progress: 15, Message: "Processing audio...", Duration: 500 * time.Millisecond},
	{Progress: 35, Message: "Analyzing speech patterns...", Duration: 800 * time.Millisecond},
	{Progress: 55, Message: "Detecting vocabulary style...", Duration: 700 * time.Millisecond},
	{Progress: 75, Message: "Identifying tone and pace...", Duration: 600 * time.Millisecond},
	{Progress: 90, Message: "Calibrating voice fingerprint...", Duration: 500 * time.Millisecond},
	{Progress: 100, Message: "Analysis complete!", Duration: 400 * time.Millisecond},
}

// Stages returns the analysis stages in order.
func Stages() []Stage {
	return append([]Stage(nil), stages[:]...)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real-time Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Analyzer walks through the stages and then draws a VoicePatterns.
type Analyzer struct {
	rand  Rand
	scale float64
	sleep Sleeper
}

// NewAnalyzer returns an Analyzer whose stage durations are multiplied by
// scale. A scale of 0 skips the waits entirely. r must be safe for
// concurrent use when Analyze runs concurrently; nil means GlobalRand.
func NewAnalyzer(r Rand, scale float64) *Analyzer {
	if r == nil {
		r = GlobalRand
	}
	if scale < 0 {
		scale = 0
	}
	return &Analyzer{rand: r, scale: scale, sleep: Sleep}
}

// WithSleeper replaces the sleeper (for tests).
func (a *Analyzer) WithSleeper(s Sleeper) *Analyzer {
	a.sleep = s
	return a
}

// Analyze reports each stage to onStage before waiting its duration.
// onStage may be nil. A cancelled ctx aborts between stages.
func (a *Analyzer) Analyze(ctx context.Context, onStage func(Stage)) (profile.VoicePatterns, error) {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return profile.VoicePatterns{}, err
		}
		if onStage != nil {
			onStage(st)
		}
		d := time.Duration(float64(st.Duration) * a.scale)
		if err := a.sleep(ctx, d); err != nil {
			return profile.VoicePatterns{}, fmt.Errorf("analysis interrupted at %d%%: %w", st.Progress, err)
		}
	}
	return GenerateVoiceAnalysis(a.rand), nil
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
