// Package catalog holds the fixed interview questions with their canned
// answers and selects the answer that fits a skill level and tone.
//
// Lookups never fail: unknown ids produce sentinel strings and unmapped
// skill areas default to intermediate.
package catalog

import (
	"fmt"

	"github.com/kalambet/humanmode/internal/profile"
)

// NotFoundResponse is returned by GetResponse for an unknown question id.
const NotFoundResponse = "Response not found"

// Question categories.
const (
	CategoryMachineLearning = "Machine Learning"
	CategorySystemDesign    = "System Design"
	CategoryBehavioral      = "Behavioral"
	CategoryFrontend        = "Frontend Development"
	CategoryBackend         = "Backend Development"
)

type matrix [profile.NumSkillLevels][profile.NumTones]string

// Entry is one catalog question.
type Entry struct {
	ID        string
	Question  string
	Category  string
	Generic   string
	Responses matrix
}

// Response returns the answer for level and tone. Both must be defined values.
func (e Entry) Response(level profile.SkillLevel, tone profile.Tone) string {
	return e.Responses[level.Ordinal()][tone.Ordinal()]
}

// Question is the public listing form of an Entry.
type Question struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`
}

var byID = func() map[string]*Entry {
	m := make(map[string]*Entry, len(entries))
	for i := range entries {
		m[entries[i].ID] = &entries[i]
	}
	return m
}()

// Lookup returns the entry for id.
func Lookup(id string) (Entry, bool) {
	e, ok := byID[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Questions lists the catalog in display order.
func Questions() []Question {
	qs := make([]Question, len(entries))
	for i, e := range entries {
		qs[i] = Question{ID: e.ID, Question: e.Question, Category: e.Category}
	}
	return qs
}

// IDs returns the question ids in display order.
func IDs() []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// GetResponse returns the personalized answer for questionID at level and
// tone, or NotFoundResponse when the id is unknown. An undefined level or
// tone is a programming error and panics.
func GetResponse(questionID string, level profile.SkillLevel, tone profile.Tone) string {
	e, ok := byID[questionID]
	if !ok {
		return NotFoundResponse
	}
	if !level.Valid() || !tone.Valid() {
		panic(fmt.Sprintf("catalog: undefined level %q or tone %q", level, tone))
	}
	return e.Response(level, tone)
}

// GetGenericResponse returns the one-size-fits-all answer for questionID, or
// FallbackGenericResponse when the id is unknown.
func GetGenericResponse(questionID string) string {
	e, ok := byID[questionID]
	if !ok {
		return FallbackGenericResponse
	}
	return e.Generic
}

// Validate checks that every entry has a question, a category, a generic
// answer and all nine personalized answers, and that ids are unique.
func Validate() error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("catalog entry with empty id")
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate catalog id %q", e.ID)
		}
		seen[e.ID] = true
		if e.Question == "" || e.Category == "" || e.Generic == "" {
			return fmt.Errorf("catalog entry %q: missing question, category or generic answer", e.ID)
		}
		for _, l := range profile.AllSkillLevels() {
			for _, t := range profile.AllTones() {
				if e.Response(l, t) == "" {
					return fmt.Errorf("catalog entry %q: no %s/%s answer", e.ID, l, t)
				}
			}
		}
	}
	return nil
}
