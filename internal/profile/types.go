package profile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SkillLevel is a self-rated proficiency. The order of the constants is the
// order of increasing proficiency.
type SkillLevel string

const (
	Beginner     SkillLevel = "beginner"
	Intermediate SkillLevel = "intermediate"
	Expert       SkillLevel = "expert"
)

// NumSkillLevels is the number of defined skill levels.
const NumSkillLevels = 3

// AllSkillLevels returns every skill level in ascending order.
func AllSkillLevels() []SkillLevel {
	return []SkillLevel{Beginner, Intermediate, Expert}
}

// Ordinal returns the 0-based position of l, or -1 for an undefined level.
func (l SkillLevel) Ordinal() int {
	switch l {
	case Beginner:
		return 0
	case Intermediate:
		return 1
	case Expert:
		return 2
	}
	return -1
}

func (l SkillLevel) Valid() bool { return l.Ordinal() >= 0 }

// Label returns the display form of the level ("Beginner").
func (l SkillLevel) Label() string { return FormatSkillLevel(string(l)) }

func (l SkillLevel) Description() string {
	switch l {
	case Beginner:
		return "Learning the basics, limited hands-on experience"
	case Intermediate:
		return "Practical experience, comfortable with core concepts"
	case Expert:
		return "Deep expertise, can architect solutions independently"
	}
	return ""
}

func (l SkillLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid skill level %q", string(l))
	}
	return []byte(l), nil
}

func (l *SkillLevel) UnmarshalText(b []byte) error {
	v := SkillLevel(b)
	if !v.Valid() {
		return fmt.Errorf("invalid skill level %q", string(b))
	}
	*l = v
	return nil
}

// ParseSkillLevel converts s to a SkillLevel, ignoring case and surrounding space.
func ParseSkillLevel(s string) (SkillLevel, error) {
	var l SkillLevel
	err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s))))
	return l, err
}

// FormatSkillLevel upper-cases the first letter of level.
func FormatSkillLevel(level string) string {
	if level == "" {
		return ""
	}
	return strings.ToUpper(level[:1]) + level[1:]
}

// Tone is the desired vibe of an answer.
type Tone string

const (
	Casual       Tone = "casual"
	Professional Tone = "professional"
	Formal       Tone = "formal"
)

// NumTones is the number of defined tones.
const NumTones = 3

func AllTones() []Tone {
	return []Tone{Casual, Professional, Formal}
}

// Ordinal returns the 0-based position of t, or -1 for an undefined tone.
func (t Tone) Ordinal() int {
	switch t {
	case Casual:
		return 0
	case Professional:
		return 1
	case Formal:
		return 2
	}
	return -1
}

func (t Tone) Valid() bool { return t.Ordinal() >= 0 }

func (t Tone) Label() string { return FormatSkillLevel(string(t)) }

func (t Tone) Description() string {
	switch t {
	case Casual:
		return "Relaxed, conversational, friendly"
	case Professional:
		return "Balanced, clear, respectful"
	case Formal:
		return "Structured, precise, corporate"
	}
	return ""
}

func (t Tone) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tone %q", string(t))
	}
	return []byte(t), nil
}

func (t *Tone) UnmarshalText(b []byte) error {
	v := Tone(b)
	if !v.Valid() {
		return fmt.Errorf("invalid tone %q", string(b))
	}
	*t = v
	return nil
}

func ParseTone(s string) (Tone, error) {
	var t Tone
	err := t.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s))))
	return t, err
}

// CompanyType is the kind of company the interview is with.
type CompanyType string

const (
	Startup    CompanyType = "startup"
	Midsize    CompanyType = "midsize"
	Enterprise CompanyType = "enterprise"
)

func AllCompanyTypes() []CompanyType {
	return []CompanyType{Startup, Midsize, Enterprise}
}

func (c CompanyType) Valid() bool {
	switch c {
	case Startup, Midsize, Enterprise:
		return true
	}
	return false
}

func (c CompanyType) Label() string {
	switch c {
	case Startup:
		return "Startup"
	case Midsize:
		return "Mid-Size"
	case Enterprise:
		return "Enterprise"
	}
	return ""
}

func (c CompanyType) Description() string {
	switch c {
	case Startup:
		return "Fast-paced, casual culture, move fast and break things"
	case Midsize:
		return "Established processes, balanced innovation and stability"
	case Enterprise:
		return "Fortune 500, formal processes, emphasis on scale and reliability"
	}
	return ""
}

func (c CompanyType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid company type %q", string(c))
	}
	return []byte(c), nil
}

func (c *CompanyType) UnmarshalText(b []byte) error {
	v := CompanyType(b)
	if !v.Valid() {
		return fmt.Errorf("invalid company type %q", string(b))
	}
	*c = v
	return nil
}

// InterviewStage is how far along the interview process the user is.
type InterviewStage string

const (
	PhoneScreen InterviewStage = "phone_screen"
	Technical   InterviewStage = "technical"
	FinalRound  InterviewStage = "final_round"
)

func AllInterviewStages() []InterviewStage {
	return []InterviewStage{PhoneScreen, Technical, FinalRound}
}

func (s InterviewStage) Valid() bool {
	switch s {
	case PhoneScreen, Technical, FinalRound:
		return true
	}
	return false
}

func (s InterviewStage) Label() string {
	switch s {
	case PhoneScreen:
		return "Phone Screen"
	case Technical:
		return "Technical Round"
	case FinalRound:
		return "Final Round"
	}
	return ""
}

func (s InterviewStage) Description() string {
	switch s {
	case PhoneScreen:
		return "Initial recruiter call, high-level discussion"
	case Technical:
		return "Deep-dive into skills, coding, architecture"
	case FinalRound:
		return "Leadership interview, culture fit, offer discussion"
	}
	return ""
}

func (s InterviewStage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid interview stage %q", string(s))
	}
	return []byte(s), nil
}

func (s *InterviewStage) UnmarshalText(b []byte) error {
	v := InterviewStage(b)
	if !v.Valid() {
		return fmt.Errorf("invalid interview stage %q", string(b))
	}
	*s = v
	return nil
}

// Fixed skill areas. A SkillSet may carry additional areas.
const (
	SkillReact           = "react"
	SkillKubernetes      = "kubernetes"
	SkillMachineLearning = "machineLearning"
	SkillSystemDesign    = "systemDesign"
)

// SkillArea describes one rateable skill area.
type SkillArea struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// SkillAreas returns the fixed skill areas in display order.
func SkillAreas() []SkillArea {
	return []SkillArea{
		{Key: SkillReact, Label: "React / Frontend"},
		{Key: SkillKubernetes, Label: "Kubernetes / DevOps"},
		{Key: SkillMachineLearning, Label: "Machine Learning"},
		{Key: SkillSystemDesign, Label: "System Design"},
	}
}

// SkillSet maps a skill area to the user's level in it. Decoding rejects
// undefined levels, so every present key resolves to a defined SkillLevel.
type SkillSet map[string]SkillLevel

// DefaultSkillSet is the rating the skills step starts from.
func DefaultSkillSet() SkillSet {
	return SkillSet{
		SkillReact:           Intermediate,
		SkillKubernetes:      Intermediate,
		SkillMachineLearning: Beginner,
		SkillSystemDesign:    Intermediate,
	}
}

// Level returns the level for area and whether it is present.
func (s SkillSet) Level(area string) (SkillLevel, bool) {
	l, ok := s[area]
	return l, ok
}

// Clone returns an independent copy of s.
func (s SkillSet) Clone() SkillSet {
	if s == nil {
		return nil
	}
	cp := make(SkillSet, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

// Validate reports the first area with an empty name or undefined level.
func (s SkillSet) Validate() error {
	for area, level := range s {
		if strings.TrimSpace(area) == "" {
			return fmt.Errorf("skill area name is empty")
		}
		if !level.Valid() {
			return fmt.Errorf("skill %q: invalid level %q", area, string(level))
		}
	}
	return nil
}

// InterviewContext describes the interview being prepared for.
type InterviewContext struct {
	CompanyType    CompanyType    `json:"companyType" validate:"required,oneof=startup midsize enterprise"`
	InterviewStage InterviewStage `json:"interviewStage" validate:"required,oneof=phone_screen technical final_round"`
	DesiredVibe    Tone           `json:"desiredVibe" validate:"required,oneof=casual professional formal"`
}

// DefaultInterviewContext is the context the context step starts from.
func DefaultInterviewContext() InterviewContext {
	return InterviewContext{
		CompanyType:    Startup,
		InterviewStage: Technical,
		DesiredVibe:    Professional,
	}
}

// UnmarshalJSON rejects a context with any field absent.
func (c *InterviewContext) UnmarshalJSON(b []byte) error {
	type plain InterviewContext
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.CompanyType == "" || p.InterviewStage == "" || p.DesiredVibe == "" {
		return fmt.Errorf("interview context: companyType, interviewStage and desiredVibe are required")
	}
	*c = InterviewContext(p)
	return nil
}

// VoicePatterns is the result of a (simulated) voice analysis. Every field is
// an opaque display string drawn from a fixed candidate list.
type VoicePatterns struct {
	VocabularyLevel string   `json:"vocabularyLevel"`
	SentenceLength  string   `json:"sentenceLength"`
	Tone            string   `json:"tone"`
	FillerWords     []string `json:"fillerWords"`
	CommonPhrases   []string `json:"commonPhrases"`
	SpeakingPace    string   `json:"speakingPace"`
}

func (v VoicePatterns) clone() VoicePatterns {
	cp := v
	cp.FillerWords = append([]string(nil), v.FillerWords...)
	cp.CommonPhrases = append([]string(nil), v.CommonPhrases...)
	return cp
}

// UserProfile is the assembled view over all persisted slices.
type UserProfile struct {
	Name             string            `json:"name,omitempty"`
	VoiceAnalyzed    bool              `json:"voiceAnalyzed"`
	VoicePatterns    *VoicePatterns    `json:"voicePatterns,omitempty"`
	Skills           SkillSet          `json:"skills"`
	InterviewContext *InterviewContext `json:"interviewContext,omitempty"`
}

// SetupComplete reports whether p carries skills, interview context and voice
// patterns. A view must send the user back into setup otherwise.
func (p UserProfile) SetupComplete() bool {
	return p.Skills != nil && p.InterviewContext != nil && p.VoicePatterns != nil
}
