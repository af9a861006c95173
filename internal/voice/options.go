// Package voice produces simulated voice-analysis results. Nothing here
// looks at audio: every value is drawn at random from fixed candidate lists.
package voice

import (
	"math/rand/v2"

	"github.com/kalambet/humanmode/internal/profile"
)

// Rand is the random source the generators draw from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// GlobalRand draws from the process-wide generator.
var GlobalRand Rand = globalRand{}

var fillerWordGroups = [...][3]string{
	{"like", "you know", "um"},
	{"basically", "actually", "kind of"},
	{"sort of", "I mean", "you see"},
	{"well", "so", "right"},
	{"honestly", "literally", "pretty much"},
}

var commonPhraseGroups = [...][3]string{
	{"I think", "in my experience", "from what I've seen"},
	{"I believe", "it seems like", "I'd say"},
	{"personally", "to be honest", "the way I see it"},
	{"generally", "typically", "usually"},
	{"I tend to", "I usually", "I prefer to"},
}

var vocabularyLevels = [...]string{
	"Conversational (6.5/10)",
	"Professional (7.2/10)",
	"Technical (8.1/10)",
	"Academic (7.8/10)",
}

var sentenceLengths = [...]string{
	"Short (8-12 words avg)",
	"Medium (12-16 words avg)",
	"Long (16-22 words avg)",
}

var tones = [...]string{
	"Casual and friendly",
	"Professional yet approachable",
	"Formal and measured",
	"Enthusiastic and energetic",
}

var speakingPaces = [...]string{
	"125 words/minute (Relaxed)",
	"145 words/minute (Normal)",
	"165 words/minute (Energetic)",
	"135 words/minute (Thoughtful)",
}

// PickFillerWords returns one of the five filler-word groups, chosen
// uniformly. The result is a fresh slice the caller may modify.
func PickFillerWords(r Rand) []string {
	g := fillerWordGroups[r.IntN(len(fillerWordGroups))]
	return g[:]
}

// PickCommonPhrases returns one of the five common-phrase groups, chosen
// uniformly. The result is a fresh slice the caller may modify.
func PickCommonPhrases(r Rand) []string {
	g := commonPhraseGroups[r.IntN(len(commonPhraseGroups))]
	return g[:]
}

// GenerateVoiceAnalysis composes a VoicePatterns from six independent draws.
// Draw order: vocabulary, sentence length, tone, filler words, common
// phrases, speaking pace.
func GenerateVoiceAnalysis(r Rand) profile.VoicePatterns {
	return profile.VoicePatterns{
		VocabularyLevel: vocabularyLevels[r.IntN(len(vocabularyLevels))],
		SentenceLength:  sentenceLengths[r.IntN(len(sentenceLengths))],
		Tone:            tones[r.IntN(len(tones))],
		FillerWords:     PickFillerWords(r),
		CommonPhrases:   PickCommonPhrases(r),
		SpeakingPace:    speakingPaces[r.IntN(len(speakingPaces))],
	}
}

// Candidate lists, returned as copies.

func FillerWordGroups() [][]string { return groups(fillerWordGroups[:]) }
func CommonPhraseGroups() [][]string { return groups(commonPhraseGroups[:]) }
func VocabularyLevels() []string { return append([]string(nil), vocabularyLevels[:]...) }
func SentenceLengths() []string { return append([]string(nil), sentenceLengths[:]...) }
func Tones() []string { return append([]string(nil), tones[:]...) }
func SpeakingPaces() []string { return append([]string(nil), speakingPaces[:]...) }

func groups(src [][3]string) [][]string {
	out := make([][]string, len(src))
	for i, g := range src {
		out[i] = append([]string(nil), g[:]...)
	}
	return out
}
