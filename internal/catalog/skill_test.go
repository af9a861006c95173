package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kalambet/humanmode/internal/profile"
)

func TestResolveSkillLevelForCategory_BehavioralAlwaysIntermediate(t *testing.T) {
	sets := []profile.SkillSet{
		nil,
		{},
		profile.DefaultSkillSet(),
		{
			profile.SkillReact:           profile.Expert,
			profile.SkillKubernetes:      profile.Expert,
			profile.SkillMachineLearning: profile.Expert,
			profile.SkillSystemDesign:    profile.Expert,
		},
		{"behavioral": profile.Beginner, "Behavioral": profile.Expert},
	}
	for _, s := range sets {
		assert.Equal(t, profile.Intermediate, ResolveSkillLevelForCategory(CategoryBehavioral, s), "skills %v", s)
	}
}

func TestResolveSkillLevelForCategory_MachineLearningExpert(t *testing.T) {
	s := profile.DefaultSkillSet()
	s[profile.SkillMachineLearning] = profile.Expert
	assert.Equal(t, profile.Expert, ResolveSkillLevelForCategory(CategoryMachineLearning, s))
}

func TestResolveSkillLevel_Mapping(t *testing.T) {
	s := profile.SkillSet{
		profile.SkillReact:           profile.Beginner,
		profile.SkillMachineLearning: profile.Expert,
		profile.SkillSystemDesign:    profile.Expert,
	}
	tests := []struct {
		category string
		want     profile.SkillLevel
		res      Resolution
	}{
		{CategoryMachineLearning, profile.Expert, ResolvedFromSkillSet},
		{CategorySystemDesign, profile.Expert, ResolvedFromSkillSet},
		{CategoryFrontend, profile.Beginner, ResolvedFromSkillSet},
		{CategoryBackend, profile.Expert, ResolvedFromSkillSet},
		{CategoryBehavioral, profile.Intermediate, CategoryUnmapped},
		{"Quantum Computing", profile.Intermediate, CategoryUnmapped},
	}
	for _, tt := range tests {
		level, res := ResolveSkillLevel(tt.category, s)
		assert.Equal(t, tt.want, level, tt.category)
		assert.Equal(t, tt.res, res, tt.category)
	}
}

func TestResolveSkillLevel_MissingArea(t *testing.T) {
	s := profile.SkillSet{profile.SkillReact: profile.Expert}

	level, res := ResolveSkillLevel(CategoryMachineLearning, s)
	assert.Equal(t, profile.Intermediate, level)
	assert.Equal(t, SkillAreaMissing, res)

	level, res = ResolveSkillLevel(CategorySystemDesign, nil)
	assert.Equal(t, profile.Intermediate, level)
	assert.Equal(t, SkillAreaMissing, res)
}

func TestSkillAreaForCategory(t *testing.T) {
	area, ok := SkillAreaForCategory(CategoryBackend)
	assert.True(t, ok)
	assert.Equal(t, profile.SkillSystemDesign, area)

	_, ok = SkillAreaForCategory(CategoryBehavioral)
	assert.False(t, ok)
}
