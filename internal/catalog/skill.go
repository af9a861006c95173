package catalog

import "github.com/kalambet/humanmode/internal/profile"

// DefaultSkillLevel is used when a category has no matching skill rating.
const DefaultSkillLevel = profile.Intermediate

var categorySkillArea = map[string]string{
	CategoryMachineLearning: profile.SkillMachineLearning,
	CategorySystemDesign:    profile.SkillSystemDesign,
	CategoryFrontend:        profile.SkillReact,
	CategoryBackend:         profile.SkillSystemDesign,
}

// Resolution says how ResolveSkillLevel arrived at its level.
type Resolution string

const (
	// ResolvedFromSkillSet means the level came from the user's ratings.
	ResolvedFromSkillSet Resolution = "skill_set"
	// CategoryUnmapped means the category has no skill area (e.g. Behavioral).
	CategoryUnmapped Resolution = "category_unmapped"
	// SkillAreaMissing means the category maps to a skill area the skill set
	// does not rate.
	SkillAreaMissing Resolution = "skill_area_missing"
)

// SkillAreaForCategory returns the skill area rated for category.
func SkillAreaForCategory(category string) (string, bool) {
	area, ok := categorySkillArea[category]
	return area, ok
}

// ResolveSkillLevel picks the skill level for a question category and
// reports which path produced it. Both miss paths yield DefaultSkillLevel.
func ResolveSkillLevel(category string, skills profile.SkillSet) (profile.SkillLevel, Resolution) {
	area, ok := categorySkillArea[category]
	if !ok {
		return DefaultSkillLevel, CategoryUnmapped
	}
	level, ok := skills.Level(area)
	if !ok || !level.Valid() {
		return DefaultSkillLevel, SkillAreaMissing
	}
	return level, ResolvedFromSkillSet
}

// ResolveSkillLevelForCategory is ResolveSkillLevel without the diagnostic.
func ResolveSkillLevelForCategory(category string, skills profile.SkillSet) profile.SkillLevel {
	level, _ := ResolveSkillLevel(category, skills)
	return level
}
