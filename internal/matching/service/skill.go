package service

import (
	"sort"

	reviewerModel "github.com/festy23/capstone_review/internal/reviewer/model"
)

// SkillScore scores the overlap between a reviewer's skills and a
// submission's required tags on [0,1]. Each matched tag contributes the
// linear weight of its proficiency level; the sum is normalized by the
// number of required tags. An empty required list or an empty skill set
// scores exactly 0.
func SkillScore(skills []reviewerModel.ReviewerSkill, requiredTags []string) float64 {
	score, _, _ := SkillMatch(skills, requiredTags)
	return score
}

// SkillMatch returns the skill score together with the matched and missing
// required tags, both sorted for deterministic output.
func SkillMatch(
	skills []reviewerModel.ReviewerSkill,
	requiredTags []string,
) (score float64, matched, missing []string) {
	matched = []string{}
	missing = []string{}

	required := dedupeTags(requiredTags)
	if len(required) == 0 {
		return 0, matched, missing
	}

	byTag := make(map[string]string, len(skills))
	for _, skill := range skills {
		byTag[skill.SkillTag] = skill.Proficiency
	}

	var sum float64
	for _, tag := range required {
		proficiency, ok := byTag[tag]
		if !ok {
			missing = append(missing, tag)
			continue
		}
		sum += reviewerModel.ProficiencyWeight(proficiency)
		matched = append(matched, tag)
	}

	sort.Strings(matched)
	sort.Strings(missing)

	return sum / float64(len(required)), matched, missing
}

// dedupeTags removes duplicate required tags, preserving nothing but the set.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	unique := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		unique = append(unique, tag)
	}
	return unique
}
