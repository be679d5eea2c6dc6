package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	reviewerModel "github.com/festy23/capstone_review/internal/reviewer/model"
)

func skills(pairs ...string) []reviewerModel.ReviewerSkill {
	result := make([]reviewerModel.ReviewerSkill, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		result = append(result, reviewerModel.ReviewerSkill{
			SkillTag:    pairs[i],
			Proficiency: pairs[i+1],
		})
	}
	return result
}

func TestSkillScore(t *testing.T) {
	t.Run("expert and intermediate over two required tags", func(t *testing.T) {
		s := skills(
			"ml", reviewerModel.ProficiencyExpert,
			"security", reviewerModel.ProficiencyIntermediate,
		)

		score := SkillScore(s, []string{"ml", "security"})
		assert.InDelta(t, 0.75, score, 1e-9)
	})

	t.Run("zero overlap returns exactly zero", func(t *testing.T) {
		s := skills("frontend", reviewerModel.ProficiencyExpert)

		score := SkillScore(s, []string{"ml", "security"})
		assert.Zero(t, score)
	})

	t.Run("empty required tags returns zero", func(t *testing.T) {
		s := skills("ml", reviewerModel.ProficiencyExpert)

		assert.Zero(t, SkillScore(s, nil))
		assert.Zero(t, SkillScore(s, []string{}))
	})

	t.Run("reviewer with no skills returns zero", func(t *testing.T) {
		assert.Zero(t, SkillScore(nil, []string{"ml"}))
	})

	t.Run("full expert match returns one", func(t *testing.T) {
		s := skills(
			"ml", reviewerModel.ProficiencyExpert,
			"security", reviewerModel.ProficiencyExpert,
		)

		assert.InDelta(t, 1.0, SkillScore(s, []string{"ml", "security"}), 1e-9)
	})

	t.Run("duplicate required tags counted once", func(t *testing.T) {
		s := skills("ml", reviewerModel.ProficiencyExpert)

		score := SkillScore(s, []string{"ml", "ml"})
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("partial overlap normalized by required count", func(t *testing.T) {
		s := skills("ml", reviewerModel.ProficiencyBeginner)

		score := SkillScore(s, []string{"ml", "security", "databases", "devops"})
		assert.InDelta(t, 0.25/4, score, 1e-9)
	})
}

func TestSkillMatch(t *testing.T) {
	t.Run("splits matched and missing tags", func(t *testing.T) {
		s := skills(
			"ml", reviewerModel.ProficiencyExpert,
			"security", reviewerModel.ProficiencyIntermediate,
		)

		score, matched, missing := SkillMatch(s, []string{"security", "ml", "devops"})
		assert.InDelta(t, 1.5/3, score, 1e-9)
		assert.Equal(t, []string{"ml", "security"}, matched)
		assert.Equal(t, []string{"devops"}, missing)
	})

	t.Run("everything missing without overlap", func(t *testing.T) {
		score, matched, missing := SkillMatch(nil, []string{"ml"})
		assert.Zero(t, score)
		assert.Empty(t, matched)
		assert.Equal(t, []string{"ml"}, missing)
	})
}
