package service

import (
	"testing"

	"github.com/lshigami/Quokka/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleByID(t *testing.T, id string) AchievementRule {
	t.Helper()
	for _, rule := range SubmissionRules() {
		if rule.ID == id {
			return rule
		}
	}
	t.Fatalf("rule %s not registered", id)
	return AchievementRule{}
}

func TestSubmissionRules_Order(t *testing.T) {
	rules := SubmissionRules()
	require.Len(t, rules, 4)

	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID)
	}
	assert.Equal(t, []string{
		AchievementFirstQuiz,
		AchievementPerfectScore,
		AchievementLevel2,
		AchievementLevel5,
	}, ids)
}

func TestFirstQuizRule_AlwaysApplies(t *testing.T) {
	rule := ruleByID(t, AchievementFirstQuiz)
	ctx := AwardContext{Participant: &model.Participant{}, Score: 0, Total: 5}
	assert.True(t, rule.Applies(ctx))
}

func TestPerfectScoreRule(t *testing.T) {
	rule := ruleByID(t, AchievementPerfectScore)
	p := &model.Participant{}

	assert.True(t, rule.Applies(AwardContext{Participant: p, Score: 5, Total: 5}))
	assert.False(t, rule.Applies(AwardContext{Participant: p, Score: 4, Total: 5}))
	// An empty quiz is never a perfect score.
	assert.False(t, rule.Applies(AwardContext{Participant: p, Score: 0, Total: 0}))
}

func TestLevelRules_UsePostGrantLevel(t *testing.T) {
	level2 := ruleByID(t, AchievementLevel2)
	level5 := ruleByID(t, AchievementLevel5)

	assert.False(t, level2.Applies(AwardContext{Participant: &model.Participant{Level: 1}}))
	assert.True(t, level2.Applies(AwardContext{Participant: &model.Participant{Level: 2}}))
	// At-or-above, so a jump straight past a threshold still awards it.
	assert.True(t, level2.Applies(AwardContext{Participant: &model.Participant{Level: 5}}))

	assert.False(t, level5.Applies(AwardContext{Participant: &model.Participant{Level: 4}}))
	assert.True(t, level5.Applies(AwardContext{Participant: &model.Participant{Level: 5}}))
}
