package service

import (
	"strings"
	"testing"

	"github.com/lshigami/Quokka/internal/dto"
	"github.com/lshigami/Quokka/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcq(id, correct string) model.Question {
	return model.Question{QuestionID: id, Type: model.QuestionTypeMCQ, CorrectAnswer: correct}
}

func TestScoreAttempt_FullyAnswered(t *testing.T) {
	questions := []model.Question{mcq("q1", "A"), mcq("q2", "B"), mcq("q3", "C")}
	answers := map[string]string{"q1": "A", "q2": "B", "q3": "D"}

	got := scoreAttempt(NewAnswerGrader(), questions, answers)

	assert.Equal(t, 2, got.Score)
	assert.Equal(t, 3, got.Total)
	// 2 correct * 10 + completion bonus for answering all three.
	assert.Equal(t, 2*XPPerCorrectAnswer+QuizCompletionBonusXP, got.XPEarned)
}

func TestScoreAttempt_PartialAnswersSkipBonus(t *testing.T) {
	questions := []model.Question{mcq("q1", "A"), mcq("q2", "B"), mcq("q3", "C")}
	answers := map[string]string{"q1": "A", "q2": "B"}

	got := scoreAttempt(NewAnswerGrader(), questions, answers)

	assert.Equal(t, 2, got.Score)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2*XPPerCorrectAnswer, got.XPEarned)
}

func TestScoreAttempt_AllWrongButCompleteStillEarnsBonus(t *testing.T) {
	// The bonus rewards answering everything, not answering correctly.
	questions := []model.Question{mcq("q1", "A"), mcq("q2", "B")}
	answers := map[string]string{"q1": "X", "q2": "Y"}

	got := scoreAttempt(NewAnswerGrader(), questions, answers)

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, QuizCompletionBonusXP, got.XPEarned)
}

func TestScoreAttempt_EmptySubmission(t *testing.T) {
	questions := []model.Question{mcq("q1", "A")}

	got := scoreAttempt(NewAnswerGrader(), questions, map[string]string{})

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 0, got.XPEarned)
}

func TestScoreAttempt_UnknownQuestionIDsIgnored(t *testing.T) {
	questions := []model.Question{mcq("q1", "A")}
	answers := map[string]string{"q1": "A", "ghost": "Z"}

	got := scoreAttempt(NewAnswerGrader(), questions, answers)

	assert.Equal(t, 1, got.Score)
	// Stray entries mean the answer count no longer matches the question
	// count, so no completion bonus.
	assert.Equal(t, XPPerCorrectAnswer, got.XPEarned)
}

type submissionFixture struct {
	svc          SubmissionService
	participants *fakeParticipantRepo
	results      *fakeResultRepo
	gamRepo      *fakeGamificationRepo
}

// One-question active quiz QZMATH01 ("q1", correct "A") and a participant
// 8A/12 at 200 XP, level 1. A fully correct submission grants 60 XP and
// lands on 260, past the level 2 threshold.
func newSubmissionFixture(t *testing.T) submissionFixture {
	t.Helper()

	participants := newFakeParticipantRepo()
	require.NoError(t, participants.Create(&model.Participant{
		ClassName: "8A", Roll: "12", Name: "Anika", XP: 200, Level: 1,
	}))

	quizID := "QZMATH01"
	quizzes := &fakeQuizRepo{quizzes: []model.Quiz{
		{QuizID: quizID, Title: "Mental Math", Status: model.QuizStatusActive},
		{QuizID: "QZEMPTY1", Title: "No Questions Yet", Status: model.QuizStatusActive},
	}}
	questions := &fakeQuestionRepo{questions: []model.Question{
		{QuestionID: "q1", QuizID: &quizID, Type: model.QuestionTypeMCQ, Text: "2+2?", CorrectAnswer: "A"},
	}}
	results := &fakeResultRepo{}
	gamRepo := newFakeGamificationRepo()

	svc := NewSubmissionService(
		participants, quizzes, questions, results,
		NewGamificationService(participants, gamRepo),
		NewAnswerGrader(), newFakeDB(),
	)
	return submissionFixture{svc: svc, participants: participants, results: results, gamRepo: gamRepo}
}

func TestSubmitQuiz_FirstSubmission(t *testing.T) {
	f := newSubmissionFixture(t)
	req := dto.QuizSubmissionDTO{ClassName: "8A", Roll: "12", Answers: map[string]string{"q1": "A"}}

	res, err := f.svc.SubmitQuiz("QZMATH01", req)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, XPPerCorrectAnswer+QuizCompletionBonusXP, res.XPEarned)
	assert.True(t, res.LeveledUp)
	assert.True(t, strings.HasPrefix(res.ResultID, "RES"))
	assert.Equal(t, []string{AchievementFirstQuiz, AchievementPerfectScore, AchievementLevel2}, res.NewAchievements)

	stored, err := f.participants.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 260, stored.XP)
	assert.Equal(t, 2, stored.Level)
	assert.Len(t, f.results.results, 1)
}

func TestSubmitQuiz_RepeatSubmissionGrantsXPButNoRepeatAchievements(t *testing.T) {
	f := newSubmissionFixture(t)
	req := dto.QuizSubmissionDTO{ClassName: "8A", Roll: "12", Answers: map[string]string{"q1": "A"}}

	_, err := f.svc.SubmitQuiz("QZMATH01", req)
	require.NoError(t, err)

	res, err := f.svc.SubmitQuiz("QZMATH01", req)
	require.NoError(t, err)

	// Submissions are not deduplicated: a second result exists and XP
	// accrues again. first_quiz and friends do not reappear.
	assert.Equal(t, XPPerCorrectAnswer+QuizCompletionBonusXP, res.XPEarned)
	assert.False(t, res.LeveledUp)
	assert.Empty(t, res.NewAchievements)
	assert.Len(t, f.results.results, 2)

	stored, err := f.participants.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 320, stored.XP)
}

func TestSubmitQuiz_UnknownQuiz(t *testing.T) {
	f := newSubmissionFixture(t)
	req := dto.QuizSubmissionDTO{ClassName: "8A", Roll: "12", Answers: map[string]string{}}

	_, err := f.svc.SubmitQuiz("QZMISSING", req)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestSubmitQuiz_UnknownParticipant(t *testing.T) {
	f := newSubmissionFixture(t)
	req := dto.QuizSubmissionDTO{ClassName: "8A", Roll: "99", Answers: map[string]string{}}

	_, err := f.svc.SubmitQuiz("QZMATH01", req)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestSubmitQuiz_EmptyQuiz(t *testing.T) {
	f := newSubmissionFixture(t)
	req := dto.QuizSubmissionDTO{ClassName: "8A", Roll: "12", Answers: map[string]string{}}

	_, err := f.svc.SubmitQuiz("QZEMPTY1", req)
	assert.ErrorIs(t, err, ErrQuizHasNoQuestions)
}

func TestNewPublicID(t *testing.T) {
	id := newPublicID("RES")

	assert.True(t, strings.HasPrefix(id, "RES"))
	assert.Len(t, id, len("RES")+12)
	assert.Equal(t, id, strings.ToUpper(id))
	assert.NotEqual(t, id, newPublicID("RES"))
}
