package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/lshigami/Quokka/internal/model"
	"github.com/lshigami/Quokka/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// fakeConnPool lets gorm's Transaction wrapper run against in-memory
// repositories: BeginTx hands back a committable pool and no SQL is ever
// issued because every repository below is a fake.
type fakeConnPool struct{}

func (fakeConnPool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errors.New("no database in tests")
}

func (fakeConnPool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errors.New("no database in tests")
}

func (fakeConnPool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("no database in tests")
}

func (fakeConnPool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (fakeConnPool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	// gorm's Commit/Rollback call reflect.ValueOf(committer).IsNil(), which
	// panics on a non-pointer value, so the committer must be a pointer.
	return &fakeTx{}, nil
}

type fakeTx struct{ fakeConnPool }

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func newFakeDB() *gorm.DB {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{ConnPool: fakeConnPool{}})
	if err != nil {
		panic(err)
	}
	return db
}

type fakeParticipantRepo struct {
	byID   map[uint]model.Participant
	nextID uint
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{byID: map[uint]model.Participant{}, nextID: 1}
}

func (r *fakeParticipantRepo) WithTx(*gorm.DB) repository.ParticipantRepository { return r }

func (r *fakeParticipantRepo) Create(p *model.Participant) error {
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	if p.Level == 0 {
		p.Level = 1
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *fakeParticipantRepo) FindByID(id uint) (*model.Participant, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *fakeParticipantRepo) FindByClassRoll(className, roll string) (*model.Participant, error) {
	for _, p := range r.byID {
		if p.ClassName == className && p.Roll == roll {
			p := p
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeParticipantRepo) FindTopByXP(limit int) ([]model.Participant, error) {
	all := make([]model.Participant, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].XP != all[j].XP {
			return all[i].XP > all[j].XP
		}
		return all[i].Name < all[j].Name
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeParticipantRepo) IncrementXP(id uint, amount int) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.XP += amount
	r.byID[id] = p
	return nil
}

func (r *fakeParticipantRepo) UpdateLevel(id uint, level int) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Level = level
	r.byID[id] = p
	return nil
}

func (r *fakeParticipantRepo) Count() (int64, error) { return int64(len(r.byID)), nil }

// fakeGamificationRepo enforces the same uniqueness the real schema does:
// repeated (participant, dedup_key) and (participant, achievement) inserts
// come back as gorm.ErrDuplicatedKey. The conflict flags force that error
// on the next insert to simulate losing a concurrent-insert race.
type fakeGamificationRepo struct {
	logs              []model.XPLog
	awards            []model.UserAchievement
	catalog           []model.Achievement
	xpConflictOnce    bool
	awardConflictOnce bool
}

func newFakeGamificationRepo() *fakeGamificationRepo {
	return &fakeGamificationRepo{
		catalog: []model.Achievement{
			{ID: AchievementFirstQuiz, Name: "First Steps"},
			{ID: AchievementFirstReview, Name: "Curious Mind"},
			{ID: AchievementPerfectScore, Name: "Perfectionist"},
			{ID: AchievementLevel2, Name: "Rising Star"},
			{ID: AchievementLevel5, Name: "Quiz Master"},
		},
	}
}

func (r *fakeGamificationRepo) WithTx(*gorm.DB) repository.GamificationRepository { return r }

func (r *fakeGamificationRepo) CreateXPLog(entry *model.XPLog) error {
	if r.xpConflictOnce {
		r.xpConflictOnce = false
		return gorm.ErrDuplicatedKey
	}
	if entry.DedupKey != nil {
		for _, l := range r.logs {
			if l.ParticipantID == entry.ParticipantID && l.DedupKey != nil && *l.DedupKey == *entry.DedupKey {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	entry.ID = uint(len(r.logs) + 1)
	entry.CreatedAt = time.Now()
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *fakeGamificationRepo) HasDedupKey(participantID uint, key string) (bool, error) {
	for _, l := range r.logs {
		if l.ParticipantID == participantID && l.DedupKey != nil && *l.DedupKey == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGamificationRepo) FindXPLogs(participantID uint, limit int) ([]model.XPLog, error) {
	var out []model.XPLog
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.logs[i].ParticipantID == participantID {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

func (r *fakeGamificationRepo) CreateUserAchievement(ua *model.UserAchievement) error {
	if r.awardConflictOnce {
		r.awardConflictOnce = false
		return gorm.ErrDuplicatedKey
	}
	for _, a := range r.awards {
		if a.ParticipantID == ua.ParticipantID && a.AchievementID == ua.AchievementID {
			return gorm.ErrDuplicatedKey
		}
	}
	ua.ID = uint(len(r.awards) + 1)
	ua.CreatedAt = time.Now()
	r.awards = append(r.awards, *ua)
	return nil
}

func (r *fakeGamificationRepo) HasAchievement(participantID uint, achievementID string) (bool, error) {
	for _, a := range r.awards {
		if a.ParticipantID == participantID && a.AchievementID == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGamificationRepo) FindUserAchievements(participantID uint) ([]model.UserAchievement, error) {
	var out []model.UserAchievement
	for _, a := range r.awards {
		if a.ParticipantID != participantID {
			continue
		}
		for _, c := range r.catalog {
			if c.ID == a.AchievementID {
				a.Achievement = c
			}
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeGamificationRepo) FindAllAchievements() ([]model.Achievement, error) {
	return r.catalog, nil
}

type fakeQuizRepo struct {
	quizzes []model.Quiz
}

func (r *fakeQuizRepo) WithTx(*gorm.DB) repository.QuizRepository { return r }

func (r *fakeQuizRepo) Create(quiz *model.Quiz) error {
	quiz.ID = uint(len(r.quizzes) + 1)
	r.quizzes = append(r.quizzes, *quiz)
	return nil
}

func (r *fakeQuizRepo) FindByQuizID(quizID string) (*model.Quiz, error) {
	for _, q := range r.quizzes {
		if q.QuizID == quizID {
			q := q
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuizRepo) FindByQuizIDWithQuestions(quizID string) (*model.Quiz, error) {
	return r.FindByQuizID(quizID)
}

func (r *fakeQuizRepo) FindActiveForClass(className string) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range r.quizzes {
		if q.Status != model.QuizStatusActive {
			continue
		}
		if q.AssignedClasses == model.AssignedClassesAll || strings.Contains(q.AssignedClasses, className) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) FindByQuizIDs(quizIDs []string) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range r.quizzes {
		for _, id := range quizIDs {
			if q.QuizID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) UpdateStatus(quizID, status string) error {
	for i := range r.quizzes {
		if r.quizzes[i].QuizID == quizID {
			r.quizzes[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeQuizRepo) ActivateDue(now time.Time) (int64, error) {
	var n int64
	for i := range r.quizzes {
		q := &r.quizzes[i]
		if q.Status == model.QuizStatusPending && q.ScheduledAt != nil && !q.ScheduledAt.After(now) {
			q.Status = model.QuizStatusActive
			n++
		}
	}
	return n, nil
}

func (r *fakeQuizRepo) Count() (int64, error) { return int64(len(r.quizzes)), nil }

type fakeQuestionRepo struct {
	questions []model.Question
}

func (r *fakeQuestionRepo) WithTx(*gorm.DB) repository.QuestionRepository { return r }

func (r *fakeQuestionRepo) Create(q *model.Question) error {
	q.ID = uint(len(r.questions) + 1)
	r.questions = append(r.questions, *q)
	return nil
}

func (r *fakeQuestionRepo) FindByQuizID(quizID string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.QuizID != nil && *q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindByQuestionIDs(questionIDs []string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		for _, id := range questionIDs {
			if q.QuestionID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindBank(topicTag string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.QuizID == nil {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) AssignToQuiz(questionIDs []string, quizID string) error {
	for i := range r.questions {
		for _, id := range questionIDs {
			if r.questions[i].QuestionID == id {
				qid := quizID
				r.questions[i].QuizID = &qid
			}
		}
	}
	return nil
}

func (r *fakeQuestionRepo) CountBank() (int64, error) {
	bank, _ := r.FindBank("")
	return int64(len(bank)), nil
}

type fakeResultRepo struct {
	results []model.Result
}

func (r *fakeResultRepo) WithTx(*gorm.DB) repository.ResultRepository { return r }

func (r *fakeResultRepo) Create(result *model.Result) error {
	result.ID = uint(len(r.results) + 1)
	result.CreatedAt = time.Now()
	r.results = append(r.results, *result)
	return nil
}

func (r *fakeResultRepo) FindByResultID(resultID string) (*model.Result, error) {
	for _, res := range r.results {
		if res.ResultID == resultID {
			res := res
			return &res, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResultRepo) FindByParticipantID(participantID uint) ([]model.Result, error) {
	var out []model.Result
	for i := len(r.results) - 1; i >= 0; i-- {
		if r.results[i].ParticipantID == participantID {
			out = append(out, r.results[i])
		}
	}
	return out, nil
}

func (r *fakeResultRepo) FindRecentWithNames(limit int) ([]repository.ResultWithName, error) {
	return nil, nil
}

func (r *fakeResultRepo) Count() (int64, error) { return int64(len(r.results)), nil }

type fakeAnnouncementRepo struct {
	announcements []model.Announcement
}

func (r *fakeAnnouncementRepo) Create(a *model.Announcement) error {
	a.ID = uint(len(r.announcements) + 1)
	r.announcements = append(r.announcements, *a)
	return nil
}

func (r *fakeAnnouncementRepo) FindForClass(className string, limit int) ([]model.Announcement, error) {
	var out []model.Announcement
	for _, a := range r.announcements {
		if a.TargetClass == model.AssignedClassesAll || a.TargetClass == className {
			out = append(out, a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
