package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/repositories"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	mu sync.Mutex

	users     map[uint]*models.User
	sets      map[uint]*models.QuestionSet
	questions map[uint]*models.Question
	sessions  map[uint]*models.TestSession
	answers   map[uint][]*models.SubmittedAnswer
	results   map[uint]*models.Result

	nextUserID     uint
	nextSetID      uint
	nextQuestionID uint
	nextSessionID  uint
	nextAnswerID   uint
	nextResultID   uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:     make(map[uint]*models.User),
		sets:      make(map[uint]*models.QuestionSet),
		questions: make(map[uint]*models.Question),
		sessions:  make(map[uint]*models.TestSession),
		answers:   make(map[uint][]*models.SubmittedAnswer),
		results:   make(map[uint]*models.Result),
	}
}

func (f *fakeRepository) User() repositories.UserRepository                       { return (*fakeUserRepo)(f) }
func (f *fakeRepository) QuestionSet() repositories.QuestionSetRepository         { return (*fakeSetRepo)(f) }
func (f *fakeRepository) Question() repositories.QuestionRepository               { return (*fakeQuestionRepo)(f) }
func (f *fakeRepository) Session() repositories.SessionRepository                 { return (*fakeSessionRepo)(f) }
func (f *fakeRepository) SubmittedAnswer() repositories.SubmittedAnswerRepository { return (*fakeAnswerRepo)(f) }
func (f *fakeRepository) Result() repositories.ResultRepository                   { return (*fakeResultRepo)(f) }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ----- users -----

type fakeUserRepo fakeRepository

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextUserID++
	user.ID = f.nextUserID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

// ----- question sets -----

type fakeSetRepo fakeRepository

func (f *fakeSetRepo) Create(ctx context.Context, tx *gorm.DB, set *models.QuestionSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSetID++
	set.ID = f.nextSetID
	f.sets[set.ID] = set
	return nil
}

func (f *fakeSetRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.sets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return set, nil
}

func (f *fakeSetRepo) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionSet, error) {
	set, err := f.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	questions, _ := (*fakeQuestionRepo)(f).GetBySet(ctx, tx, id)
	set.Questions = set.Questions[:0]
	for _, q := range questions {
		set.Questions = append(set.Questions, *q)
	}
	return set, nil
}

func (f *fakeSetRepo) Update(ctx context.Context, tx *gorm.DB, set *models.QuestionSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sets[set.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.sets[set.ID] = set
	return nil
}

func (f *fakeSetRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sets, id)
	for qid, q := range f.questions {
		if q.QuestionSetID == id {
			delete(f.questions, qid)
		}
	}
	return nil
}

func (f *fakeSetRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sets []*models.QuestionSet
	for _, set := range f.sets {
		if filters.IsActive != nil && set.IsActive != *filters.IsActive {
			continue
		}
		sets = append(sets, set)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].ID < sets[j].ID })
	return sets, int64(len(sets)), nil
}

// ----- questions -----

type fakeQuestionRepo fakeRepository

func (f *fakeQuestionRepo) CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range questions {
		for _, existing := range f.questions {
			if existing.QuestionSetID == q.QuestionSetID && existing.Ordinal == q.Ordinal {
				return gorm.ErrDuplicatedKey
			}
		}
		f.nextQuestionID++
		q.ID = f.nextQuestionID
		f.questions[q.ID] = q
	}
	return nil
}

func (f *fakeQuestionRepo) GetBySet(ctx context.Context, tx *gorm.DB, setID uint) ([]*models.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var questions []*models.Question
	for _, q := range f.questions {
		if q.QuestionSetID == setID {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].Ordinal < questions[j].Ordinal })
	return questions, nil
}

func (f *fakeQuestionRepo) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.questions[question.ID] = question
	return nil
}

// ----- sessions -----

type fakeSessionRepo fakeRepository

func (f *fakeSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *models.TestSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSessionID++
	session.ID = f.nextSessionID
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.TestSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) GetByIDWithAnswers(ctx context.Context, tx *gorm.DB, id uint) (*models.TestSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := *session
	loaded.Answers = nil
	for _, a := range f.answers[id] {
		loaded.Answers = append(loaded.Answers, *a)
	}
	return &loaded, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, tx *gorm.DB, session *models.TestSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session.IsCompleted {
		for _, other := range f.sessions {
			if other.ID != session.ID && other.CandidateID == session.CandidateID &&
				other.QuestionSetID == session.QuestionSetID && other.IsCompleted {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.SessionFilters) ([]*models.TestSession, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sessions []*models.TestSession
	for _, s := range f.sessions {
		if filters.CandidateID != nil && s.CandidateID != *filters.CandidateID {
			continue
		}
		if filters.QuestionSetID != nil && s.QuestionSetID != *filters.QuestionSetID {
			continue
		}
		if filters.IsCompleted != nil && s.IsCompleted != *filters.IsCompleted {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, int64(len(sessions)), nil
}

func (f *fakeSessionRepo) HasCompleted(ctx context.Context, tx *gorm.DB, candidateID, setID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.CandidateID == candidateID && s.QuestionSetID == setID && s.IsCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessionRepo) FindInProgress(ctx context.Context, tx *gorm.DB, candidateID, setID uint) (*models.TestSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.CandidateID == candidateID && s.QuestionSetID == setID && !s.IsCompleted {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) CountCompletedBySet(ctx context.Context, tx *gorm.DB, setID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, s := range f.sessions {
		if s.QuestionSetID == setID && s.IsCompleted {
			count++
		}
	}
	return count, nil
}

// ----- submitted answers -----

type fakeAnswerRepo fakeRepository

func (f *fakeAnswerRepo) CreateBatch(ctx context.Context, tx *gorm.DB, answers []*models.SubmittedAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range answers {
		f.nextAnswerID++
		a.ID = f.nextAnswerID
		f.answers[a.SessionID] = append(f.answers[a.SessionID], a)
	}
	return nil
}

// ----- results -----

type fakeResultRepo fakeRepository

func (f *fakeResultRepo) Create(ctx context.Context, tx *gorm.DB, result *models.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.results[result.SessionID]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.nextResultID++
	result.ID = f.nextResultID
	f.results[result.SessionID] = result
	return nil
}

func (f *fakeResultRepo) GetBySession(ctx context.Context, tx *gorm.DB, sessionID uint) (*models.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result, ok := f.results[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return result, nil
}

func (f *fakeResultRepo) ListBySet(ctx context.Context, tx *gorm.DB, setID uint, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*models.Result
	for _, r := range f.results {
		session, ok := f.sessions[r.SessionID]
		if !ok || session.QuestionSetID != setID {
			continue
		}
		if filters.Passed != nil && r.Passed != *filters.Passed {
			continue
		}
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].SessionID < results[j].SessionID })
	return results, int64(len(results)), nil
}
