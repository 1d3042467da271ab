package usecase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/application"
	"clarityhire/internal/domain/company"
	"clarityhire/internal/domain/job"
	"clarityhire/internal/domain/question"
	"clarityhire/internal/domain/user"
	"clarityhire/internal/repository"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, errBoom }
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (t *fakeTx) Commit(context.Context) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.commits++
	return t.db.commitErr
}
func (t *fakeTx) Rollback(context.Context) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.rollbacks++
	return nil
}

// fakeDB only supports transactions; repositories are faked separately.
type fakeDB struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
	commitErr error
}

func (d *fakeDB) Ping(context.Context) error                                   { return nil }
func (d *fakeDB) Close() error                                                 { return nil }
func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, errBoom }
func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (d *fakeDB) Begin(context.Context) (database.Tx, error)                   { return &fakeTx{db: d}, nil }
func (d *fakeDB) SQLDB() *sql.DB                                               { return nil }

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[uuid.UUID]user.User{}} }

func (r *fakeUserRepo) CreateUser(_ context.Context, _ database.Querier, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.users[u.ID] = u
	return nil
}
func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	return err == nil, nil
}

type fakeCompanyRepo struct {
	mu          sync.Mutex
	companies   map[uuid.UUID]company.Company
	members     []company.Member
	slugs       map[string]struct{}
	createErr   error
	memberships map[uuid.UUID]company.Membership
}

func newFakeCompanyRepo(taken ...string) *fakeCompanyRepo {
	r := &fakeCompanyRepo{
		companies:   map[uuid.UUID]company.Company{},
		slugs:       map[string]struct{}{},
		memberships: map[uuid.UUID]company.Membership{},
	}
	for _, s := range taken {
		r.slugs[s] = struct{}{}
	}
	return r
}

func (r *fakeCompanyRepo) CreateCompany(_ context.Context, _ database.Querier, c company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.companies[c.ID] = c
	r.slugs[c.Slug] = struct{}{}
	return nil
}
func (r *fakeCompanyRepo) CreateMember(_ context.Context, _ database.Querier, m company.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members = append(r.members, m)
	return nil
}
func (r *fakeCompanyRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.slugs[slug]
	return ok, nil
}
func (r *fakeCompanyRepo) TakenSlugs(_ context.Context, slugs []string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]struct{}{}
	for _, s := range slugs {
		if _, ok := r.slugs[s]; ok {
			out[s] = struct{}{}
		}
	}
	return out, nil
}
func (r *fakeCompanyRepo) GetBySlug(_ context.Context, slug string) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Slug == slug {
			return c, nil
		}
	}
	return company.Company{}, repository.ErrCompanyNotFound
}
func (r *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, repository.ErrCompanyNotFound
	}
	return c, nil
}
func (r *fakeCompanyRepo) ListCompanies(context.Context) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]company.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeCompanyRepo) FindMembership(_ context.Context, userID, companyID uuid.UUID) (company.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[userID]
	if !ok || m.CompanyID != companyID {
		return company.Membership{}, repository.ErrMembershipNotFound
	}
	return m, nil
}
func (r *fakeCompanyRepo) FirstMembership(_ context.Context, userID uuid.UUID) (company.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[userID]
	if !ok {
		return company.Membership{}, repository.ErrMembershipNotFound
	}
	return m, nil
}

type fakeQuestionRepo struct {
	mu    sync.Mutex
	items []question.Question
	err   error
	lists int
}

func (r *fakeQuestionRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]question.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	if r.err != nil {
		return nil, r.err
	}
	out := []question.Question{}
	for _, q := range r.items {
		if q.CompanyID == companyID {
			out = append(out, q)
		}
	}
	return out, nil
}
func (r *fakeQuestionRepo) Create(_ context.Context, q question.Question) (question.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return question.Question{}, r.err
	}
	q.CreatedAt = time.Now()
	r.items = append(r.items, q)
	return q, nil
}
func (r *fakeQuestionRepo) CountOwned(_ context.Context, companyID uuid.UUID, ids []uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range ids {
		for _, q := range r.items {
			if q.ID == id && q.CompanyID == companyID {
				n++
			}
		}
	}
	return n, nil
}

type fakeJobRepo struct {
	mu     sync.Mutex
	jobs   map[uuid.UUID]job.Job
	links  map[uuid.UUID][]job.QuestionSelection
	qs     *fakeQuestionRepo
	getErr error
}

func newFakeJobRepo(qs *fakeQuestionRepo) *fakeJobRepo {
	return &fakeJobRepo{jobs: map[uuid.UUID]job.Job{}, links: map[uuid.UUID][]job.QuestionSelection{}, qs: qs}
}

func (r *fakeJobRepo) Create(_ context.Context, _ database.Querier, j job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = j
	return nil
}
func (r *fakeJobRepo) Update(_ context.Context, _ database.Querier, j job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; !ok {
		return repository.ErrJobNotFound
	}
	r.jobs[j.ID] = j
	return nil
}
func (r *fakeJobRepo) ReplaceQuestions(_ context.Context, _ database.Querier, jobID uuid.UUID, sel []job.QuestionSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[jobID] = sel
	return nil
}
func (r *fakeJobRepo) UpdateStatus(_ context.Context, jobID uuid.UUID, status job.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.Status = status
	r.jobs[jobID] = j
	return nil
}
func (r *fakeJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	r.mu.Lock()
	j, ok := r.jobs[jobID]
	getErr := r.getErr
	r.mu.Unlock()
	if getErr != nil {
		return job.Job{}, getErr
	}
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	qs, _ := r.ListQuestions(ctx, jobID)
	j.Questions = qs
	return j, nil
}
func (r *fakeJobRepo) ListQuestions(_ context.Context, jobID uuid.UUID) ([]job.JobQuestion, error) {
	r.mu.Lock()
	sel := r.links[jobID]
	r.mu.Unlock()

	out := []job.JobQuestion{}
	if r.qs == nil {
		return out, nil
	}
	r.qs.mu.Lock()
	defer r.qs.mu.Unlock()
	for _, s := range sel {
		for _, q := range r.qs.items {
			if q.ID == s.QuestionID {
				out = append(out, job.JobQuestion{JobID: jobID, QuestionID: q.ID, Required: s.Required, Question: q})
			}
		}
	}
	return out, nil
}
func (r *fakeJobRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]repository.JobSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []repository.JobSummary{}
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			out = append(out, repository.JobSummary{Job: j})
		}
	}
	return out, nil
}
func (r *fakeJobRepo) ListPublishedByCompany(_ context.Context, companyID uuid.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []job.Job{}
	for _, j := range r.jobs {
		if j.CompanyID == companyID && j.Status == job.StatusPublished {
			out = append(out, j)
		}
	}
	return out, nil
}
func (r *fakeJobRepo) CountByStatus(_ context.Context, companyID uuid.UUID, status job.Status) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, j := range r.jobs {
		if j.CompanyID == companyID && j.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeResumeRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]application.Resume
	createErr error
	listErr   error
	deleted   []uuid.UUID
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{items: map[uuid.UUID]application.Resume{}}
}

func (r *fakeResumeRepo) Create(_ context.Context, res application.Resume) (application.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return application.Resume{}, r.createErr
	}
	r.items[res.ID] = res
	return res, nil
}
func (r *fakeResumeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	r.deleted = append(r.deleted, id)
	return nil
}
func (r *fakeResumeRepo) GetByID(_ context.Context, id uuid.UUID) (application.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return application.Resume{}, repository.ErrResumeNotFound
	}
	return res, nil
}
func (r *fakeResumeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]application.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []application.Resume{}
	for _, res := range r.items {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeApplicationRepo struct {
	mu    sync.Mutex
	items []application.Application
	err   error
}

func (r *fakeApplicationRepo) Create(_ context.Context, _ database.Querier, a application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, a)
	return nil
}
func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []application.Application{}
	for _, a := range r.items {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeBlobs struct {
	mu      sync.Mutex
	stored  map[string][]byte
	deleted []string
	putErr  error
	puts    int
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{stored: map[string][]byte{}} }

func (b *fakeBlobs) Put(_ context.Context, key string, r io.Reader) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts++
	if b.putErr != nil {
		return "", b.putErr
	}
	data, _ := io.ReadAll(r)
	url := "/blobs/" + key
	b.stored[url] = data
	return url, nil
}
func (b *fakeBlobs) Delete(_ context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.stored, url)
	b.deleted = append(b.deleted, url)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events map[uuid.UUID][]ApplicationEvent
}

func (p *fakePublisher) PublishApplication(companyID uuid.UUID, ev ApplicationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = map[uuid.UUID][]ApplicationEvent{}
	}
	p.events[companyID] = append(p.events[companyID], ev)
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}
