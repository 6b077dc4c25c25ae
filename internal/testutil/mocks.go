// Package testutil provides hand-rolled repository mocks for service tests.
package testutil

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/wisker-app/wisker/internal/domain/note"
	"github.com/wisker-app/wisker/internal/domain/plan"
	"github.com/wisker-app/wisker/internal/domain/promo"
	"github.com/wisker-app/wisker/internal/domain/subject"
	"github.com/wisker-app/wisker/internal/domain/tool"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/payment"
	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// MockUserRepository is an in-memory implementation of user.Repository. The
// conditional operations behave like their single-statement SQL counterparts.
type MockUserRepository struct {
	Users       map[int64]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*user.User),
		NextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, existing := range m.Users {
		if existing.Email == u.Email {
			return errors.Conflict("Email already registered")
		}
	}
	u.ID = m.NextID
	m.NextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.Users[u.ID] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Users[id]; !ok {
		return errors.NotFound("User")
	}
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	ids := make([]int64, 0, len(m.Users))
	for id := range m.Users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*user.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		cp := *m.Users[id]
		out = append(out, &cp)
	}
	return out, int64(len(m.Users)), nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Users)), nil
}

func (m *MockUserRepository) ResetDailyCredits(ctx context.Context, id int64, at time.Time) error {
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.CreditsUsedToday = 0
	u.LastCreditReset = at
	return nil
}

func (m *MockUserRepository) ConsumeCredits(ctx context.Context, id int64, amount int) (bool, error) {
	u, ok := m.Users[id]
	if !ok {
		return false, errors.NotFound("User")
	}
	if u.DailyCredits-u.CreditsUsedToday < amount {
		return false, nil
	}
	u.CreditsUsedToday += amount
	return true, nil
}

func (m *MockUserRepository) ApplyPlan(ctx context.Context, id int64, change user.PlanChange) error {
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.PlanType = change.PlanType
	u.DailyCredits = change.DailyCredits
	u.NotesLimit = change.NotesLimit
	u.SubjectsLimit = change.SubjectsLimit
	status := change.Status
	u.SubscriptionStatus = &status
	u.SubscriptionPeriod = change.Period
	u.SubscriptionStartDate = change.StartDate
	u.SubscriptionEndDate = change.EndDate
	u.CreditsUsedToday = 0
	u.LastCreditReset = change.ChangedAt
	return nil
}

func (m *MockUserRepository) UpdateStreak(ctx context.Context, id int64, current, longest int, lastActivity time.Time) error {
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.CurrentStreak = current
	u.LongestStreak = longest
	u.LastActivityDate = &lastActivity
	return nil
}

func (m *MockUserRepository) ResetStaleCredits(ctx context.Context, cutoff, at time.Time) (int64, error) {
	var n int64
	for _, u := range m.Users {
		if !u.LastCreditReset.After(cutoff) && u.CreditsUsedToday > 0 {
			u.CreditsUsedToday = 0
			u.LastCreditReset = at
			n++
		}
	}
	return n, nil
}

// MockPlanRepository is an in-memory implementation of plan.Repository
type MockPlanRepository struct {
	Plans     map[string]*plan.Plan
	NextID    int64
	ListCalls int
	GetError  error
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{
		Plans:  make(map[string]*plan.Plan),
		NextID: 1,
	}
}

func (m *MockPlanRepository) GetByType(ctx context.Context, planType string) (*plan.Plan, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.Plans[planType]
	if !ok {
		return nil, errors.NotFound("Plan")
	}
	cp := *p
	return &cp, nil
}

func (m *MockPlanRepository) List(ctx context.Context, activeOnly bool) ([]*plan.Plan, error) {
	m.ListCalls++
	var out []*plan.Plan
	for _, p := range m.Plans {
		if activeOnly && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *MockPlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	if _, ok := m.Plans[p.PlanType]; ok {
		return errors.Conflict("Plan already exists")
	}
	p.ID = m.NextID
	m.NextID++
	cp := *p
	m.Plans[p.PlanType] = &cp
	return nil
}

func (m *MockPlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	if _, ok := m.Plans[p.PlanType]; !ok {
		return errors.NotFound("Plan")
	}
	cp := *p
	m.Plans[p.PlanType] = &cp
	return nil
}

func (m *MockPlanRepository) Delete(ctx context.Context, planType string) error {
	if _, ok := m.Plans[planType]; !ok {
		return errors.NotFound("Plan")
	}
	delete(m.Plans, planType)
	return nil
}

// MockPromoRepository is an in-memory implementation of promo.Repository
type MockPromoRepository struct {
	Promos      map[string]*promo.PromoCode
	Redemptions map[string]bool
	NextID      int64
}

func NewMockPromoRepository() *MockPromoRepository {
	return &MockPromoRepository{
		Promos:      make(map[string]*promo.PromoCode),
		Redemptions: make(map[string]bool),
		NextID:      1,
	}
}

func (m *MockPromoRepository) GetByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	p, ok := m.Promos[strings.ToUpper(code)]
	if !ok {
		return nil, errors.NotFound("Promo code")
	}
	cp := *p
	return &cp, nil
}

func (m *MockPromoRepository) Create(ctx context.Context, p *promo.PromoCode) error {
	p.Code = strings.ToUpper(p.Code)
	if _, ok := m.Promos[p.Code]; ok {
		return errors.Conflict("Promo code already exists")
	}
	p.ID = m.NextID
	m.NextID++
	p.CreatedAt = time.Now()
	cp := *p
	m.Promos[p.Code] = &cp
	return nil
}

func (m *MockPromoRepository) List(ctx context.Context) ([]*promo.PromoCode, error) {
	var out []*promo.PromoCode
	for _, p := range m.Promos {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockPromoRepository) Update(ctx context.Context, p *promo.PromoCode) error {
	code := strings.ToUpper(p.Code)
	if _, ok := m.Promos[code]; !ok {
		return errors.NotFound("Promo code")
	}
	cp := *p
	cp.Code = code
	m.Promos[code] = &cp
	return nil
}

func (m *MockPromoRepository) Delete(ctx context.Context, code string) error {
	code = strings.ToUpper(code)
	if _, ok := m.Promos[code]; !ok {
		return errors.NotFound("Promo code")
	}
	delete(m.Promos, code)
	return nil
}

func (m *MockPromoRepository) Redeem(ctx context.Context, code, sessionID string) (bool, error) {
	code = strings.ToUpper(code)
	if sessionID != "" {
		key := code + "|" + sessionID
		if m.Redemptions[key] {
			return true, nil
		}
		m.Redemptions[key] = true
	}
	p, ok := m.Promos[code]
	if !ok {
		return false, nil
	}
	if !p.IsActive {
		return false, nil
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(time.Now()) {
		return false, nil
	}
	if p.MaxUses > 0 && p.CurrentUses >= p.MaxUses {
		return false, nil
	}
	p.CurrentUses++
	return true, nil
}

// MockSubjectRepository is an in-memory implementation of subject.Repository
type MockSubjectRepository struct {
	Subjects map[int64]*subject.Subject
	NextID   int64
}

func NewMockSubjectRepository() *MockSubjectRepository {
	return &MockSubjectRepository{
		Subjects: make(map[int64]*subject.Subject),
		NextID:   1,
	}
}

func (m *MockSubjectRepository) CreateWithinLimit(ctx context.Context, s *subject.Subject, limit int) (bool, error) {
	if limit != -1 {
		count, _ := m.CountByUser(ctx, s.UserID)
		if count >= limit {
			return false, nil
		}
	}
	s.ID = m.NextID
	m.NextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	m.Subjects[s.ID] = &cp
	return true, nil
}

func (m *MockSubjectRepository) GetByID(ctx context.Context, id int64) (*subject.Subject, error) {
	s, ok := m.Subjects[id]
	if !ok {
		return nil, errors.NotFound("Subject")
	}
	cp := *s
	return &cp, nil
}

func (m *MockSubjectRepository) ListByUser(ctx context.Context, userID int64) ([]*subject.Subject, error) {
	var out []*subject.Subject
	for _, s := range m.Subjects {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockSubjectRepository) Update(ctx context.Context, s *subject.Subject) error {
	if _, ok := m.Subjects[s.ID]; !ok {
		return errors.NotFound("Subject")
	}
	cp := *s
	m.Subjects[s.ID] = &cp
	return nil
}

func (m *MockSubjectRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Subjects[id]; !ok {
		return errors.NotFound("Subject")
	}
	delete(m.Subjects, id)
	return nil
}

func (m *MockSubjectRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, s := range m.Subjects {
		if s.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MockNoteRepository is an in-memory implementation of note.Repository
type MockNoteRepository struct {
	Notes  map[int64]*note.Note
	NextID int64
}

func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{
		Notes:  make(map[int64]*note.Note),
		NextID: 1,
	}
}

func (m *MockNoteRepository) CreateWithinLimit(ctx context.Context, n *note.Note, limit int) (bool, error) {
	if limit != -1 {
		count, _ := m.CountByUser(ctx, n.UserID)
		if count >= limit {
			return false, nil
		}
	}
	n.ID = m.NextID
	m.NextID++
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	cp := *n
	m.Notes[n.ID] = &cp
	return true, nil
}

func (m *MockNoteRepository) GetByID(ctx context.Context, id int64) (*note.Note, error) {
	n, ok := m.Notes[id]
	if !ok {
		return nil, errors.NotFound("Note")
	}
	cp := *n
	return &cp, nil
}

func (m *MockNoteRepository) ListBySubject(ctx context.Context, subjectID int64) ([]*note.Note, error) {
	var out []*note.Note
	for _, n := range m.Notes {
		if n.SubjectID == subjectID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockNoteRepository) Update(ctx context.Context, n *note.Note) error {
	if _, ok := m.Notes[n.ID]; !ok {
		return errors.NotFound("Note")
	}
	cp := *n
	m.Notes[n.ID] = &cp
	return nil
}

func (m *MockNoteRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Notes[id]; !ok {
		return errors.NotFound("Note")
	}
	delete(m.Notes, id)
	return nil
}

func (m *MockNoteRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range m.Notes {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MockToolRepository is an in-memory implementation of tool.Repository
type MockToolRepository struct {
	Tools  map[int64]*tool.LearningTool
	NextID int64
}

func NewMockToolRepository() *MockToolRepository {
	return &MockToolRepository{
		Tools:  make(map[int64]*tool.LearningTool),
		NextID: 1,
	}
}

func (m *MockToolRepository) Create(ctx context.Context, t *tool.LearningTool) error {
	t.ID = m.NextID
	m.NextID++
	t.CreatedAt = time.Now()
	cp := *t
	m.Tools[t.ID] = &cp
	return nil
}

func (m *MockToolRepository) GetByID(ctx context.Context, id int64) (*tool.LearningTool, error) {
	t, ok := m.Tools[id]
	if !ok {
		return nil, errors.NotFound("Learning tool")
	}
	cp := *t
	return &cp, nil
}

func (m *MockToolRepository) ListByNote(ctx context.Context, noteID int64) ([]*tool.LearningTool, error) {
	var out []*tool.LearningTool
	for _, t := range m.Tools {
		if t.NoteID == noteID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockToolRepository) ListByUser(ctx context.Context, userID int64) ([]*tool.LearningTool, error) {
	var out []*tool.LearningTool
	for _, t := range m.Tools {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockToolRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Tools[id]; !ok {
		return errors.NotFound("Learning tool")
	}
	delete(m.Tools, id)
	return nil
}

// MockGateway is a scripted payment.Gateway
type MockGateway struct {
	Sessions    map[string]*payment.CheckoutSession
	NextID      int
	CreateError error
	LastParams  *payment.CheckoutParams
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		Sessions: make(map[string]*payment.CheckoutSession),
		NextID:   1,
	}
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.LastParams = &params
	id := "cs_test_" + strconv.Itoa(m.NextID)
	m.NextID++
	session := &payment.CheckoutSession{
		ID:          id,
		CheckoutURL: "https://checkout.example.test/" + id,
		Status:      "active",
		Metadata:    params.Metadata,
	}
	m.Sessions[id] = session
	return session, nil
}

func (m *MockGateway) GetCheckoutSession(ctx context.Context, id string) (*payment.CheckoutSession, error) {
	session, ok := m.Sessions[id]
	if !ok {
		return nil, errors.NotFound("Checkout session")
	}
	cp := *session
	return &cp, nil
}

// MockGenerator is a scripted AI generator
type MockGenerator struct {
	Content string
	Err     error
	Calls   int
}

func (m *MockGenerator) Generate(ctx context.Context, toolType, title, material string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	if m.Content != "" {
		return m.Content, nil
	}
	return `{"generated":true}`, nil
}
