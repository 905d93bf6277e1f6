package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"course-planner/backend/internal/model"
	"course-planner/backend/internal/repository"
	pkgerrors "course-planner/backend/pkg/errors"
	"course-planner/backend/pkg/redis"
	"course-planner/backend/pkg/sis"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	symbiotes map[string][]string
	seq       int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:     make(map[string]*model.User),
		symbiotes: make(map[string][]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return fmt.Errorf("duplicate key value violates unique constraint \"users_username_key\"")
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListAdvisors(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.IsAdvisor && u.IsActive {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (m *mockUserRepo) ListSymbiotes(_ context.Context, userID string) ([]model.User, error) {
	var result []model.User
	for _, id := range m.symbiotes[userID] {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) AddSymbiote(_ context.Context, userID, symbioteID string) error {
	for _, id := range m.symbiotes[userID] {
		if id == symbioteID {
			return pkgerrors.ErrDuplicateMembership
		}
	}
	m.symbiotes[userID] = append(m.symbiotes[userID], symbioteID)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses     map[int]*model.Course
	createCalls int
	getCalls    int
	listCalls   int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[int]*model.Course)}
}

func (m *mockCourseRepo) GetByClassNbr(_ context.Context, classNbr int) (*model.Course, error) {
	m.getCalls++
	if c, ok := m.courses[classNbr]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) CreateIfAbsent(_ context.Context, course *model.Course) (bool, error) {
	m.createCalls++
	if _, ok := m.courses[course.ClassNbr]; ok {
		return false, nil
	}
	cp := *course
	m.courses[course.ClassNbr] = &cp
	return true, nil
}

func (m *mockCourseRepo) ListByClassNbrs(_ context.Context, classNbrs []int) ([]model.Course, error) {
	m.listCalls++
	var result []model.Course
	for _, n := range classNbrs {
		if c, ok := m.courses[n]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) resolve(classNbrs []int) []model.Course {
	var result []model.Course
	for _, n := range classNbrs {
		if c, ok := m.courses[n]; ok {
			result = append(result, *c)
		}
	}
	return result
}

// ── Mock CartRepository ──

type mockCartRepo struct {
	carts   []*model.ShoppingCart // 按创建顺序
	members map[string][]int
	courses *mockCourseRepo
	seq     int
}

func newMockCartRepo(courses *mockCourseRepo) *mockCartRepo {
	return &mockCartRepo{members: make(map[string][]int), courses: courses}
}

func (m *mockCartRepo) Create(_ context.Context, cart *model.ShoppingCart) error {
	m.seq++
	cart.CartID = fmt.Sprintf("cart-%d", m.seq)
	m.carts = append(m.carts, cart)
	return nil
}

func (m *mockCartRepo) withCourses(c *model.ShoppingCart) *model.ShoppingCart {
	cp := *c
	cp.Courses = m.courses.resolve(m.members[c.CartID])
	return &cp
}

func (m *mockCartRepo) FirstByUserAndStrm(_ context.Context, userID string, strm int) (*model.ShoppingCart, error) {
	for _, c := range m.carts {
		if c.UserID == userID && c.Strm == strm {
			return m.withCourses(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCartRepo) FirstByUser(_ context.Context, userID string) (*model.ShoppingCart, error) {
	for _, c := range m.carts {
		if c.UserID == userID {
			return m.withCourses(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCartRepo) ListByUser(_ context.Context, userID string) ([]model.ShoppingCart, error) {
	var result []model.ShoppingCart
	for _, c := range m.carts {
		if c.UserID == userID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCartRepo) ListStrmsByUser(_ context.Context, userID string) ([]int, error) {
	seen := map[int]bool{}
	var result []int
	for _, c := range m.carts {
		if c.UserID == userID && !seen[c.Strm] {
			seen[c.Strm] = true
			result = append(result, c.Strm)
		}
	}
	sort.Ints(result)
	return result, nil
}

func (m *mockCartRepo) AddCourse(_ context.Context, cartID string, classNbr int) error {
	for _, n := range m.members[cartID] {
		if n == classNbr {
			return pkgerrors.ErrDuplicateMembership
		}
	}
	m.members[cartID] = append(m.members[cartID], classNbr)
	return nil
}

func (m *mockCartRepo) RemoveCourse(_ context.Context, cartID string, classNbr int) error {
	m.members[cartID] = removeInt(m.members[cartID], classNbr)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	order     []string
	members   map[string][]int
	users     *mockUserRepo
	courses   *mockCourseRepo
	seq       int
	addCalls  int
}

func newMockScheduleRepo(users *mockUserRepo, courses *mockCourseRepo) *mockScheduleRepo {
	return &mockScheduleRepo{
		schedules: make(map[string]*model.Schedule),
		members:   make(map[string][]int),
		users:     users,
		courses:   courses,
	}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sched-%d", m.seq)
	}
	if schedule.ApprovalStatus == "" {
		schedule.ApprovalStatus = model.StatusUnsubmitted
	}
	schedule.CreatedAt = time.Now()
	m.schedules[schedule.ScheduleID] = schedule
	m.order = append(m.order, schedule.ScheduleID)
	return nil
}

func (m *mockScheduleRepo) hydrate(s *model.Schedule) model.Schedule {
	cp := *s
	cp.Student = m.users.users[s.StudentID]
	cp.Approver = m.users.users[s.ApproverID]
	cp.Courses = m.courses.resolve(m.members[s.ScheduleID])
	return cp
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	h := m.hydrate(s)
	return &h, nil
}

func (m *mockScheduleRepo) list(match func(*model.Schedule) bool) []model.Schedule {
	var result []model.Schedule
	for _, id := range m.order {
		if s, ok := m.schedules[id]; ok && match(s) {
			result = append(result, m.hydrate(s))
		}
	}
	return result
}

func (m *mockScheduleRepo) ListByStudent(_ context.Context, studentID string) ([]model.Schedule, error) {
	return m.list(func(s *model.Schedule) bool { return s.StudentID == studentID }), nil
}

func (m *mockScheduleRepo) ListByApprover(_ context.Context, approverID string) ([]model.Schedule, error) {
	return m.list(func(s *model.Schedule) bool { return s.ApproverID == approverID }), nil
}

func (m *mockScheduleRepo) UpdateStatus(_ context.Context, id string, status model.ApprovalStatus) error {
	s, ok := m.schedules[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.ApprovalStatus = status
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	delete(m.members, id)
	return nil
}

func (m *mockScheduleRepo) AddCourse(_ context.Context, scheduleID string, classNbr int) error {
	m.addCalls++
	for _, n := range m.members[scheduleID] {
		if n == classNbr {
			return pkgerrors.ErrDuplicateMembership
		}
	}
	m.members[scheduleID] = append(m.members[scheduleID], classNbr)
	return nil
}

func (m *mockScheduleRepo) RemoveCourse(_ context.Context, scheduleID string, classNbr int) error {
	m.members[scheduleID] = removeInt(m.members[scheduleID], classNbr)
	return nil
}

// ── Mock NoticeSink ──

type mockNoticeSink struct {
	notices map[string][]redis.Notice
}

func newMockNoticeSink() *mockNoticeSink {
	return &mockNoticeSink{notices: make(map[string][]redis.Notice)}
}

func (m *mockNoticeSink) PushNotice(_ context.Context, userID string, n redis.Notice) error {
	m.notices[userID] = append(m.notices[userID], n)
	return nil
}

// ── Mock SectionFetcher ──

type mockFetcher struct {
	sections []sis.Section
	queries  []sis.Query
}

func (m *mockFetcher) SearchAll(_ context.Context, q sis.Query) []sis.Section {
	m.queries = append(m.queries, q)
	return m.sections
}

// ── 测试数据聚合 ──

type testRepos struct {
	users     *mockUserRepo
	courses   *mockCourseRepo
	carts     *mockCartRepo
	schedules *mockScheduleRepo
}

func newTestRepos() *testRepos {
	users := newMockUserRepo()
	courses := newMockCourseRepo()
	return &testRepos{
		users:     users,
		courses:   courses,
		carts:     newMockCartRepo(courses),
		schedules: newMockScheduleRepo(users, courses),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:     r.users,
		Course:   r.courses,
		Cart:     r.carts,
		Schedule: r.schedules,
	}
}

func (r *testRepos) addUser(id, username string, advisor bool) *model.User {
	u := &model.User{
		UserID:    id,
		Username:  username,
		IsAdvisor: advisor,
		IsActive:  true,
	}
	r.users.users[id] = u
	return u
}

func (r *testRepos) addCourse(c *model.Course) *model.Course {
	r.courses.courses[c.ClassNbr] = c
	return c
}

func removeInt(list []int, v int) []int {
	out := list[:0]
	for _, n := range list {
		if n != v {
			out = append(out, n)
		}
	}
	return out
}
