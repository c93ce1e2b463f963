package command

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/notification"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
	"github.com/fitsphere/fitsphere-api/internal/domain/user"
)

// memStore is an in-memory application.Store for command handler tests.
// WithinTx runs the callback against the same store: command tests exercise
// the workflow semantics, not transactional isolation.
type memStore struct {
	mu            sync.Mutex
	users         map[string]*user.User
	goals         map[string]*goal.Goal
	entries       map[string]*goal.Entry
	achievements  map[string]*achievement.Achievement
	notifications map[string]*notification.Notification
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[string]*user.User),
		goals:         make(map[string]*goal.Goal),
		entries:       make(map[string]*goal.Entry),
		achievements:  make(map[string]*achievement.Achievement),
		notifications: make(map[string]*notification.Notification),
	}
}

func (s *memStore) Users() user.Repository { return &memUserRepo{s} }
func (s *memStore) Goals() goal.Repository { return &memGoalRepo{s} }
func (s *memStore) Progress() goal.ProgressRepository { return &memProgressRepo{s} }
func (s *memStore) Achievements() achievement.Repository { return &memAchievementRepo{s} }
func (s *memStore) Notifications() notification.Repository { return &memNotificationRepo{s} }

func (s *memStore) WithinTx(_ context.Context, fn func(tx application.Store) error) error {
	return fn(s)
}

// ─────────────────────────────────────────────────────────────────────────────

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return shared.ErrUserAlreadyExists
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email user.Email) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = u
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────

type memGoalRepo struct{ s *memStore }

func (r *memGoalRepo) Create(_ context.Context, g *goal.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.goals[g.ID] = g
	return nil
}

func (r *memGoalRepo) GetByID(_ context.Context, id string) (*goal.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g, ok := r.s.goals[id]; ok {
		return g, nil
	}
	return nil, shared.ErrGoalNotFound
}

func (r *memGoalRepo) Update(_ context.Context, g *goal.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.goals[g.ID]; !ok {
		return shared.ErrGoalNotFound
	}
	r.s.goals[g.ID] = g
	return nil
}

func (r *memGoalRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.goals, id)
	for eid, e := range r.s.entries {
		if e.GoalID == id {
			delete(r.s.entries, eid)
		}
	}
	return nil
}

func (r *memGoalRepo) ListByOwner(_ context.Context, ownerID string, f goal.Filter, _ shared.Sort, _ shared.Page) ([]*goal.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*goal.Goal
	for _, g := range r.s.goals {
		if g.OwnerID == ownerID && matchesFilter(g, f) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGoalRepo) CountByOwner(ctx context.Context, ownerID string, f goal.Filter) (int, error) {
	goals, _ := r.ListByOwner(ctx, ownerID, f, shared.Sort{}, shared.Page{})
	return len(goals), nil
}

func (r *memGoalRepo) ListPublic(_ context.Context, f goal.Filter, _ shared.Sort, _ shared.Page) ([]*goal.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*goal.Goal
	for _, g := range r.s.goals {
		if g.IsPublic && matchesFilter(g, f) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGoalRepo) CountPublic(ctx context.Context, f goal.Filter) (int, error) {
	goals, _ := r.ListPublic(ctx, f, shared.Sort{}, shared.Page{})
	return len(goals), nil
}

func (r *memGoalRepo) ListCompletedByOwner(_ context.Context, ownerID string) ([]*goal.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*goal.Goal
	for _, g := range r.s.goals {
		if g.OwnerID == ownerID && g.Status == goal.StatusCompleted {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGoalRepo) ListWithDeadlineWithin(_ context.Context, now time.Time, lead time.Duration) ([]*goal.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	until := now.Add(lead)
	var out []*goal.Goal
	for _, g := range r.s.goals {
		if g.Status != goal.StatusInProgress || g.Deadline == nil {
			continue
		}
		if g.Deadline.After(now) && !g.Deadline.After(until) {
			out = append(out, g)
		}
	}
	return out, nil
}

func matchesFilter(g *goal.Goal, f goal.Filter) bool {
	if f.Status != "" && g.Status != f.Status {
		return false
	}
	if f.Category != "" && g.Category != f.Category {
		return false
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────

type memProgressRepo struct{ s *memStore }

func (r *memProgressRepo) Create(_ context.Context, e *goal.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.entries[e.ID] = e
	return nil
}

func (r *memProgressRepo) GetByID(_ context.Context, id string) (*goal.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.entries[id]; ok {
		return e, nil
	}
	return nil, shared.ErrProgressNotFound
}

func (r *memProgressRepo) Update(_ context.Context, e *goal.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.entries[e.ID]; !ok {
		return shared.ErrProgressNotFound
	}
	r.s.entries[e.ID] = e
	return nil
}

func (r *memProgressRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.entries, id)
	return nil
}

func (r *memProgressRepo) ListByGoal(_ context.Context, goalID string) ([]*goal.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*goal.Entry
	for _, e := range r.s.entries {
		if e.GoalID == goalID {
			out = append(out, e)
		}
	}
	goal.SortEntriesByDate(out)
	return out, nil
}

func (r *memProgressRepo) ListByGoalPaged(ctx context.Context, goalID string, _ shared.Sort, _ shared.Page) ([]*goal.Entry, error) {
	return r.ListByGoal(ctx, goalID)
}

func (r *memProgressRepo) CountByGoal(ctx context.Context, goalID string) (int, error) {
	entries, _ := r.ListByGoal(ctx, goalID)
	return len(entries), nil
}

func (r *memProgressRepo) Latest(ctx context.Context, goalID string) (*goal.Entry, error) {
	entries, _ := r.ListByGoal(ctx, goalID)
	return goal.LatestEntry(entries), nil
}

// ─────────────────────────────────────────────────────────────────────────────

type memAchievementRepo struct{ s *memStore }

func (r *memAchievementRepo) Mint(_ context.Context, a *achievement.Achievement) (achievement.MintOutcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.achievements {
		if existing.OwnerID == a.OwnerID && existing.Title == a.Title {
			return achievement.OutcomeAlreadyHeld, nil
		}
	}
	r.s.achievements[a.ID] = a
	return achievement.OutcomeMinted, nil
}

func (r *memAchievementRepo) GetByID(_ context.Context, id string) (*achievement.Achievement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.achievements[id]; ok {
		return a, nil
	}
	return nil, shared.ErrAchievementNotFound
}

func (r *memAchievementRepo) Exists(_ context.Context, ownerID, title string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.achievements {
		if a.OwnerID == ownerID && a.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAchievementRepo) ListByOwner(_ context.Context, ownerID string, _ shared.Sort, _ shared.Page) ([]*achievement.Achievement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*achievement.Achievement
	for _, a := range r.s.achievements {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAchievementRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	list, _ := r.ListByOwner(ctx, ownerID, shared.Sort{}, shared.Page{})
	return len(list), nil
}

func (r *memAchievementRepo) ListByGoal(_ context.Context, goalID string) ([]*achievement.Achievement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*achievement.Achievement
	for _, a := range r.s.achievements {
		if a.GoalID == goalID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAchievementRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.achievements, id)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────

type memNotificationRepo struct{ s *memStore }

func (r *memNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications[n.ID] = n
	return nil
}

func (r *memNotificationRepo) GetByID(_ context.Context, id string) (*notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n, ok := r.s.notifications[id]; ok {
		return n, nil
	}
	return nil, shared.ErrNotificationNotFound
}

func (r *memNotificationRepo) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return shared.ErrNotificationNotFound
	}
	n.MarkRead()
	return nil
}

func (r *memNotificationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.notifications, id)
	return nil
}

func (r *memNotificationRepo) ListByOwner(_ context.Context, ownerID string, f notification.Filter, _ shared.Page) ([]*notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*notification.Notification
	for _, n := range r.s.notifications {
		if n.OwnerID != ownerID {
			continue
		}
		if f.Type != "" && n.Type != f.Type {
			continue
		}
		if f.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *memNotificationRepo) CountByOwner(ctx context.Context, ownerID string, f notification.Filter) (int64, error) {
	list, _ := r.ListByOwner(ctx, ownerID, f, shared.Page{})
	return int64(len(list)), nil
}

func (r *memNotificationRepo) CountUnread(ctx context.Context, ownerID string) (int64, error) {
	return r.CountByOwner(ctx, ownerID, notification.Filter{UnreadOnly: true})
}

// ─────────────────────────────────────────────────────────────────────────────

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *capturePublisher) Publish(e shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) types() []shared.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
