// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/daybreak-labs/daybreak/internal/auth"
	"github.com/daybreak-labs/daybreak/internal/config"
	"github.com/daybreak-labs/daybreak/internal/logging"
	"github.com/daybreak-labs/daybreak/internal/models"
	"github.com/daybreak-labs/daybreak/internal/store"
)

func init() {
	logging.Init(logging.Config{Level: "disabled", Output: io.Discard})
}

// fakeStore implements store.Store in memory with the same sentinel
// error contract as the SQLite implementation.
type fakeStore struct {
	mu      sync.Mutex
	lists   map[string]*models.List
	todos   map[string]*models.Todo
	users   map[string]*models.User
	invites map[string]*models.Invite

	// failWith, when set, makes every operation fail. Simulates a
	// broken database.
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists:   make(map[string]*models.List),
		todos:   make(map[string]*models.Todo),
		users:   make(map[string]*models.User),
		invites: make(map[string]*models.Invite),
	}
}

func (s *fakeStore) CreateList(_ context.Context, id, name string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	if id == "" {
		id = uuid.New().String()
	}
	if existing, ok := s.lists[id]; ok {
		return existing, nil
	}
	now := time.Now().UTC()
	list := &models.List{
		ID:             id,
		Name:           name,
		RolloverHour:   models.DefaultRolloverHour,
		RolloverMinute: models.DefaultRolloverMinute,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.lists[id] = list
	return list, nil
}

func (s *fakeStore) GetList(_ context.Context, id string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	list, ok := s.lists[id]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", id, store.ErrNotFound)
	}
	copied := *list
	return &copied, nil
}

func (s *fakeStore) GetListWithTodos(ctx context.Context, id string) (*models.List, error) {
	list, err := s.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	todos, err := s.TodosByList(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Todos = todos
	return list, nil
}

func (s *fakeStore) UpdateRollover(_ context.Context, id string, hour, minute int) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	list, ok := s.lists[id]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", id, store.ErrNotFound)
	}
	list.RolloverHour = hour
	list.RolloverMinute = minute
	list.UpdatedAt = time.Now().UTC()
	copied := *list
	return &copied, nil
}

func (s *fakeStore) DeleteList(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.lists[id]; !ok {
		return fmt.Errorf("list %s: %w", id, store.ErrNotFound)
	}
	delete(s.lists, id)
	for todoID, todo := range s.todos {
		if todo.ListID == id {
			delete(s.todos, todoID)
		}
	}
	return nil
}

func (s *fakeStore) ListsWithRollover(_ context.Context, hour, minute int) ([]*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var matched []*models.List
	for _, list := range s.lists {
		if list.RolloverHour == hour && list.RolloverMinute == minute {
			copied := *list
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (s *fakeStore) CreateTodo(_ context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.lists[todo.ListID]; !ok {
		return fmt.Errorf("list %s: %w", todo.ListID, store.ErrNotFound)
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	copied := *todo
	s.todos[todo.ID] = &copied
	return nil
}

func (s *fakeStore) GetTodo(_ context.Context, id string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	todo, ok := s.todos[id]
	if !ok {
		return nil, fmt.Errorf("todo %s: %w", id, store.ErrNotFound)
	}
	copied := *todo
	return &copied, nil
}

func (s *fakeStore) UpdateTodo(_ context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.todos[todo.ID]; !ok {
		return fmt.Errorf("todo %s: %w", todo.ID, store.ErrNotFound)
	}
	todo.UpdatedAt = time.Now().UTC()
	copied := *todo
	s.todos[todo.ID] = &copied
	return nil
}

func (s *fakeStore) DeleteTodo(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.todos[id]; !ok {
		return fmt.Errorf("todo %s: %w", id, store.ErrNotFound)
	}
	delete(s.todos, id)
	return nil
}

func (s *fakeStore) TodosByList(_ context.Context, listID string) ([]*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	todos := []*models.Todo{}
	for _, todo := range s.todos {
		if todo.ListID == listID {
			copied := *todo
			todos = append(todos, &copied)
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		if !todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].CreatedAt.Before(todos[j].CreatedAt)
		}
		return todos[i].ID < todos[j].ID
	})
	return todos, nil
}

func (s *fakeStore) PendingTodos(_ context.Context) ([]*models.PendingTodo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	pending := []*models.PendingTodo{}
	for _, todo := range s.todos {
		if todo.Completed {
			continue
		}
		list, ok := s.lists[todo.ListID]
		if !ok {
			continue
		}
		pending = append(pending, &models.PendingTodo{
			Todo:           *todo,
			RolloverHour:   list.RolloverHour,
			RolloverMinute: list.RolloverMinute,
		})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

func (s *fakeStore) ResetCompletedTodos(_ context.Context, listID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	var count int64
	for _, todo := range s.todos {
		if todo.ListID == listID && todo.Completed {
			todo.ClearCompletion()
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return fmt.Errorf("username %s: %w", user.Username, store.ErrConflict)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UTC()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, store.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (s *fakeStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, store.ErrNotFound)
}

func (s *fakeStore) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	users := []*models.User{}
	for _, user := range s.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *fakeStore) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	user, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, store.ErrNotFound)
	}
	user.IsAdmin = isAdmin
	return nil
}

func (s *fakeStore) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, store.ErrNotFound)
	}
	delete(s.users, id)
	return nil
}

func (s *fakeStore) AdminExists(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	for _, user := range s.users {
		if user.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateInvite(_ context.Context, invite *models.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if invite.ID == "" {
		invite.ID = uuid.New().String()
	}
	invite.CreatedAt = time.Now().UTC()
	copied := *invite
	s.invites[invite.ID] = &copied
	return nil
}

func (s *fakeStore) GetInviteByToken(_ context.Context, token string) (*models.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, invite := range s.invites {
		if invite.Token == token {
			copied := *invite
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("invite token: %w", store.ErrNotFound)
}

func (s *fakeStore) ListInvites(_ context.Context) ([]*models.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	invites := []*models.Invite{}
	for _, invite := range s.invites {
		copied := *invite
		invites = append(invites, &copied)
	}
	sort.Slice(invites, func(i, j int) bool { return invites[i].ID < invites[j].ID })
	return invites, nil
}

func (s *fakeStore) DeleteInvite(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.invites[id]; !ok {
		return fmt.Errorf("invite %s: %w", id, store.ErrNotFound)
	}
	delete(s.invites, id)
	return nil
}

func (s *fakeStore) ConsumeInvite(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	invite, ok := s.invites[id]
	if !ok {
		return fmt.Errorf("invite %s: %w", id, store.ErrNotFound)
	}
	if invite.CurrentUses >= invite.MaxUses {
		return fmt.Errorf("invite %s: %w", id, store.ErrInviteExhausted)
	}
	invite.CurrentUses++
	return nil
}

func (s *fakeStore) Ping(_ context.Context) error {
	if s.failWith != nil {
		return s.failWith
	}
	return nil
}

func (s *fakeStore) Close() error { return nil }

// broadcastEvent records one fan-out call.
type broadcastEvent struct {
	Type   string
	ListID string
	TodoID string
}

// fakeBroadcaster records events instead of fanning them out.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (b *fakeBroadcaster) BroadcastTodoAdded(todo *models.Todo) {
	b.record(broadcastEvent{Type: "todo-added", ListID: todo.ListID, TodoID: todo.ID})
}

func (b *fakeBroadcaster) BroadcastTodoUpdated(todo *models.Todo) {
	b.record(broadcastEvent{Type: "todo-updated", ListID: todo.ListID, TodoID: todo.ID})
}

func (b *fakeBroadcaster) BroadcastTodoDeleted(listID, todoID string) {
	b.record(broadcastEvent{Type: "todo-deleted", ListID: listID, TodoID: todoID})
}

func (b *fakeBroadcaster) BroadcastRollover(listID string, _ int64) {
	b.record(broadcastEvent{Type: "rollover", ListID: listID})
}

func (b *fakeBroadcaster) GetClientCount() int { return 0 }

func (b *fakeBroadcaster) record(ev broadcastEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

func (b *fakeBroadcaster) Events() []broadcastEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broadcastEvent(nil), b.events...)
}

// testEnv bundles the wired router with its fakes.
type testEnv struct {
	router http.Handler
	store  *fakeStore
	hub    *fakeBroadcaster
	jwt    *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Security: config.SecurityConfig{
			JWTSecret:         "test-secret",
			TokenTTL:          time.Hour,
			BcryptCost:        4,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"http://localhost:5173"},
		},
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	st := newFakeStore()
	hub := &fakeBroadcaster{}
	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)
	handler := NewHandler(st, hub, cfg, jwtManager, hasher)
	authMW := auth.NewMiddleware(jwtManager, st)
	chiMW := NewChiMiddleware(&cfg.Security)

	return &testEnv{
		router: NewRouter(handler, authMW, chiMW).Setup(),
		store:  st,
		hub:    hub,
		jwt:    jwtManager,
	}
}

// seedUser inserts a user directly and returns a token for them.
func (env *testEnv) seedUser(t *testing.T, username string, isAdmin bool) (*models.User, string) {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", IsAdmin: isAdmin}
	if err := env.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	token, err := env.jwt.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return user, token
}

// do runs one request through the router. A non-empty token becomes a
// Bearer header; body is marshaled to JSON when non-nil.
func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding envelope: %v (body %s)", err, rec.Body.String())
	}
	if resp.Status != "success" {
		t.Fatalf("status = %q, body %s", resp.Status, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			t.Fatalf("decoding data: %v", err)
		}
	}
}

// errorCode extracts the error code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding envelope: %v (body %s)", err, rec.Body.String())
	}
	if resp.Error == nil {
		t.Fatalf("no error payload in %s", rec.Body.String())
	}
	return resp.Error.Code
}
