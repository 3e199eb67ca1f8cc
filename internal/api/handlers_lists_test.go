// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package api

import (
	"net/http"
	"testing"

	"github.com/daybreak-labs/daybreak/internal/models"
)

func TestCreateList(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	rec := env.do(t, http.MethodPost, "/api/lists", token, map[string]interface{}{
		"name": "groceries",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var list models.List
	decodeData(t, rec, &list)
	if list.ID == "" {
		t.Error("list ID not assigned")
	}
	if list.Name != "groceries" {
		t.Errorf("name = %q, want groceries", list.Name)
	}
	if list.RolloverHour != models.DefaultRolloverHour || list.RolloverMinute != models.DefaultRolloverMinute {
		t.Errorf("rollover = %02d:%02d, want default %02d:%02d",
			list.RolloverHour, list.RolloverMinute,
			models.DefaultRolloverHour, models.DefaultRolloverMinute)
	}
	if list.Todos == nil {
		t.Error("todos should be an empty array, not null")
	}
}

func TestCreateList_CreateOrGet(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	body := map[string]interface{}{"id": "shared-board", "name": "first name"}
	rec := env.do(t, http.MethodPost, "/api/lists", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", rec.Code)
	}

	// Same ID again, different name: the existing list wins.
	rec = env.do(t, http.MethodPost, "/api/lists", token, map[string]interface{}{
		"id": "shared-board", "name": "second name",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second create: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var list models.List
	decodeData(t, rec, &list)
	if list.Name != "first name" {
		t.Errorf("name = %q, want the original list back", list.Name)
	}
}

func TestCreateList_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing name", map[string]interface{}{"id": "x"}},
		{"empty name", map[string]interface{}{"name": ""}},
		{"empty body", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/lists", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if code := errorCode(t, rec); code != models.ErrCodeValidation {
				t.Errorf("error code = %q, want %q", code, models.ErrCodeValidation)
			}
		})
	}
}

func TestGetList(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	env.do(t, http.MethodPost, "/api/lists", token, map[string]interface{}{
		"id": "l1", "name": "errands",
	})
	env.do(t, http.MethodPost, "/api/lists/l1/todos", token, map[string]interface{}{
		"title": "post office", "deadlineHour": 9, "deadlineMinute": 30,
	})
	env.do(t, http.MethodPost, "/api/lists/l1/todos", token, map[string]interface{}{
		"title": "bank", "deadlineHour": 16, "deadlineMinute": 0,
	})

	rec := env.do(t, http.MethodGet, "/api/lists/l1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var list models.List
	decodeData(t, rec, &list)
	if len(list.Todos) != 2 {
		t.Fatalf("len(todos) = %d, want 2", len(list.Todos))
	}
	// Default order is insertion order.
	if list.Todos[0].Title != "post office" || list.Todos[1].Title != "bank" {
		t.Errorf("insertion order broken: %q, %q", list.Todos[0].Title, list.Todos[1].Title)
	}
}

func TestGetList_DeadlineOrder(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	env.do(t, http.MethodPost, "/api/lists", token, map[string]interface{}{
		"id": "l1", "name": "errands",
	})
	// Inserted late-deadline first so ranking has to reorder.
	env.do(t, http.MethodPost, "/api/lists/l1/todos", token, map[string]interface{}{
		"title": "evening", "deadlineHour": 22, "deadlineMinute": 0,
	})
	env.do(t, http.MethodPost, "/api/lists/l1/todos", token, map[string]interface{}{
		"title": "morning", "deadlineHour": 6, "deadlineMinute": 0,
	})

	rec := env.do(t, http.MethodGet, "/api/lists/l1?order=deadline", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var list models.List
	decodeData(t, rec, &list)
	if len(list.Todos) != 2 {
		t.Fatalf("len(todos) = %d, want 2", len(list.Todos))
	}
	// Both pending and in the same app-day segment, so earlier
	// deadline ranks first.
	if list.Todos[0].Title != "morning" {
		t.Errorf("first todo = %q, want morning", list.Todos[0].Title)
	}
}

func TestGetList_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	rec := env.do(t, http.MethodGet, "/api/lists/nope", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != models.ErrCodeNotFound {
		t.Errorf("error code = %q, want %q", code, models.ErrCodeNotFound)
	}
}

func TestRolloverConfig(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	env.do(t, http.MethodPost, "/api/lists", token, map[string]interface{}{
		"id": "l1", "name": "errands",
	})

	rec := env.do(t, http.MethodGet, "/api/lists/l1/rollover", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get rollover: status = %d", rec.Code)
	}
	var got models.RolloverResponse
	decodeData(t, rec, &got)
	if got.RolloverHour != models.DefaultRolloverHour {
		t.Errorf("rolloverHour = %d, want default", got.RolloverHour)
	}

	rec = env.do(t, http.MethodPut, "/api/lists/l1/rollover", token, map[string]interface{}{
		"rolloverHour": 0, "rolloverMinute": 30,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("put rollover: status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeData(t, rec, &got)
	if got.RolloverHour != 0 || got.RolloverMinute != 30 {
		t.Errorf("rollover = %02d:%02d, want 00:30", got.RolloverHour, got.RolloverMinute)
	}
}

func TestUpdateRollover_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	env.do(t, http.MethodPost, "/api/lists", token, map[string]interface{}{
		"id": "l1", "name": "errands",
	})

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"hour too large", map[string]interface{}{"rolloverHour": 24, "rolloverMinute": 0}},
		{"minute too large", map[string]interface{}{"rolloverHour": 4, "rolloverMinute": 60}},
		{"negative hour", map[string]interface{}{"rolloverHour": -1, "rolloverMinute": 0}},
		{"missing minute", map[string]interface{}{"rolloverHour": 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPut, "/api/lists/l1/rollover", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateRollover_MidnightIsValid(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	env.do(t, http.MethodPost, "/api/lists", token, map[string]interface{}{
		"id": "l1", "name": "errands",
	})

	// 00:00 exercises the pointer fields: zero must not read as absent.
	rec := env.do(t, http.MethodPut, "/api/lists/l1/rollover", token, map[string]interface{}{
		"rolloverHour": 0, "rolloverMinute": 0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteList_Cascades(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "alice", false)

	env.do(t, http.MethodPost, "/api/lists", token, map[string]interface{}{
		"id": "l1", "name": "errands",
	})
	rec := env.do(t, http.MethodPost, "/api/lists/l1/todos", token, map[string]interface{}{
		"title": "x", "deadlineHour": 9, "deadlineMinute": 0,
	})
	var todo models.Todo
	decodeData(t, rec, &todo)

	rec = env.do(t, http.MethodDelete, "/api/lists/l1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}

	if rec = env.do(t, http.MethodGet, "/api/lists/l1", token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("list still reachable: status = %d", rec.Code)
	}
	// The todo went with it.
	rec = env.do(t, http.MethodPatch, "/api/todos/"+todo.ID, token, map[string]interface{}{
		"title": "y",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("orphaned todo survived: status = %d", rec.Code)
	}
}

func TestLists_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/lists"},
		{http.MethodGet, "/api/lists/l1"},
		{http.MethodDelete, "/api/lists/l1"},
		{http.MethodGet, "/api/lists/l1/rollover"},
		{http.MethodPut, "/api/lists/l1/rollover"},
		{http.MethodPost, "/api/lists/l1/todos"},
	}
	for _, p := range paths {
		rec := env.do(t, p.method, p.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}
