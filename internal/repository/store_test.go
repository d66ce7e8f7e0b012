package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mmeshcher/slowtravel-system/internal/model"
	"github.com/mmeshcher/slowtravel-system/internal/storage"
)

func TestReadTripsSeedsOnFirstRead(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := NewStore(kv)

	doc, err := store.ReadTrips(ctx)
	if err != nil {
		t.Fatalf("ReadTrips: %v", err)
	}
	if doc.BasketRoutes == nil || len(doc.BasketRoutes) != 0 {
		t.Fatalf("seed document must have an empty routes collection, got %v", doc.BasketRoutes)
	}
	if doc.Orders == nil || len(doc.Orders) != 0 {
		t.Fatalf("seed document must have an empty orders collection, got %v", doc.Orders)
	}

	// Сид должен быть записан на носитель, а не только возвращён.
	if _, ok, _ := kv.Get(ctx, tripsKey); !ok {
		t.Fatalf("seed document was not persisted")
	}
}

func TestReadTripsRecoversCorruptDocument(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		raw        string
		wantRoutes int
		wantOrders int
	}{
		{
			name:       "not json at all",
			raw:        `{{{`,
			wantRoutes: 0,
			wantOrders: 0,
		},
		{
			name:       "routes corrupt orders intact",
			raw:        `{"basketRoutes": "oops", "orders": [{"id": "abc", "routeId": "fjord"}]}`,
			wantRoutes: 0,
			wantOrders: 1,
		},
		{
			name:       "orders missing routes intact",
			raw:        `{"basketRoutes": [{"id": "fjord", "title": "Фьорды"}]}`,
			wantRoutes: 1,
			wantOrders: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemory()
			if err := kv.Set(ctx, tripsKey, []byte(tt.raw)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			store := NewStore(kv)

			doc, err := store.ReadTrips(ctx)
			if err != nil {
				t.Fatalf("ReadTrips: %v", err)
			}
			if len(doc.BasketRoutes) != tt.wantRoutes {
				t.Fatalf("routes = %d, want %d", len(doc.BasketRoutes), tt.wantRoutes)
			}
			if len(doc.Orders) != tt.wantOrders {
				t.Fatalf("orders = %d, want %d", len(doc.Orders), tt.wantOrders)
			}

			// Поправленный документ перезаписывается, второе чтение
			// должно быть чистым.
			raw, ok, _ := kv.Get(ctx, tripsKey)
			if !ok {
				t.Fatalf("recovered document was not persisted")
			}
			var again model.TripDocument
			if err := json.Unmarshal(raw, &again); err != nil {
				t.Fatalf("persisted document is not valid json: %v", err)
			}
		})
	}
}

func TestReadUsersSeedsDefault(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())

	users, err := store.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("ReadUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("users = %d, want 1", len(users))
	}
	if users[0].Username != DefaultUsername || users[0].Password != DefaultPassword {
		t.Fatalf("unexpected seed user: %+v", users[0])
	}
}

func TestReadUsersRestoresDefault(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	// Сохранённая коллекция без сидового пользователя.
	raw, _ := json.Marshal([]model.User{{Username: "ana", Password: "secret1"}})
	if err := kv.Set(ctx, usersKey, raw); err != nil {
		t.Fatalf("Set: %v", err)
	}

	store := NewStore(kv)
	users, err := store.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("ReadUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}
	if users[0].Username != DefaultUsername {
		t.Fatalf("default user must come first, got %q", users[0].Username)
	}
	if users[1].Username != "ana" {
		t.Fatalf("stored user must survive, got %q", users[1].Username)
	}
}

func TestReadUsersCleansCollection(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	raw, _ := json.Marshal([]model.User{
		{Username: "  Eldar  ", Password: "123123"},
		{Username: "   "},
		{Username: "eldar", Password: "self-proclaimed"},
		{Username: " ana ", Password: "secret1"},
	})
	if err := kv.Set(ctx, usersKey, raw); err != nil {
		t.Fatalf("Set: %v", err)
	}

	store := NewStore(kv)
	users, err := store.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("ReadUsers: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("users = %v, want exactly Eldar and ana", users)
	}
	if users[0].Username != "Eldar" {
		t.Fatalf("username must be trimmed, got %q", users[0].Username)
	}
	if users[1].Username != "ana" {
		t.Fatalf("username must be trimmed, got %q", users[1].Username)
	}
}

func TestReadUsersKeepsReadableEntries(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	// Один элемент массива нечитаем, остальные должны уцелеть.
	raw := `[{"username": "ana", "password": "secret1"}, 42, {"username": "boris"}]`
	if err := kv.Set(ctx, usersKey, []byte(raw)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	store := NewStore(kv)
	users, err := store.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("ReadUsers: %v", err)
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	want := []string{DefaultUsername, "ana", "boris"}
	if len(names) != len(want) {
		t.Fatalf("users = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("users = %v, want %v", names, want)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())

	sess, err := store.ReadSession(ctx)
	if err != nil {
		t.Fatalf("ReadSession: %v", err)
	}
	if sess != nil {
		t.Fatalf("session must be absent initially, got %+v", sess)
	}

	if err := store.WriteSession(ctx, "  ana  "); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	sess, err = store.ReadSession(ctx)
	if err != nil {
		t.Fatalf("ReadSession: %v", err)
	}
	if sess == nil || sess.Username != "ana" {
		t.Fatalf("session = %+v, want ana", sess)
	}

	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("repeated ClearSession must be harmless: %v", err)
	}
	sess, err = store.ReadSession(ctx)
	if err != nil {
		t.Fatalf("ReadSession: %v", err)
	}
	if sess != nil {
		t.Fatalf("session must be gone, got %+v", sess)
	}
}

func TestWriteSessionRejectsEmptyUsername(t *testing.T) {
	store := NewStore(storage.NewMemory())
	if err := store.WriteSession(context.Background(), "   "); err == nil {
		t.Fatalf("WriteSession must reject a blank username")
	}
}

func TestReadSessionIgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	if err := kv.Set(ctx, sessionKey, []byte(`not json`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	store := NewStore(kv)
	sess, err := store.ReadSession(ctx)
	if err != nil {
		t.Fatalf("ReadSession: %v", err)
	}
	if sess != nil {
		t.Fatalf("garbage session must read as absent, got %+v", sess)
	}
}

func TestSameUsername(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Eldar", "eldar", true},
		{" ana ", "ANA", true},
		{"ana", "anna", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := SameUsername(tt.a, tt.b); got != tt.want {
			t.Fatalf("SameUsername(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
