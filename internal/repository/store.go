// Package repository содержит слой документов поверх долговременного
// носителя «ключ-значение».
//
// Каждый логический документ (маршруты и планы, пользователи, сессия)
// читается и записывается как единое целое. Отсутствующий или
// повреждённый документ никогда не приводит к ошибке у вызывающего:
// он молча замещается сидовым значением, и исправленная версия
// записывается обратно.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mmeshcher/slowtravel-system/internal/model"
)

// Ключи носителя. Версионный суффикс служит маркером совместимости
// формата документа.
const (
	tripsKey   = "slow-travel-api-v1"
	usersKey   = "slow-travel-users-v1"
	sessionKey = "slow-travel-session-v1"
)

// Учётные данные сидового пользователя. Он обязан существовать после
// любого чтения коллекции, даже если сохранённые данные его не знают.
const (
	DefaultUsername = "Eldar"
	DefaultPassword = "123123"
	defaultEmail    = "eldar@example.com"
)

// KV описывает контракт долговременного носителя, используемый слоем
// документов.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store читает и пишет документы хранилища.
type Store struct {
	kv KV
}

// NewStore создаёт слой документов поверх указанного носителя.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func seedTrips() *model.TripDocument {
	return &model.TripDocument{
		BasketRoutes: []model.SavedRoute{},
		Orders:       []model.Order{},
	}
}

// ReadTrips читает документ маршрутов и планов. При первом обращении
// записывает и возвращает сидовый документ.
func (s *Store) ReadTrips(ctx context.Context) (*model.TripDocument, error) {
	raw, ok, err := s.kv.Get(ctx, tripsKey)
	if err != nil {
		return nil, fmt.Errorf("read trips: %w", err)
	}

	if !ok {
		doc := seedTrips()
		if err := s.WriteTrips(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	doc, recovered := decodeTrips(raw)
	if recovered {
		if err := s.WriteTrips(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// decodeTrips восстанавливает документ пополево: каждая коллекция, не
// являющаяся корректным массивом записей, читается как пустая. Второй
// результат сообщает, что документ пришлось поправить и его нужно
// перезаписать.
func decodeTrips(raw []byte) (*model.TripDocument, bool) {
	var probe struct {
		BasketRoutes json.RawMessage `json:"basketRoutes"`
		Orders       json.RawMessage `json:"orders"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return seedTrips(), true
	}

	doc := seedTrips()
	recovered := false

	var routes []model.SavedRoute
	if len(probe.BasketRoutes) > 0 && json.Unmarshal(probe.BasketRoutes, &routes) == nil && routes != nil {
		doc.BasketRoutes = routes
	} else {
		recovered = true
	}

	var orders []model.Order
	if len(probe.Orders) > 0 && json.Unmarshal(probe.Orders, &orders) == nil && orders != nil {
		doc.Orders = orders
	} else {
		recovered = true
	}

	return doc, recovered
}

// WriteTrips записывает документ маршрутов и планов целиком.
func (s *Store) WriteTrips(ctx context.Context, doc *model.TripDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal trips: %w", err)
	}
	if err := s.kv.Set(ctx, tripsKey, raw); err != nil {
		return fmt.Errorf("write trips: %w", err)
	}
	return nil
}

// ReadUsers читает коллекцию пользователей, по пути доводя её до
// инварианта: нечитаемые записи и записи без логина отбрасываются,
// логины обрезаются, сидовый пользователь присутствует ровно один раз.
// Исправленная коллекция записывается обратно до возврата.
func (s *Store) ReadUsers(ctx context.Context) ([]model.User, error) {
	raw, ok, err := s.kv.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	var parsed []model.User
	if ok {
		parsed = decodeUsers(raw)
	}

	users, changed := ensureDefaultUser(parsed)
	if !ok || changed {
		if err := s.WriteUsers(ctx, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func decodeUsers(raw []byte) []model.User {
	var users []model.User
	if err := json.Unmarshal(raw, &users); err == nil {
		return users
	}

	// Повреждённую коллекцию разбираем поэлементно, сохраняя всё,
	// что ещё читается.
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	res := make([]model.User, 0, len(items))
	for _, item := range items {
		var u model.User
		if json.Unmarshal(item, &u) == nil {
			res = append(res, u)
		}
	}
	return res
}

func ensureDefaultUser(users []model.User) ([]model.User, bool) {
	changed := false
	hasDefault := false

	cleaned := make([]model.User, 0, len(users))
	for _, u := range users {
		trimmed := strings.TrimSpace(u.Username)
		if trimmed == "" {
			changed = true
			continue
		}
		if trimmed != u.Username {
			u.Username = trimmed
			changed = true
		}
		if SameUsername(u.Username, DefaultUsername) {
			if hasDefault {
				changed = true
				continue
			}
			hasDefault = true
		}
		cleaned = append(cleaned, u)
	}

	if !hasDefault {
		cleaned = append([]model.User{defaultUser()}, cleaned...)
		changed = true
	}
	return cleaned, changed
}

func defaultUser() model.User {
	return model.User{
		Username:  DefaultUsername,
		Password:  DefaultPassword,
		FirstName: DefaultUsername,
		Email:     defaultEmail,
		CreatedAt: time.Now(),
	}
}

// SameUsername сравнивает логины без учёта регистра и крайних пробелов.
func SameUsername(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// WriteUsers записывает коллекцию пользователей целиком.
func (s *Store) WriteUsers(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := s.kv.Set(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}

// ReadSession возвращает активную сессию или nil, если её нет.
// Нечитаемая запись сессии равносильна её отсутствию.
func (s *Store) ReadSession(ctx context.Context) (*model.Session, error) {
	raw, ok, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, nil
	}
	sess.Username = strings.TrimSpace(sess.Username)
	if sess.Username == "" {
		return nil, nil
	}
	return &sess, nil
}

// WriteSession делает username владельцем единственной сессии.
func (s *Store) WriteSession(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}

	raw, err := json.Marshal(model.Session{Username: username})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearSession снимает сессию. Повторный вызов безвреден.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
