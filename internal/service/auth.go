package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mmeshcher/slowtravel-system/internal/latency"
	"github.com/mmeshcher/slowtravel-system/internal/model"
	"github.com/mmeshcher/slowtravel-system/internal/repository"
	"github.com/mmeshcher/slowtravel-system/internal/validation"
)

// Ошибки правил регистрации, в том порядке, в котором правила
// проверяются. Первая нарушенная даёт итоговую ошибку.
var (
	ErrFirstNameRequired = fmt.Errorf("%w: first name is required", repository.ErrValidation)
	ErrLastNameRequired  = fmt.Errorf("%w: last name is required", repository.ErrValidation)
	ErrEmailRequired     = fmt.Errorf("%w: email is required", repository.ErrValidation)
	ErrEmailMalformed    = fmt.Errorf("%w: email is malformed", repository.ErrValidation)
	ErrUsernameMissing   = fmt.Errorf("%w: username is required", repository.ErrValidation)
	ErrPasswordTooShort  = fmt.Errorf("%w: password must be at least 6 characters", repository.ErrValidation)
	ErrPasswordMismatch  = fmt.Errorf("%w: passwords do not match", repository.ErrValidation)
)

const minPasswordLen = 6

// UserStore описывает контракт слоя документов, используемый сервисом
// пользователей и сессии.
type UserStore interface {
	ReadUsers(ctx context.Context) ([]model.User, error)
	WriteUsers(ctx context.Context, users []model.User) error
	ReadSession(ctx context.Context) (*model.Session, error)
	WriteSession(ctx context.Context, username string) error
	ClearSession(ctx context.Context) error
}

// AuthService реализует операции над пользователями и единственной
// сессией. Пароли сравниваются открытым текстом — хранилище имитирует
// демо-бэкенд и сознательно не занимается криптографией.
type AuthService struct {
	mu    sync.Mutex
	store UserStore
}

// NewAuthService создаёт сервис пользователей и сессии.
func NewAuthService(store UserStore) *AuthService {
	return &AuthService{store: store}
}

// FindUserByUsername ищет пользователя без учёта регистра логина.
// Возвращает (nil, nil), если пользователь не найден. Чтение заодно
// запускает ленивую миграцию коллекции: сидовый пользователь
// восстанавливается до того, как результат уйдёт наружу.
func (s *AuthService) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return nil, nil
	}

	s.mu.Lock()
	users, err := s.store.ReadUsers(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if repository.SameUsername(users[i].Username, name) {
			u, err := latency.Clone(users[i])
			if err != nil {
				return nil, err
			}
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser добавляет нового пользователя в начало коллекции.
// Логин обязателен и уникален без учёта регистра.
func (s *AuthService) CreateUser(ctx context.Context, draft model.UserDraft) (*model.User, error) {
	user, err := s.createUser(ctx, draft)
	if err != nil {
		return nil, err
	}
	c, err := latency.Clone(user)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *AuthService) createUser(ctx context.Context, draft model.UserDraft) (model.User, error) {
	username := strings.TrimSpace(draft.Username)
	if username == "" {
		return model.User{}, repository.ErrUsernameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ReadUsers(ctx)
	if err != nil {
		return model.User{}, err
	}

	for i := range users {
		if repository.SameUsername(users[i].Username, username) {
			return model.User{}, repository.ErrUserExists
		}
	}

	user := model.User{
		Username:  username,
		Password:  draft.Password,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
		CreatedAt: time.Now(),
	}

	users = append([]model.User{user}, users...)
	if err := s.store.WriteUsers(ctx, users); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Login проверяет учётные данные и делает пользователя владельцем
// сессии. Возвращаемая запись не содержит пароля.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	found, err := s.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if found == nil || found.Password != password {
		return nil, repository.ErrBadCredentials
	}

	s.mu.Lock()
	err = s.store.WriteSession(ctx, found.Username)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	safe := found.Sanitized()
	return &safe, nil
}

// Register проверяет поля анкеты по фиксированному списку правил,
// создаёт пользователя и, как и Login, открывает сессию.
func (s *AuthService) Register(ctx context.Context, draft model.RegisterDraft) (*model.User, error) {
	firstName := strings.TrimSpace(draft.FirstName)
	lastName := strings.TrimSpace(draft.LastName)
	email := strings.TrimSpace(draft.Email)
	username := strings.TrimSpace(draft.Username)

	if firstName == "" {
		return nil, ErrFirstNameRequired
	}
	if lastName == "" {
		return nil, ErrLastNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrEmailMalformed
	}
	if username == "" {
		return nil, ErrUsernameMissing
	}
	if utf8.RuneCountInString(draft.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if draft.Password != draft.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	created, err := s.createUser(ctx, model.UserDraft{
		Username:  username,
		Password:  draft.Password,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	err = s.store.WriteSession(ctx, created.Username)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	safe := created.Sanitized()
	return &safe, nil
}

// Logout снимает сессию. Операция безусловна и идемпотентна.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ClearSession(ctx)
}

// CurrentUser разрешает сессию в полную запись пользователя.
// Возвращает (nil, nil), если сессии нет или её логин больше не
// существует. Пароль в возвращаемой записи стёрт.
func (s *AuthService) CurrentUser(ctx context.Context) (*model.User, error) {
	s.mu.Lock()
	sess, err := s.store.ReadSession(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	found, err := s.FindUserByUsername(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}

	safe := found.Sanitized()
	return &safe, nil
}
