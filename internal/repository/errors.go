package repository

import (
	"errors"
	"fmt"
)

// Категории ошибок слоя хранения. Конкретные ошибки оборачивают одну из
// категорий, поэтому вызывающий может сопоставлять и категорию, и
// конкретную причину через errors.Is.
var (
	// ErrInvalidInput — обязательное поле отсутствует или непригодно.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound — запись по идентификатору не найдена.
	ErrNotFound = errors.New("not found")
	// ErrConflict — попытка создать уже существующую запись.
	ErrConflict = errors.New("conflict")
	// ErrValidation — поле не прошло заявленное правило проверки.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized — учётные данные не подошли.
	ErrUnauthorized = errors.New("unauthorized")
)

// Ошибки маршрутов и планов поездок.
var (
	ErrRouteIDRequired = fmt.Errorf("%w: route id is required", ErrInvalidInput)
	ErrRouteNotFound   = fmt.Errorf("%w: route", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("%w: order", ErrNotFound)
)

// Ошибки пользователей и сессии.
var (
	ErrUsernameRequired = fmt.Errorf("%w: username is required", ErrInvalidInput)
	ErrUserExists       = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrBadCredentials   = fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
)
