// Package model содержит доменные сущности сервиса слоутревел.
package model

import "time"

// User представляет зарегистрированного пользователя.
// Пароль хранится открытым текстом: хранилище имитирует бэкенд
// демо-приложения и не претендует на криптографию.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sanitized возвращает копию пользователя со стёртым паролем.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// Session — единственная активная сессия пользователя.
type Session struct {
	Username string `json:"username"`
}

// PlanStop описывает одну остановку в плане маршрута.
type PlanStop struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// SavedRoute — маршрут, сохранённый пользователем из каталога в подборку.
// Идентификатор приходит извне (из каталога) и уникален внутри коллекции.
type SavedRoute struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Region      string     `json:"region"`
	Days        int        `json:"days"`
	Pace        string     `json:"pace"`
	Summary     string     `json:"summary"`
	Tags        []string   `json:"tags"`
	Highlight   string     `json:"highlight"`
	Description string     `json:"description"`
	Plan        []PlanStop `json:"plan"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// RouteSnapshot — витринные поля маршрута, вшиваемые в план поездки.
type RouteSnapshot struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Region    string   `json:"region"`
	Days      int      `json:"days"`
	Pace      string   `json:"pace"`
	Summary   string   `json:"summary"`
	Tags      []string `json:"tags"`
	Highlight string   `json:"highlight"`
}

// Snapshot делает снимок витринных полей маршрута на текущий момент.
// Снимок не разделяет память с исходным маршрутом.
func (r SavedRoute) Snapshot() RouteSnapshot {
	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)
	return RouteSnapshot{
		ID:        r.ID,
		Title:     r.Title,
		Region:    r.Region,
		Days:      r.Days,
		Pace:      r.Pace,
		Summary:   r.Summary,
		Tags:      tags,
		Highlight: r.Highlight,
	}
}

// Order — план поездки, ссылающийся на сохранённый маршрут.
// Поле Route заполняется один раз при создании и больше не обновляется,
// даже если исходный маршрут изменён или удалён.
type Order struct {
	ID        string        `json:"id"`
	RouteID   string        `json:"routeId"`
	Route     RouteSnapshot `json:"route"`
	Notes     string        `json:"notes"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// TripDocument — полный документ хранилища маршрутов и планов,
// читаемый и записываемый как единое целое.
type TripDocument struct {
	BasketRoutes []SavedRoute `json:"basketRoutes"`
	Orders       []Order      `json:"orders"`
}

// RouteDraft — входные данные операции сохранения маршрута.
type RouteDraft struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Region      string     `json:"region"`
	Days        FlexInt    `json:"days"`
	Pace        string     `json:"pace"`
	Summary     string     `json:"summary"`
	Tags        TagList    `json:"tags"`
	Highlight   string     `json:"highlight"`
	Description string     `json:"description"`
	Plan        []PlanStop `json:"plan"`
}

// RoutePatch — частичное обновление маршрута.
// Нулевой указатель означает «поле не трогать».
type RoutePatch struct {
	Title       *string     `json:"title,omitempty"`
	Region      *string     `json:"region,omitempty"`
	Days        *FlexInt    `json:"days,omitempty"`
	Pace        *string     `json:"pace,omitempty"`
	Summary     *string     `json:"summary,omitempty"`
	Tags        *TagList    `json:"tags,omitempty"`
	Highlight   *string     `json:"highlight,omitempty"`
	Description *string     `json:"description,omitempty"`
	Plan        *[]PlanStop `json:"plan,omitempty"`
}

// OrderDraft — входные данные операции создания плана поездки.
type OrderDraft struct {
	RouteID   string `json:"routeId"`
	Notes     string `json:"notes"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// OrderPatch — частичное обновление плана поездки. Менять можно только
// заметки и даты; маршрут и его снимок после создания неизменяемы.
type OrderPatch struct {
	Notes     *string `json:"notes,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

// UserDraft — входные данные операции создания пользователя.
type UserDraft struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// RegisterDraft — входные данные регистрации с подтверждением пароля.
type RegisterDraft struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
