// Package service реализует бизнес-логику хранилища слоутревел:
// операции над подборкой маршрутов, планами поездок, пользователями и
// сессией. Сервисы читают и пишут документы целиком через слой
// репозитория, нормализуют вход и отдают наружу только глубокие копии.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmeshcher/slowtravel-system/internal/latency"
	"github.com/mmeshcher/slowtravel-system/internal/model"
	"github.com/mmeshcher/slowtravel-system/internal/repository"
	"github.com/mmeshcher/slowtravel-system/internal/validation"
)

// Название маршрута по умолчанию, когда каталог не дал ничего лучше.
const untitledRoute = "Маршрут без названия"

// TripStore описывает контракт слоя документов, используемый сервисом
// маршрутов и планов.
type TripStore interface {
	ReadTrips(ctx context.Context) (*model.TripDocument, error)
	WriteTrips(ctx context.Context, doc *model.TripDocument) error
}

// TripService реализует CRUD-операции над двумя коллекциями документа:
// сохранёнными маршрутами и планами поездок.
//
// Мьютекс сериализует каждый цикл чтение-изменение-запись, поэтому
// параллельные мутации не теряют записи. Имитация задержки выполняется
// уже вне критической секции.
type TripService struct {
	mu    sync.Mutex
	store TripStore
	sim   *latency.Simulator
}

// NewTripService создаёт сервис маршрутов и планов.
func NewTripService(store TripStore, sim *latency.Simulator) *TripService {
	return &TripService{store: store, sim: sim}
}

// read читает документ под мьютексом.
func (s *TripService) read(ctx context.Context) (*model.TripDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ReadTrips(ctx)
}

// mutate атомарно выполняет цикл чтение-изменение-запись. Функция fn
// возвращает признак того, что документ изменён и его нужно записать.
func (s *TripService) mutate(ctx context.Context, fn func(doc *model.TripDocument) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.ReadTrips(ctx)
	if err != nil {
		return err
	}

	write, err := fn(doc)
	if err != nil {
		return err
	}
	if !write {
		return nil
	}
	return s.store.WriteTrips(ctx, doc)
}

func findRoute(doc *model.TripDocument, id string) *model.SavedRoute {
	for i := range doc.BasketRoutes {
		if doc.BasketRoutes[i].ID == id {
			return &doc.BasketRoutes[i]
		}
	}
	return nil
}

func findOrder(doc *model.TripDocument, id string) *model.Order {
	for i := range doc.Orders {
		if doc.Orders[i].ID == id {
			return &doc.Orders[i]
		}
	}
	return nil
}

func deliverRoute(sim *latency.Simulator, r model.SavedRoute) (*model.SavedRoute, error) {
	c, err := latency.Deliver(sim, r)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func deliverOrder(sim *latency.Simulator, o model.Order) (*model.Order, error) {
	c, err := latency.Deliver(sim, o)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListRoutes возвращает копию всей подборки, новые записи первыми.
func (s *TripService) ListRoutes(ctx context.Context) ([]model.SavedRoute, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return latency.Deliver(s.sim, doc.BasketRoutes)
}

// GetRoute возвращает маршрут по идентификатору.
func (s *TripService) GetRoute(ctx context.Context, id string) (*model.SavedRoute, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	route := findRoute(doc, id)
	if route == nil {
		return nil, repository.ErrRouteNotFound
	}
	return deliverRoute(s.sim, *route)
}

// SaveRoute сохраняет маршрут из каталога в подборку. Сохранение
// идемпотентно по идентификатору: если маршрут уже есть, возвращается
// существующая запись без изменений и без дубликата.
func (s *TripService) SaveRoute(ctx context.Context, draft model.RouteDraft) (*model.SavedRoute, error) {
	id := strings.TrimSpace(draft.ID)
	if id == "" {
		return nil, repository.ErrRouteIDRequired
	}

	var saved model.SavedRoute
	err := s.mutate(ctx, func(doc *model.TripDocument) (bool, error) {
		if existing := findRoute(doc, id); existing != nil {
			saved = *existing
			return false, nil
		}

		now := time.Now()
		title := strings.TrimSpace(draft.Title)
		if title == "" {
			title = untitledRoute
		}
		saved = model.SavedRoute{
			ID:          id,
			Title:       title,
			Region:      strings.TrimSpace(draft.Region),
			Days:        int(draft.Days),
			Pace:        strings.TrimSpace(draft.Pace),
			Summary:     strings.TrimSpace(draft.Summary),
			Tags:        validation.CleanTags(draft.Tags),
			Highlight:   strings.TrimSpace(draft.Highlight),
			Description: strings.TrimSpace(draft.Description),
			Plan:        validation.CleanPlan(draft.Plan),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		doc.BasketRoutes = append([]model.SavedRoute{saved}, doc.BasketRoutes...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return deliverRoute(s.sim, saved)
}

// UpdateRoute применяет частичное обновление к маршруту. Пропущенные
// поля не трогаются, применённые проходят ту же нормализацию, что и
// при сохранении. UpdatedAt сдвигается всегда, CreatedAt неизменяем.
func (s *TripService) UpdateRoute(ctx context.Context, id string, patch model.RoutePatch) (*model.SavedRoute, error) {
	var updated model.SavedRoute
	err := s.mutate(ctx, func(doc *model.TripDocument) (bool, error) {
		route := findRoute(doc, id)
		if route == nil {
			return false, repository.ErrRouteNotFound
		}
		applyRoutePatch(route, patch)
		route.UpdatedAt = time.Now()
		updated = *route
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return deliverRoute(s.sim, updated)
}

func applyRoutePatch(r *model.SavedRoute, p model.RoutePatch) {
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Region != nil {
		r.Region = strings.TrimSpace(*p.Region)
	}
	if p.Days != nil {
		r.Days = int(*p.Days)
	}
	if p.Pace != nil {
		r.Pace = strings.TrimSpace(*p.Pace)
	}
	if p.Summary != nil {
		r.Summary = strings.TrimSpace(*p.Summary)
	}
	if p.Tags != nil {
		r.Tags = validation.CleanTags(*p.Tags)
	}
	if p.Highlight != nil {
		r.Highlight = strings.TrimSpace(*p.Highlight)
	}
	if p.Description != nil {
		r.Description = strings.TrimSpace(*p.Description)
	}
	if p.Plan != nil {
		r.Plan = validation.CleanPlan(*p.Plan)
	}
}

// DeleteRoute удаляет маршрут из подборки. Удаление идемпотентно:
// отсутствующий идентификатор не считается ошибкой. Планы поездок,
// ссылающиеся на маршрут, не затрагиваются.
func (s *TripService) DeleteRoute(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(doc *model.TripDocument) (bool, error) {
		filtered := make([]model.SavedRoute, 0, len(doc.BasketRoutes))
		for _, r := range doc.BasketRoutes {
			if r.ID != id {
				filtered = append(filtered, r)
			}
		}
		doc.BasketRoutes = filtered
		return true, nil
	})
	if err != nil {
		return err
	}
	s.sim.Wait()
	return nil
}

// ListOrders возвращает копию всех планов поездок, новые первыми.
func (s *TripService) ListOrders(ctx context.Context) ([]model.Order, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return latency.Deliver(s.sim, doc.Orders)
}

// GetOrder возвращает план поездки по идентификатору.
func (s *TripService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	order := findOrder(doc, id)
	if order == nil {
		return nil, repository.ErrOrderNotFound
	}
	return deliverOrder(s.sim, *order)
}

// CreateOrder создаёт план поездки по сохранённому маршруту. Витринные
// поля маршрута вшиваются в план снимком на момент создания и больше
// не обновляются, даже если маршрут изменится или будет удалён.
func (s *TripService) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	routeID := strings.TrimSpace(draft.RouteID)
	if routeID == "" {
		return nil, repository.ErrRouteIDRequired
	}

	var created model.Order
	err := s.mutate(ctx, func(doc *model.TripDocument) (bool, error) {
		route := findRoute(doc, routeID)
		if route == nil {
			return false, repository.ErrRouteNotFound
		}

		now := time.Now()
		created = model.Order{
			ID:        uuid.NewString(),
			RouteID:   routeID,
			Route:     route.Snapshot(),
			Notes:     strings.TrimSpace(draft.Notes),
			StartDate: draft.StartDate,
			EndDate:   draft.EndDate,
			CreatedAt: now,
			UpdatedAt: now,
		}
		doc.Orders = append([]model.Order{created}, doc.Orders...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return deliverOrder(s.sim, created)
}

// UpdateOrder применяет частичное обновление к плану поездки. Менять
// можно только заметки и даты; RouteID и снимок маршрута неизменяемы.
func (s *TripService) UpdateOrder(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	var updated model.Order
	err := s.mutate(ctx, func(doc *model.TripDocument) (bool, error) {
		order := findOrder(doc, id)
		if order == nil {
			return false, repository.ErrOrderNotFound
		}
		if patch.Notes != nil {
			order.Notes = strings.TrimSpace(*patch.Notes)
		}
		if patch.StartDate != nil {
			order.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			order.EndDate = *patch.EndDate
		}
		order.UpdatedAt = time.Now()
		updated = *order
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return deliverOrder(s.sim, updated)
}

// DeleteOrder удаляет план поездки. Удаление идемпотентно и не зависит
// от судьбы маршрута, на который план ссылался.
func (s *TripService) DeleteOrder(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(doc *model.TripDocument) (bool, error) {
		filtered := make([]model.Order, 0, len(doc.Orders))
		for _, o := range doc.Orders {
			if o.ID != id {
				filtered = append(filtered, o)
			}
		}
		doc.Orders = filtered
		return true, nil
	})
	if err != nil {
		return err
	}
	s.sim.Wait()
	return nil
}
