package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmeshcher/slowtravel-system/internal/catalog"
	"github.com/mmeshcher/slowtravel-system/internal/model"
)

func (a *App) fail(err error) {
	fmt.Fprintf(a.out, "Ошибка: %v\n", err)
	a.logger.Debugw("command failed", "error", err)
}

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Fprintln(a.out, "Сначала войдите: login или register.")
	return false
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (a *App) login(ctx context.Context) {
	username, err := a.readLine("Логин")
	if err != nil {
		a.fail(err)
		return
	}
	password, err := a.readSecret("Пароль")
	if err != nil {
		a.fail(err)
		return
	}

	user, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.fail(err)
		return
	}
	a.user = user
	fmt.Fprintf(a.out, "Добро пожаловать, %s!\n", user.Username)
}

func (a *App) register(ctx context.Context) {
	draft := model.RegisterDraft{}
	var err error

	if draft.FirstName, err = a.readLine("Имя"); err != nil {
		a.fail(err)
		return
	}
	if draft.LastName, err = a.readLine("Фамилия"); err != nil {
		a.fail(err)
		return
	}
	if draft.Email, err = a.readLine("Email"); err != nil {
		a.fail(err)
		return
	}
	if draft.Username, err = a.readLine("Логин"); err != nil {
		a.fail(err)
		return
	}
	if draft.Password, err = a.readSecret("Пароль"); err != nil {
		a.fail(err)
		return
	}
	if draft.ConfirmPassword, err = a.readSecret("Пароль ещё раз"); err != nil {
		a.fail(err)
		return
	}

	user, err := a.auth.Register(ctx, draft)
	if err != nil {
		a.fail(err)
		return
	}
	a.user = user
	fmt.Fprintf(a.out, "Аккаунт создан. Добро пожаловать, %s!\n", user.Username)
}

func (a *App) logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		a.fail(err)
		return
	}
	a.user = nil
	fmt.Fprintln(a.out, "Вы вышли из аккаунта.")
}

func (a *App) whoami() {
	if a.user == nil {
		fmt.Fprintln(a.out, "Вы не авторизованы.")
		return
	}
	fmt.Fprintf(a.out, "%s (%s %s, %s)\n", a.user.Username, a.user.FirstName, a.user.LastName, a.user.Email)
}

func (a *App) showCatalog(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	saved := map[string]bool{}
	routes, err := a.trips.ListRoutes(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	for _, r := range routes {
		saved[r.ID] = true
	}

	fmt.Fprintln(a.out, "Каталог маршрутов:")
	for _, t := range catalog.Trips() {
		mark := "  "
		if saved[t.ID] {
			mark = "✓ "
		}
		fmt.Fprintf(a.out, "  %s%-8s %s — %s, %d дн.\n", mark, t.ID, t.Title, t.Region, int(t.Days))
	}
}

func (a *App) saveRoute(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	id := firstArg(args)
	if id == "" {
		fmt.Fprintln(a.out, "Укажите маршрут: save <id>")
		return
	}

	draft := catalog.Find(id)
	if draft == nil {
		fmt.Fprintf(a.out, "В каталоге нет маршрута %q.\n", id)
		return
	}

	route, err := a.trips.SaveRoute(ctx, *draft)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "В подборке: %s (%s)\n", route.Title, route.ID)
}

func (a *App) listRoutes(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	routes, err := a.trips.ListRoutes(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	if len(routes) == 0 {
		fmt.Fprintln(a.out, "Подборка пуста. Добавьте маршрут: save <id>.")
		return
	}
	fmt.Fprintf(a.out, "Маршрутов в подборке: %d\n", len(routes))
	for _, r := range routes {
		fmt.Fprintf(a.out, "  %-8s %s — %s, %d дн. [%s]\n", r.ID, r.Title, r.Region, r.Days, strings.Join(r.Tags, ", "))
	}
}

func (a *App) showRoute(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	id := firstArg(args)
	if id == "" {
		fmt.Fprintln(a.out, "Укажите маршрут: show <id>")
		return
	}

	route, err := a.trips.GetRoute(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}

	fmt.Fprintf(a.out, "%s (%s, %d дн., %s)\n", route.Title, route.Region, route.Days, route.Pace)
	if route.Summary != "" {
		fmt.Fprintln(a.out, route.Summary)
	}
	if route.Highlight != "" {
		fmt.Fprintf(a.out, "Главное: %s\n", route.Highlight)
	}
	if len(route.Tags) > 0 {
		fmt.Fprintf(a.out, "Теги: %s\n", strings.Join(route.Tags, ", "))
	}
	for i, stop := range route.Plan {
		fmt.Fprintf(a.out, "  %d. %s — %s\n", i+1, stop.Name, stop.Note)
	}
}

func (a *App) dropRoute(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	id := firstArg(args)
	if id == "" {
		fmt.Fprintln(a.out, "Укажите маршрут: drop <id>")
		return
	}
	if err := a.trips.DeleteRoute(ctx, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Маршрут %s удалён из подборки.\n", id)
}

func (a *App) listOrders(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	orders, err := a.trips.ListOrders(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "Планов пока нет. Создайте: order <id маршрута>.")
		return
	}
	fmt.Fprintf(a.out, "Планов поездок: %d\n", len(orders))
	for _, o := range orders {
		dates := "даты не выбраны"
		if o.StartDate != "" || o.EndDate != "" {
			dates = fmt.Sprintf("%s — %s", o.StartDate, o.EndDate)
		}
		fmt.Fprintf(a.out, "  %s  %s (%s)\n", o.ID, o.Route.Title, dates)
		if o.Notes != "" {
			fmt.Fprintf(a.out, "      %s\n", o.Notes)
		}
	}
}

func (a *App) showOrder(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	id := firstArg(args)
	if id == "" {
		fmt.Fprintln(a.out, "Укажите план: plan <id плана>")
		return
	}

	order, err := a.trips.GetOrder(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}

	fmt.Fprintf(a.out, "%s — %s (%s, %d дн.)\n", order.ID, order.Route.Title, order.Route.Region, order.Route.Days)
	if order.StartDate != "" || order.EndDate != "" {
		fmt.Fprintf(a.out, "Даты: %s — %s\n", order.StartDate, order.EndDate)
	}
	if order.Notes != "" {
		fmt.Fprintf(a.out, "Заметки: %s\n", order.Notes)
	}
}

func (a *App) createOrder(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	routeID := firstArg(args)
	if routeID == "" {
		fmt.Fprintln(a.out, "Укажите маршрут: order <id маршрута>")
		return
	}

	notes, err := a.readLine("Заметки к поездке")
	if err != nil {
		a.fail(err)
		return
	}
	startDate, err := a.readLine("Дата начала (ГГГГ-ММ-ДД, можно пусто)")
	if err != nil {
		a.fail(err)
		return
	}
	endDate, err := a.readLine("Дата конца (ГГГГ-ММ-ДД, можно пусто)")
	if err != nil {
		a.fail(err)
		return
	}

	order, err := a.trips.CreateOrder(ctx, model.OrderDraft{
		RouteID:   routeID,
		Notes:     notes,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "План создан: %s (%s)\n", order.Route.Title, order.ID)
}

// editOrder спрашивает новые значения полей; пустой ввод оставляет
// поле как есть, прочерк очищает его.
func (a *App) editOrder(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	id := firstArg(args)
	if id == "" {
		fmt.Fprintln(a.out, "Укажите план: edit <id плана>")
		return
	}

	patch := model.OrderPatch{}
	fields := []struct {
		label string
		dst   **string
	}{
		{"Заметки (пусто — не менять, «-» — очистить)", &patch.Notes},
		{"Дата начала (пусто — не менять, «-» — очистить)", &patch.StartDate},
		{"Дата конца (пусто — не менять, «-» — очистить)", &patch.EndDate},
	}
	for _, f := range fields {
		value, err := a.readLine(f.label)
		if err != nil {
			a.fail(err)
			return
		}
		switch value {
		case "":
		case "-":
			empty := ""
			*f.dst = &empty
		default:
			v := value
			*f.dst = &v
		}
	}

	order, err := a.trips.UpdateOrder(ctx, id, patch)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "План обновлён: %s\n", order.ID)
}

func (a *App) cancelOrder(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	id := firstArg(args)
	if id == "" {
		fmt.Fprintln(a.out, "Укажите план: cancel <id плана>")
		return
	}
	if err := a.trips.DeleteOrder(ctx, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "План %s отменён.\n", id)
}
