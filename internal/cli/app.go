// Package cli реализует консольный интерфейс сервиса слоутревел —
// презентационный слой поверх сервисов хранилища. Консоль только
// вызывает операции и показывает их результаты или ошибки.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/slowtravel-system/internal/model"
)

// TripAPI — операции хранилища маршрутов и планов, используемые консолью.
type TripAPI interface {
	ListRoutes(ctx context.Context) ([]model.SavedRoute, error)
	GetRoute(ctx context.Context, id string) (*model.SavedRoute, error)
	SaveRoute(ctx context.Context, draft model.RouteDraft) (*model.SavedRoute, error)
	UpdateRoute(ctx context.Context, id string, patch model.RoutePatch) (*model.SavedRoute, error)
	DeleteRoute(ctx context.Context, id string) error
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	UpdateOrder(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// AuthAPI — операции аутентификации, используемые консолью.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	Register(ctx context.Context, draft model.RegisterDraft) (*model.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.User, error)
}

// App — состояние консольной сессии.
type App struct {
	trips  TripAPI
	auth   AuthAPI
	logger *zap.SugaredLogger
	reader *bufio.Reader
	out    io.Writer
	user   *model.User
}

// NewApp создаёт консольное приложение поверх сервисов хранилища.
func NewApp(trips TripAPI, auth AuthAPI, logger *zap.SugaredLogger) *App {
	return &App{
		trips:  trips,
		auth:   auth,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) prompt() string {
	if a.user != nil {
		return fmt.Sprintf("slowtravel [%s]> ", a.user.Username)
	}
	return "slowtravel> "
}

// Run восстанавливает сессию и крутит цикл чтения команд до exit,
// конца ввода или отмены контекста.
func (a *App) Run(ctx context.Context) error {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	a.user = user
	if a.user != nil {
		fmt.Fprintf(a.out, "С возвращением, %s!\n", a.user.Username)
	}
	fmt.Fprintln(a.out, "Введите help для списка команд.")

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(a.out, a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		if quit := a.dispatch(ctx, line); quit {
			return nil
		}
	}
}

// dispatch разбирает строку и выполняет команду. Возвращает true,
// когда пользователь попросил выйти.
func (a *App) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		a.printHelp()

	case "login":
		a.login(ctx)

	case "register":
		a.register(ctx)

	case "logout":
		a.logout(ctx)

	case "whoami":
		a.whoami()

	case "catalog":
		a.showCatalog(ctx)

	case "save":
		a.saveRoute(ctx, args)

	case "basket":
		a.listRoutes(ctx)

	case "show":
		a.showRoute(ctx, args)

	case "drop":
		a.dropRoute(ctx, args)

	case "plans":
		a.listOrders(ctx)

	case "plan":
		a.showOrder(ctx, args)

	case "order":
		a.createOrder(ctx, args)

	case "edit":
		a.editOrder(ctx, args)

	case "cancel":
		a.cancelOrder(ctx, args)

	case "exit", "quit":
		fmt.Fprintln(a.out, "До встречи!")
		return true

	default:
		fmt.Fprintf(a.out, "Неизвестная команда: %s\n", cmd)
	}
	return false
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Команды: catalog, save <id>, basket, show <id>, drop <id>,")
		fmt.Fprintln(a.out, "         plans, plan <id>, order <id маршрута>, edit <id плана>, cancel <id плана>,")
		fmt.Fprintln(a.out, "         whoami, logout, exit")
		return
	}
	fmt.Fprintln(a.out, "Команды: login, register, exit")
}
