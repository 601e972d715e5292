package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"furnipay/cmd/tui/internal/view"
	"furnipay/internal/config"
	"furnipay/internal/database"
	"furnipay/internal/deduction"
	deductionStore "furnipay/internal/deduction/store"
	"furnipay/internal/order"
	orderStore "furnipay/internal/order/store"
	"furnipay/internal/payment"
	paymentStore "furnipay/internal/payment/store"
	"furnipay/internal/worker"
	workerStore "furnipay/internal/worker/store"
)

type model struct {
	orderService     *order.Service
	paymentService   *payment.Service
	workerService    *worker.Service
	deductionService *deduction.Service

	currentView View

	ordersView   view.OrdersModel
	paymentsView view.PaymentsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewOrders   View = 1
	ViewPayments View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	workerSvc := worker.NewService(workerStore.New(db))
	orderSvc := order.NewService(orderStore.New(db), workerSvc)
	paymentSvc := payment.NewService(paymentStore.New(db))
	deductionSvc := deduction.NewService(deductionStore.New(db))

	return model{
		orderService:     orderSvc,
		paymentService:   paymentSvc,
		workerService:    workerSvc,
		deductionService: deductionSvc,
		currentView:      ViewMenu,
		ordersView:       view.NewOrdersModel(orderSvc, workerSvc, deductionSvc),
		paymentsView:     view.NewPaymentsModel(paymentSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOrders
				m.ordersView = view.NewOrdersModel(m.orderService, m.workerService, m.deductionService)

				return m, m.ordersView.Init()
			case "2":
				m.currentView = ViewPayments
				m.paymentsView = view.NewPaymentsModel(m.paymentService)

				return m, m.paymentsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOrders:
		var newModel tea.Model
		newModel, cmd = m.ordersView.Update(msg)
		m.ordersView = newModel.(view.OrdersModel)
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.PaymentsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Furnipay TUI\n\n" +
				"1. Orders\n" +
				"2. Payments\n\n" +
				"q. Quit",
		)
	case ViewOrders:
		return m.ordersView.View()
	case ViewPayments:
		return m.paymentsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
