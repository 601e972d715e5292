package view

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"furnipay/internal/deduction"
	"furnipay/internal/order"
	"furnipay/internal/salary"
	"furnipay/internal/worker"
)

// orderRow pairs an order with its derived payroll numbers for display.
type orderRow struct {
	order   *order.Order
	snap    salary.Snapshot
	netDebt int64
}

type OrdersModel struct {
	CommonModel
	orders     *order.Service
	workers    *worker.Service
	deductions *deduction.Service

	table   table.Model
	rows    []orderRow
	loading bool
	err     error
}

func NewOrdersModel(orders *order.Service, workers *worker.Service, deductions *deduction.Service) OrdersModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Price", Width: 11},
		{Title: "Bonus", Width: 10},
		{Title: "Advance", Width: 16},
		{Title: "Final", Width: 16},
		{Title: "Debt", Width: 10},
		{Title: "Status", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return OrdersModel{
		orders:     orders,
		workers:    workers,
		deductions: deductions,
		table:      t,
	}
}

func (m OrdersModel) Title() string { return "Orders" }
func (m OrdersModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m OrdersModel) Init() tea.Cmd {
	return m.loadOrdersCmd()
}

func (m OrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadOrdersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.rows
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadOrdersCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m OrdersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading orders...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *OrdersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		critical := ""
		if r.snap.CriticalDebt {
			critical = "!"
		}

		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.order.ID),
			r.order.Name,
			FormatAmount(r.order.Price),
			FormatAmount(r.snap.Bonus),
			fmt.Sprintf("%s/%s", FormatAmount(r.order.AdvancePaid), FormatAmount(r.snap.AdvanceAmount)),
			fmt.Sprintf("%s/%s", FormatAmount(r.order.FinalPaid), FormatAmount(r.snap.FinalAmount)),
			FormatAmount(r.netDebt) + critical,
			string(r.snap.Status),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadOrdersMsg struct {
	rows []orderRow
	err  error
}

func (m OrdersModel) loadOrdersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		orders, err := m.orders.List(ctx, order.ListFilter{})
		if err != nil {
			return loadOrdersMsg{err: err}
		}

		rows := make([]orderRow, 0, len(orders))

		for _, o := range orders {
			var settings *salary.WorkerSettings

			if o.WorkerID != nil {
				w, err := m.workers.Get(ctx, *o.WorkerID)
				if err != nil && !errors.Is(err, worker.ErrNotFound) {
					return loadOrdersMsg{err: err}
				}

				settings = w.Settings()
			}

			snap := salary.Compute(salary.Inputs{
				Price:            o.Price,
				MaterialCost:     o.MaterialCost,
				FixedBonus:       o.FixedBonus,
				AdvancePercent:   o.AdvancePercent,
				FinalPercent:     o.FinalPercent,
				AdvancePaid:      o.AdvancePaid,
				FinalPaid:        o.FinalPaid,
				DateToWork:       o.DateToWork,
				DateAdvancePaid:  o.DateAdvancePaid,
				DateInstallation: o.DateInstallation,
				DateFinalPaid:    o.DateFinalPaid,
				Worker:           settings,
			})

			unpaid, err := m.deductions.UnpaidTotal(ctx, o.ID)
			if err != nil {
				return loadOrdersMsg{err: err}
			}

			net, _ := salary.NetDebt(snap.CurrentDebt, unpaid)

			rows = append(rows, orderRow{order: o, snap: snap, netDebt: net})
		}

		return loadOrdersMsg{rows: rows}
	}
}
