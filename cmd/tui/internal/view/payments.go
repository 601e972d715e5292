package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"furnipay/internal/payment"
)

type paymentsState int

const (
	paymentsStateBrowse paymentsState = iota
	paymentsStateRecord
)

type PaymentsModel struct {
	CommonModel
	payments *payment.Service

	state    paymentsState
	table    table.Model
	rows     []*payment.Payment
	form     *huh.Form
	loading  bool
	err      error
	status   string

	// Form bindings
	formAmount   string
	formDate     string
	formOrderID  string
	formWorkerID string
	formNotes    string
}

func NewPaymentsModel(payments *payment.Service) PaymentsModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Received", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Order", Width: 8},
		{Title: "Worker", Width: 8},
		{Title: "Notes", Width: 36},
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

	return PaymentsModel{
		payments: payments,
		table:    t,
	}
}

func (m PaymentsModel) Title() string { return "Payments" }
func (m PaymentsModel) ShortHelp() string {
	if m.state == paymentsStateRecord {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | n: record | x: delete | R: redistribute | r: refresh"
}

func (m PaymentsModel) Init() tea.Cmd {
	return m.loadPaymentsCmd()
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPaymentsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.payments
		m.refreshTable()
		return m, nil

	case paymentActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}
		m.state = paymentsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadPaymentsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case paymentsStateBrowse:
		return m.updateBrowse(msg)
	case paymentsStateRecord:
		return m.updateRecord(msg)
	}

	return m, nil
}

func (m PaymentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadPaymentsCmd()
		case "n":
			return m.enterRecordMode()
		case "x":
			return m, m.deleteCmd()
		case "R":
			return m, m.redistributeCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PaymentsModel) enterRecordMode() (tea.Model, tea.Cmd) {
	m.formAmount = ""
	m.formDate = time.Now().Format("2006-01-02")
	m.formOrderID = ""
	m.formWorkerID = ""
	m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive amount")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date received").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("order_id").
				Title("Order ID (optional)").
				Value(&m.formOrderID).
				Validate(optionalIntField),

			huh.NewInput().
				Key("worker_id").
				Title("Worker ID (optional)").
				Value(&m.formWorkerID).
				Validate(optionalIntField),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = paymentsStateRecord
	m.table.Blur()
	return m, m.form.Init()
}

func optionalIntField(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return fmt.Errorf("enter a number or leave empty")
	}

	return nil
}

func (m PaymentsModel) updateRecord(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = paymentsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.recordCmd()
}

func (m PaymentsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading payments...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == paymentsStateRecord && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Record Payment\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PaymentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, p := range m.rows {
		orderID := ""
		if p.OrderID != nil {
			orderID = fmt.Sprintf("%d", *p.OrderID)
		}

		workerID := ""
		if p.WorkerID != nil {
			workerID = fmt.Sprintf("%d", *p.WorkerID)
		}

		rows = append(rows, table.Row{
			fmt.Sprintf("%d", p.ID),
			FormatDate(p.DateReceived),
			FormatAmount(p.Amount),
			orderID,
			workerID,
			p.Notes,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPaymentsMsg struct {
	payments []*payment.Payment
	err      error
}

func (m PaymentsModel) loadPaymentsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		payments, err := m.payments.List(ctx)
		return loadPaymentsMsg{payments: payments, err: err}
	}
}

type paymentActionMsg struct {
	status string
	err    error
}

func (m PaymentsModel) recordCmd() tea.Cmd {
	amount, _ := strconv.ParseFloat(strings.ReplaceAll(m.formAmount, ",", "."), 64)
	date, _ := time.Parse("2006-01-02", m.formDate)

	params := payment.CreateParams{
		Amount:       int64(amount*100 + 0.5),
		DateReceived: date,
		Notes:        m.formNotes,
	}

	if s := strings.TrimSpace(m.formOrderID); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			params.OrderID = &id
		}
	}

	if s := strings.TrimSpace(m.formWorkerID); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			params.WorkerID = &id
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.payments.Record(ctx, params)
		if err != nil {
			return paymentActionMsg{err: err}
		}

		return paymentActionMsg{
			status: fmt.Sprintf("Recorded %s, unallocated %s",
				FormatAmount(result.Payment.Amount), FormatAmount(result.Remaining)),
		}
	}
}

func (m PaymentsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	id := m.rows[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.payments.Delete(ctx, id); err != nil {
			return paymentActionMsg{err: err}
		}

		return paymentActionMsg{status: fmt.Sprintf("Deleted payment %d", id)}
	}
}

func (m PaymentsModel) redistributeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		allocs, err := m.payments.ReconcileAll(ctx)
		if err != nil {
			return paymentActionMsg{err: err}
		}

		return paymentActionMsg{status: fmt.Sprintf("Redistribution made %d allocations", len(allocs))}
	}
}
