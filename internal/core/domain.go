package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Task categories offered by the workbench form. Storage accepts any string.
const (
	CategoryMeeting  = "Meeting"
	CategoryDelivery = "Delivery"
	CategoryOutreach = "Outreach"
	CategoryAdmin    = "Admin"
	CategoryStrategy = "Strategy"
)

// Categories is the fixed display order used by the category distribution.
var Categories = []string{
	CategoryMeeting,
	CategoryDelivery,
	CategoryOutreach,
	CategoryAdmin,
	CategoryStrategy,
}

const (
	ClientLead    ClientStatus = "Lead"
	ClientActive  ClientStatus = "Active"
	ClientChurned ClientStatus = "Churned"
)

const (
	SaleInProgress SaleStatus = "In Progress"
	SaleClosedWon  SaleStatus = "Closed Won"
	SaleClosedLost SaleStatus = "Closed Lost"
)

type (
	ClientStatus string
	SaleStatus   string

	Task struct {
		ID        int64
		Title     string
		Category  string
		DueDate   string // YYYY-MM-DD, may be empty
		Completed bool
		CreatedAt time.Time
	}

	Client struct {
		ID        int64
		Name      string
		Company   string
		Email     string
		Status    ClientStatus
		CreatedAt time.Time
	}

	// Sale references its client by name only; nothing keeps the two in sync.
	Sale struct {
		ID         int64
		ClientName string
		Service    string
		Amount     Money
		Status     SaleStatus
		Date       string // YYYY-MM-DD, may be empty
	}

	// Financial is the legacy monthly revenue row. It is reseeded at startup
	// and only exposed through the JSON dashboard endpoint.
	Financial struct {
		ID         int64
		Month      string
		Revenue    Money
		OrderIndex int
	}
)

var (
	ErrNotFound       = errors.New("not found")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrInvalidInput   = errors.New("invalid input")

	ErrEmptyTitle      = fmt.Errorf("%w: empty title", ErrInvalidInput)
	ErrEmptyName       = fmt.Errorf("%w: empty name", ErrInvalidInput)
	ErrEmptyClientName = fmt.Errorf("%w: empty client name", ErrInvalidInput)
	ErrInvalidAmount   = fmt.Errorf("%w: invalid amount", ErrInvalidInput)
	ErrInvalidDate     = fmt.Errorf("%w: invalid date", ErrInvalidInput)
)

// ClientStatuses lists the statuses offered by the client form.
func ClientStatuses() []ClientStatus {
	return []ClientStatus{ClientLead, ClientActive, ClientChurned}
}

// SaleStatuses lists the statuses offered by the sale form.
func SaleStatuses() []SaleStatus {
	return []SaleStatus{SaleInProgress, SaleClosedWon, SaleClosedLost}
}

// NewTask trims the inputs and applies the default category.
func NewTask(title, category, dueDate string) (Task, error) {
	t := Task{
		Title:    strings.TrimSpace(title),
		Category: strings.TrimSpace(category),
		DueDate:  strings.TrimSpace(dueDate),
	}
	if t.Category == "" {
		t.Category = CategoryMeeting
	}
	return t, t.Validate()
}

func (t Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	return validateOptionalDate(t.DueDate)
}

// NewClient trims the inputs and defaults the status to Lead.
func NewClient(name, company, email, status string) (Client, error) {
	c := Client{
		Name:    strings.TrimSpace(name),
		Company: strings.TrimSpace(company),
		Email:   strings.TrimSpace(email),
		Status:  ClientStatus(strings.TrimSpace(status)),
	}
	if c.Status == "" {
		c.Status = ClientLead
	}
	return c, c.Validate()
}

func (c Client) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// NewSale parses the amount and defaults the status to In Progress.
func NewSale(clientName, service, amount, date, status string) (Sale, error) {
	m, err := ParseAmount(amount)
	if err != nil {
		return Sale{}, err
	}
	s := Sale{
		ClientName: strings.TrimSpace(clientName),
		Service:    strings.TrimSpace(service),
		Amount:     m,
		Status:     SaleStatus(strings.TrimSpace(status)),
		Date:       strings.TrimSpace(date),
	}
	if s.Status == "" {
		s.Status = SaleInProgress
	}
	return s, s.Validate()
}

func (s Sale) Validate() error {
	if s.ClientName == "" {
		return ErrEmptyClientName
	}
	if s.Amount.IsNegative() || s.Amount.Decimal().GreaterThan(MaxAmount) {
		return ErrInvalidAmount
	}
	return validateOptionalDate(s.Date)
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := ParseDate(s); err != nil {
		return ErrInvalidDate
	}
	return nil
}
