package core

import (
	"errors"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("  Q3 Strategy Call ", "", "2023-11-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "Q3 Strategy Call" {
		t.Errorf("title not trimmed: %q", task.Title)
	}
	if task.Category != CategoryMeeting {
		t.Errorf("default category = %q, want %q", task.Category, CategoryMeeting)
	}
	if task.Completed {
		t.Errorf("new task must not be completed")
	}

	if _, err := NewTask("   ", "Admin", ""); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := NewTask("x", "Admin", "11/05/2023"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	// categories outside the recommended set are accepted
	if _, err := NewTask("x", "Hiring", ""); err != nil {
		t.Errorf("free-form category rejected: %v", err)
	}
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("Acme", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != ClientLead {
		t.Errorf("default status = %q, want Lead", c.Status)
	}
	if _, err := NewClient("", "Acme Inc", "a@b.c", "Active"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestNewSale(t *testing.T) {
	s, err := NewSale("Acme", "Website", "1500", "2024-01-05", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != SaleInProgress {
		t.Errorf("default status = %q, want In Progress", s.Status)
	}
	if !s.Amount.Equal(MoneyFromInt(1500)) {
		t.Errorf("amount = %s", s.Amount)
	}

	tests := []struct {
		name   string
		client string
		amount string
		date   string
		want   error
	}{
		{"missing client", "", "10", "", ErrEmptyClientName},
		{"missing amount", "Acme", "", "", ErrInvalidAmount},
		{"negative amount", "Acme", "-5", "", ErrInvalidAmount},
		{"overflowing amount", "Acme", "1e400", "", ErrInvalidAmount},
		{"bad date", "Acme", "5", "2024-13-01", ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSale(tt.client, "svc", tt.amount, tt.date, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 42, 7, 99, time.UTC)
	got := Today(now)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Today = %v, want %v", got, want)
	}
}
