package transport

import (
	"math"
	"testing"
)

func TestBalance(t *testing.T) {
	tests := []struct {
		name                 string
		fare, discount, paid float64
		want                 float64
	}{
		{name: "typical", fare: 50000, discount: 10000, paid: 25000, want: 15000},
		{name: "fully paid", fare: 50000, discount: 10000, paid: 45000, want: 0},
		{name: "overpaid clamps to zero", fare: 50000, discount: 10000, paid: 60000, want: 0},
		{name: "all zero", want: 0},
		{name: "discount exceeds fare", fare: 100, discount: 500, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Balance(tt.fare, tt.discount, tt.paid)
			if got != tt.want {
				t.Errorf("Balance(%v, %v, %v) = %v, want %v", tt.fare, tt.discount, tt.paid, got, tt.want)
			}
			if got < 0 {
				t.Errorf("balance must never be negative, got %v", got)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"50000", 50000},
		{" 1,250.50 ", 1250.50},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-300", -300}, // negative parses; validation rejects it upstream
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// Garbage form input flows through to a defined balance, never NaN.
func TestRegistrationEdit_garbageInput(t *testing.T) {
	edit := RegistrationEdit{
		StudentID: "s1",
		RouteID:   "r1",
		RouteFare: "oops",
		Discount:  "NaN",
		Paid:      "???",
	}
	reg := edit.Registration("")
	if math.IsNaN(reg.Balance) || reg.Balance != 0 {
		t.Errorf("balance = %v, want 0", reg.Balance)
	}
}

// The financial display context renders a raw zero, not the attendance
// table's dash.
func TestRegistrationEdit_fullyPaid(t *testing.T) {
	edit := RegistrationEdit{StudentID: "s1", RouteID: "r1", RouteFare: "50000", Discount: "10000", Paid: "45000"}
	reg := edit.Registration("reg-1")
	if reg.Balance != 0 {
		t.Errorf("balance = %v, want 0", reg.Balance)
	}
}
