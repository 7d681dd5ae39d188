package finance

import "testing"

func TestBuildStatement(t *testing.T) {
	charges := []Charge{
		{ID: "c2", Description: "Transport", Amount: 30000, Date: "2024-02-01"},
		{ID: "c1", Description: "Tuition", Amount: 100000, Date: "2024-01-10"},
	}
	payments := []Payment{
		{ID: "p1", Method: "cash", Amount: 50000, Date: "2024-01-20"},
		{ID: "p2", Method: "bank", Amount: 60000, Date: "2024-02-01"},
	}

	st := BuildStatement("s1", charges, payments)

	if st.TotalCharges != 130000 || st.TotalPayments != 110000 || st.Balance != 20000 {
		t.Fatalf("totals = %+v", st)
	}
	wantOrder := []string{"Tuition", "Payment (cash)", "Transport", "Payment (bank)"}
	wantBalance := []float64{100000, 50000, 80000, 20000}
	if len(st.Lines) != len(wantOrder) {
		t.Fatalf("lines = %d, want %d", len(st.Lines), len(wantOrder))
	}
	for i, l := range st.Lines {
		if l.Description != wantOrder[i] {
			t.Errorf("line %d = %q, want %q", i, l.Description, wantOrder[i])
		}
		if l.Balance != wantBalance[i] {
			t.Errorf("line %d balance = %v, want %v", i, l.Balance, wantBalance[i])
		}
	}
}

// Same-day entries must apply the charge before the payment.
func TestBuildStatement_sameDayChargeFirst(t *testing.T) {
	st := BuildStatement("s1",
		[]Charge{{Description: "Uniform", Amount: 20000, Date: "2024-03-01"}},
		[]Payment{{Amount: 20000, Date: "2024-03-01"}},
	)
	if st.Lines[0].Kind != KindCharge || st.Lines[1].Kind != KindPayment {
		t.Errorf("order = %s, %s", st.Lines[0].Kind, st.Lines[1].Kind)
	}
	if st.Balance != 0 {
		t.Errorf("balance = %v, want 0", st.Balance)
	}
}

// An account in credit keeps its negative balance; nothing clamps it.
func TestBuildStatement_creditStaysNegative(t *testing.T) {
	st := BuildStatement("s1", nil, []Payment{{Amount: 5000, Date: "2024-01-05"}})
	if st.Balance != -5000 {
		t.Errorf("balance = %v, want -5000", st.Balance)
	}
}

func TestBuildStatement_empty(t *testing.T) {
	st := BuildStatement("s1", nil, nil)
	if len(st.Lines) != 0 || st.Balance != 0 {
		t.Errorf("statement = %+v, want empty", st)
	}
}
