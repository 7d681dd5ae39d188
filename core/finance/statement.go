package finance

import "sort"

// BuildStatement interleaves charges and payments by date and computes the
// running balance. Same-day entries keep charges before payments so the
// balance never dips below its end-of-day value mid-statement. Totals are
// recomputed here regardless of what the backend reported.
func BuildStatement(studentID string, charges []Charge, payments []Payment) Statement {
	lines := make([]Line, 0, len(charges)+len(payments))
	for _, c := range charges {
		lines = append(lines, Line{Date: c.Date, Description: c.Description, Kind: KindCharge, Amount: c.Amount})
	}
	for _, p := range payments {
		desc := "Payment"
		if p.Method != "" {
			desc = "Payment (" + p.Method + ")"
		}
		lines = append(lines, Line{Date: p.Date, Description: desc, Kind: KindPayment, Amount: p.Amount})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Date != lines[j].Date {
			return lines[i].Date < lines[j].Date
		}
		return lines[i].Kind == KindCharge && lines[j].Kind == KindPayment
	})

	st := Statement{StudentID: studentID, Lines: lines}
	for i := range st.Lines {
		switch st.Lines[i].Kind {
		case KindCharge:
			st.TotalCharges += st.Lines[i].Amount
			st.Balance += st.Lines[i].Amount
		case KindPayment:
			st.TotalPayments += st.Lines[i].Amount
			st.Balance -= st.Lines[i].Amount
		}
		st.Lines[i].Balance = st.Balance
	}
	return st
}
