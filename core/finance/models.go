package finance

// Entry kinds on a statement.
const (
	KindCharge  = "CHARGE"
	KindPayment = "PAYMENT"
)

// Charge is a billed item (fees, transport, uniforms) from the upstream
// ledger. Date is ISO yyyy-mm-dd.
type Charge struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"studentId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

// Payment is money received against a student's account.
type Payment struct {
	ID        string  `json:"id"`
	StudentID string  `json:"studentId"`
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
}

// Line is one statement row with the balance after applying it.
type Line struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Balance     float64 `json:"balance"`
}

// Statement is a student's full financial history, charges and payments
// interleaved in date order with a running balance.
type Statement struct {
	StudentID     string  `json:"studentId"`
	Lines         []Line  `json:"lines"`
	TotalCharges  float64 `json:"totalCharges"`
	TotalPayments float64 `json:"totalPayments"`
	Balance       float64 `json:"balance"`
}
