package transport

import (
	"github.com/go-playground/validator/v10"
)

// Route is a registered transport route with its standard fare.
type Route struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Fare float64 `json:"fare"`
}

// Registration links a student to a route with their negotiated amounts.
// Balance is derived, never trusted from input; see Balance().
type Registration struct {
	ID        string  `json:"id"`
	StudentID string  `json:"studentId"`
	RouteID   string  `json:"routeId"`
	RouteFare float64 `json:"routeFare"`
	Discount  float64 `json:"studentDiscount"`
	Paid      float64 `json:"amountPaid"`
	Balance   float64 `json:"balance"`
}

// RegistrationEdit is what the edit form submits. The numeric fields arrive
// as strings because the form lets the user type anything; unparsable input
// counts as 0.
type RegistrationEdit struct {
	StudentID string `json:"studentId" validate:"required"`
	RouteID   string `json:"routeId" validate:"required"`
	RouteFare string `json:"routeFare" validate:"amount"`
	Discount  string `json:"studentDiscount" validate:"amount"`
	Paid      string `json:"amountPaid" validate:"amount"`
}

func (e *RegistrationEdit) Validate(validate *validator.Validate) error {
	return validate.Struct(e)
}

// Registration resolves the edit into a record with the balance recomputed
// from scratch. Whatever balance the form displayed is discarded.
func (e *RegistrationEdit) Registration(id string) Registration {
	fare := ParseAmount(e.RouteFare)
	discount := ParseAmount(e.Discount)
	paid := ParseAmount(e.Paid)
	return Registration{
		ID:        id,
		StudentID: e.StudentID,
		RouteID:   e.RouteID,
		RouteFare: fare,
		Discount:  discount,
		Paid:      paid,
		Balance:   Balance(fare, discount, paid),
	}
}
