package orders

// Order kinds. Quotes share the order shape upstream and only differ by
// kind.
const (
	KindOrder = "ORDER"
	KindQuote = "QUOTE"
)

type Order struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"`
	Number       string  `json:"orderNumber"`
	CustomerName string  `json:"customerName"`
	Status       string  `json:"status"`
	Total        float64 `json:"total"`
	Date         string  `json:"date"`
}
