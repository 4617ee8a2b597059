package domain

// Product is a lending product: a named offer with a repayment term in
// months (tenor) and a yearly interest rate in percent.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Tenor        int     `json:"tenor"`
	InterestRate float64 `json:"interestRate"`
}
