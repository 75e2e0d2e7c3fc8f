package domain

type Agent struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ActiveDebts int    `json:"active_debts"`
}
