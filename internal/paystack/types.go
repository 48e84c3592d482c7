package paystack

import "time"

// VerifyResponse ответ Paystack на проверку транзакции.
type VerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID        int64     `json:"id"`
		Status    string    `json:"status"` // success | failed | abandoned
		Reference string    `json:"reference"`
		Amount    int64     `json:"amount"` // В кобо (минорных единицах)
		Currency  string    `json:"currency"`
		PaidAt    time.Time `json:"paid_at"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// Succeeded сообщает, завершилась ли транзакция успешно.
func (r *VerifyResponse) Succeeded() bool {
	return r.Status && r.Data.Status == "success"
}
