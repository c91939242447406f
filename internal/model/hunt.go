package model

type Hunt struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	EntryFee          float64 `json:"entryFee"`
	PrizePool         float64 `json:"prizePool"`
	PrizeClaimed      bool    `json:"prizeClaimed"`
	MaxParticipants   int     `json:"maxParticipants"`
	ParticipantsCount int64   `json:"participantsCount"`
}

type GetActiveHuntRequest struct{}

type GetActiveHuntResponse struct {
	Hunt Hunt `json:"hunt"`
}

type CreatePaymentRequest struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
	HuntID string  `json:"huntId"`
}

type Payment struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type Participant struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type CreatePaymentResponse struct {
	Message     string      `json:"message"`
	Payment     Payment     `json:"payment"`
	Participant Participant `json:"participant"`
}

type ServeRealtimeRequest struct{}
