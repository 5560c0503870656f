package dto

// CreateErrandRequest posts a new errand for runner fan-out.
type CreateErrandRequest struct {
	Title          string `json:"title" validate:"required,max=255"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
	PickupAddress  string `json:"pickup_address" validate:"required,max=255"`
	DropoffAddress string `json:"dropoff_address" validate:"required,max=255"`
	FeeKobo        int64  `json:"fee_kobo" validate:"required,gt=0"`
}

// ChatMessageRequest posts a message into a chat thread.
type ChatMessageRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}
