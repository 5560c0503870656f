package dto

import (
	"github.com/google/uuid"
)

// SendPushRequest is the admin-invoked direct notification operation.
type SendPushRequest struct {
	UserID uuid.UUID              `json:"user_id" validate:"required"`
	Title  string                 `json:"title" validate:"required,max=255"`
	Body   string                 `json:"body" validate:"required"`
	Type   string                 `json:"type" validate:"omitempty,oneof=payment verification order message errand general"`
	Data   map[string]interface{} `json:"data"`
}

// PreferencesRequest updates the caller's per-category opt-outs.
type PreferencesRequest struct {
	Orders   bool `json:"orders"`
	Messages bool `json:"messages"`
	Payments bool `json:"payments"`
	Errands  bool `json:"errands"`
	General  bool `json:"general"`
}

// PushTokenRequest registers the caller's device push token.
type PushTokenRequest struct {
	Token string `json:"token" validate:"required,max=255"`
}
