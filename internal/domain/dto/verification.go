package dto

// SubmitVerificationRequest submits an identity document for review.
type SubmitVerificationRequest struct {
	UserRole string `json:"user_role" validate:"required,oneof=seller runner"`
	ImageURL string `json:"image_url" validate:"required,url"`
}
