package types

import "github.com/userhub/api/internal/models"

// MessageResponse is the generic {message} body used by most endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries the full field-to-message mapping from
// input validation.
type ValidationErrorResponse struct {
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors"`
}

// CreateUserResponse returns the stored record. The password hash is
// never serialized (json:"-" on the model).
type CreateUserResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

type UploadImageResponse struct {
	ImagePath string `json:"imagePath"`
	Message   string `json:"message"`
}
