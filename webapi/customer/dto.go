package customer

// ChangePasswordInput replaces the login or the withdraw password.
type ChangePasswordInput struct {
	Kind            string `json:"kind" validate:"required"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

// WithdrawPasswordInput sets or checks the withdraw password.
type WithdrawPasswordInput struct {
	Password string `json:"password" validate:"required,max=72"`
}
