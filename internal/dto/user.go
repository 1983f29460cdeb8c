package dto

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Username string `json:"username" validate:"required,min=3,max=32,username" example:"jdoe"`
	Password string `json:"password" validate:"required,min=8" example:"Str0ng!pass"`
	Name     string `json:"name" validate:"required,max=100" example:"Jane Doe"`
}

type RegisterResponse struct {
	Message string `json:"message" example:"Registration successful! Please check your email to verify your account."`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordRequest struct {
	OldPassword  string `json:"old_password,omitempty"`
	NewPassword  string `json:"new_password" validate:"required,min=8"`
	IsInitialSet bool   `json:"is_initial_set"`
}

type ProfileUpdateRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=32,username"`
}

type AvatarUpdateRequest struct {
	Avatar *AvatarView `json:"avatar" validate:"required"`
}

type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
