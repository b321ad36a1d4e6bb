package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Email string `json:"email"`
}

// UserInfoResponse mirrors the upstream userinfo record.
type UserInfoResponse struct {
	Email  string `json:"email"`
	Client string `json:"client"`
	Role   string `json:"role"`
}
