package schemas

type UpdateCurrencyRequest struct {
	PCurrency string `json:"p_currency"`
}

type UpdateLanguageRequest struct {
	PLanguage string `json:"p_language"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UpdateUserRequest struct {
	Role      *string `json:"role"`
	PLanguage *string `json:"p_language"`
	PCurrency *string `json:"p_currency"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
