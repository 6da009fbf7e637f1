package schemas

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	PLanguage string `json:"p_language"`
	PCurrency string `json:"p_currency"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *SafeUser `json:"user"`
	Token string    `json:"token"`
}

// SafeUser is the user representation returned to clients, without the
// password hash.
type SafeUser struct {
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	PLanguage string `json:"p_language"`
	PCurrency string `json:"p_currency"`
}

type MeResponse struct {
	LoggedIn bool      `json:"loggedIn"`
	User     *SafeUser `json:"user,omitempty"`
}
