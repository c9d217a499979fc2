package dto

// LoginRequest entrada del endpoint de login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser identidad mínima que acompaña al token.
type LoginUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// LoginResponse salida del login: el token es el único artefacto de la
// autenticación, no hay sesión ni refresh token.
type LoginResponse struct {
	Message     string    `json:"message"`
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
	ExpiresIn   string    `json:"expires_in"`
}
