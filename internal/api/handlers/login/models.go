package login

// LoginRequest учетные данные студента
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
