package domain

// User is a platform account. Username and email are both unique;
// email comparisons are case-insensitive everywhere, username comparisons
// are exact.
type User struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest carries the credentials submitted to POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
