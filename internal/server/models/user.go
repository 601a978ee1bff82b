package models

// User is the stored account record. ID is assigned by the store on insert
// and never changes. PasswordHash holds the bcrypt hash of the password; the
// plaintext is never stored anywhere.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// UserView is the outbound projection of a User. It deliberately has no
// password field so stored hashes cannot leak through API responses.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// View returns the response-safe projection of the user.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email}
}
