package model

// User identifies a registered rider by email address. The user
// directory is an external collaborator as far as the ride tracking
// core is concerned; rides only reference users by email and validate
// their existence before any vehicle mutation.
type User struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
