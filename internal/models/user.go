package models

// User is a registered account. Password holds a bcrypt hash and is never serialized.
type User struct {
	ID          string `json:"_id"`
	LoginName   string `json:"login_name"`
	Password    string `json:"-"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Occupation  string `json:"occupation"`
	Description string `json:"description"`
}

// UserProfile is the public view returned by /user/:id.
type UserProfile struct {
	ID          string `json:"_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
}

// AuthorSummary is the projection of a user inlined into comments.
type AuthorSummary struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
