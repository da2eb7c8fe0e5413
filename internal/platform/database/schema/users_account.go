package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsStaff      string
	IsActive     string
	LastLoginAt  string
	CreatedAt    string
	UpdatedAt    string

	// UsernameKey and EmailKey name the unique constraints.
	UsernameKey string
	EmailKey    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "passwordhash",
	IsStaff:      "isstaff",
	IsActive:     "isactive",
	LastLoginAt:  "lastloginat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	UsernameKey:  "account_username_key",
	EmailKey:     "account_email_key",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.IsStaff,
		t.IsActive, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
