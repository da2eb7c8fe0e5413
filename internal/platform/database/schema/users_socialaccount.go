package schema

// UserSocialAccountTable represents the 'users.socialaccount' table
type UserSocialAccountTable struct {
	Table     string
	ID        string
	UserID    string
	Provider  string
	UID       string
	ExtraData string
	CreatedAt string
}

// UserSocialAccount is the schema definition for users.socialaccount
var UserSocialAccount = UserSocialAccountTable{
	Table:     "users.socialaccount",
	ID:        "id",
	UserID:    "userid",
	Provider:  "provider",
	UID:       "uid",
	ExtraData: "extradata",
	CreatedAt: "createdat",
}
