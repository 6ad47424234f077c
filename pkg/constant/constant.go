package constant

const (
	DefaultPort               = "3000"
	DefaultUsersFile          = "data/users.json"
	DefaultBcryptCost         = 10
	DefaultMaxLoginAttempts   = 3
	DefaultResetCodeExpiryMin = 30
	DefaultTokenExpiryHours   = 24
)
