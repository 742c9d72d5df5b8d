package utils

const (
	UserLoggedIn     = "User logged in successfully"
	UserCreated      = "User created successfully"
	UserUpdated      = "User updated successfully"
	UserDeleted      = "User deleted successfully"
	PasswordUpdated  = "Password updated successfully"
	ProxyCreated     = "Proxy created successfully"
	ProxyUpdated     = "Proxy updated successfully"
	ProxyDeleted     = "Proxy deleted"
	URLCreated       = "URL created successfully"
	URLUpdated       = "URL updated successfully"
	URLDeleted       = "URL deleted"
	RecipientCreated = "Recipient created successfully"
	RecipientUpdated = "Recipient updated successfully"
	RecipientDeleted = "Recipient deleted"
	SettingsUpdated  = "Notification settings updated"
	TestNotifSent    = "Test notification sent successfully"
)
