package ports

// Notifier surfaces transient, toast-style notifications for login, register
// and logout outcomes. Implementations must not block or fail.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
