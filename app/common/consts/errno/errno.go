package errno

const (
	StatusOK = 10000
)

const (
	SessionInvalid = 40000 + iota
	SessionExpired
)

const (
	InternalError = 50000 + iota
	InvalidParam
	ProductNotFound
	ClerkNotConfigured
	ClerkUnavailable
)
