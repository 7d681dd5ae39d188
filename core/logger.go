package core

// Person identifies the acting user in error reports.
type Person struct {
	ID       string
	Username string
	Email    string
}

// Logger is any leveled logger that can ship errors to an external reporter.
// Args may include an error, a map of extra fields and/or a Person.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// TokenSource yields the upstream session token attached to every
// authenticated call. The token is only ever read here, never written.
type TokenSource interface {
	Token() (string, error)
}

// TokenStore is a TokenSource whose cached credential can be discarded,
// e.g. after the upstream reports the session expired.
type TokenStore interface {
	TokenSource
	Clear() error
}
