package ports

// SecurityEvent names an entry of the security log.
type SecurityEvent string

const (
	EventRegister      SecurityEvent = "REGISTER"
	EventLoginSuccess  SecurityEvent = "LOGIN_SUCCESS"
	EventLoginFailed   SecurityEvent = "LOGIN_FAILED"
	EventPayment       SecurityEvent = "PAYMENT"
	EventPaymentFailed SecurityEvent = "PAYMENT_FAILED"
	EventProfileUpdate SecurityEvent = "PROFILE_UPDATE"
	EventStaffRegister SecurityEvent = "STAFF_REGISTER"
)

// SecurityLog records security relevant events. Recording never fails the
// operation that triggered it.
type SecurityLog interface {
	Record(event SecurityEvent, subject string, detail string)
}
