package errors

var ErrIncorrectAdminKey = &DomainError{
	Code:    "INCORRECT_ADMIN_KEY",
	Message: "Incorrect api key for admin",
}
