package errs

type ErrorMessage struct {
	Code    string
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

type UnauthorizedError struct {
	ErrorMessage
}

type DatabaseError struct {
	ErrorMessage
	Operation string
}

type ExternalServiceError struct {
	ErrorMessage
	Service string
}

func NewNotFoundError(code, message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Code: code, Message: message},
	}
}

func NewAlreadyExistsError(code, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Code: code, Message: message},
	}
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Code: code, Message: message},
	}
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{
		ErrorMessage: ErrorMessage{Code: "INVALID_CREDENTIALS", Message: message},
	}
}

func NewDatabaseError(operation string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Code: "INTERNAL_ERROR", Message: err.Error()},
		Operation:    operation,
	}
}

func NewExternalServiceError(service, code, message string) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Code: code, Message: message},
		Service:      service,
	}
}
