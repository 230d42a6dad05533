package ui

// ActionableError carries a message meant for the player, alongside the
// underlying cause for the logs.
type ActionableError struct {
	Message string
	Cause   error
}

func NewActionableError(message string, cause error) *ActionableError {
	return &ActionableError{
		Message: message,
		Cause:   cause,
	}
}

func (e *ActionableError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Message returns the text to show the player for err.
func Message(err error, fallback string) string {
	if actionableErr, ok := err.(*ActionableError); ok {
		return actionableErr.Message
	}
	return fallback
}
