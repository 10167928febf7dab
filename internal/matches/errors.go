package matches

// ValidationError carries a message meant for the person filling in the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

const (
	msgLocationRequired = "Please select a location"
	msgPlayersRequired  = "Please select all players"
	msgWinnerMismatch   = "Selected winner does not match the set results"
)
