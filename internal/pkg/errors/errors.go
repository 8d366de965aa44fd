package errors

import "errors"

// Custom application errors
var (
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM") // Malformed time of day from user input
	ErrMissingArgument   = errors.New("missing command argument")            // Command sent without its required arguments
	ErrInvalidRecipient  = errors.New("invalid recipient id")                // Empty or malformed recipient identity
	ErrDatabaseOperation = errors.New("database operation failed")           // Generic storage fault
	ErrUnknownChannel    = errors.New("no notifier registered for channel")  // Recipient prefix does not map to a transport
	ErrNotifyFailed      = errors.New("notification delivery failed")        // Transport refused or failed the send
	ErrPassInProgress    = errors.New("dispatcher pass already in progress") // Overlapping pass rejected by the in-flight guard
	ErrScheduling        = errors.New("scheduling failed")                   // Tick registration failed
	ErrInvalidConfig     = errors.New("invalid configuration")               // Config failed validation
)
