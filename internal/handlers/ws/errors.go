package ws

// GatewayError is a custom error type for gateway-related errors
type GatewayError string

// Error implements the error interface
func (e GatewayError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        GatewayError = "config cannot be nil"
	ErrNilGameService   GatewayError = "game service cannot be nil"
	ErrNilSessionRepo   GatewayError = "session repository cannot be nil"
	ErrUnknownAction    GatewayError = "unknown action"
	ErrMalformedPayload GatewayError = "malformed payload"
)
