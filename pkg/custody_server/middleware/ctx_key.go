package middleware

// keys of values stored in context
type MiddleWareContextKey string

const (
	APPLICATION = MiddleWareContextKey("application") // The context value is the application name of the API key.
	REQUEST_ID  = MiddleWareContextKey("request_id")  // The context value is a string identifying the request in logs.
)
