package common

const (
	// AuthorizationHeaderName carries the bearer access token.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// AuthTokenMetadataKey is the metadata key the access token is cached under.
	AuthTokenMetadataKey = "auth_token"
)
