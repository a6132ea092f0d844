package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key that
// carries the access token. gRPC metadata keys are lower-case.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the authorization scheme expected in front of the token.
const BearerScheme = "Bearer"
