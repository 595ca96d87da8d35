package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName is the gRPC metadata key the server uses to echo the
// request id it assigned to a call.
const RequestIDHeaderName = "x-request-id"
