package common

// TokenVaultKey is the fixed key under which the access token is persisted
// in the local vault. Exactly one token is stored at a time.
const TokenVaultKey = "access_token"

// AuthorizationHeader is the HTTP header carrying the bearer token on
// outbound API requests.
const AuthorizationHeader = "Authorization"
