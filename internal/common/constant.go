package common

// DefaultDomainSuffix is the organisational email suffix accepted by the
// auth service unless configured otherwise.
const DefaultDomainSuffix = "@guidehousefederal.com"

// AuthorizationHeaderName carries the bearer session token on HTTP requests.
const AuthorizationHeaderName = "Authorization"
