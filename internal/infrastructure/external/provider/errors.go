package provider

import "fmt"

// DNSError indicates the provider host could not be resolved. It is a
// distinct outcome from other transport failures so callers can surface a
// dedicated error category.
type DNSError struct {
	Host string
	Err  error
}

// Error implements the error interface.
func (e *DNSError) Error() string {
	return fmt.Sprintf("DNS resolution failed for %s: %v", e.Host, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *DNSError) Unwrap() error { return e.Err }

// FailedHost returns the host that could not be resolved.
func (e *DNSError) FailedHost() string { return e.Host }

// StatusError carries an error status returned by the provider itself.
// The status and detail are forwarded to the client unchanged.
type StatusError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Detail)
}

// ProviderStatus returns the HTTP status the provider responded with.
func (e *StatusError) ProviderStatus() int { return e.Status }

// ProviderDetail returns the provider-supplied error detail.
func (e *StatusError) ProviderDetail() string { return e.Detail }
