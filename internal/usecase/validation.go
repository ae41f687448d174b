package usecase

// ValidateMerchantPaymentID checks a caller-supplied idempotency key. Keys
// are opaque identifiers restricted to a URL-safe charset so they can be
// forwarded to the gateway verbatim.
func ValidateMerchantPaymentID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
