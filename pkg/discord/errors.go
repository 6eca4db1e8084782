package discord

import "areamsg/internal/domain"

// ErrorKey maps a domain error code to the catalog key of its user-facing
// message.
func ErrorKey(code string) string {
	switch code {
	case "region_not_found":
		return "error-region-not-found"
	case "region_name_empty":
		return "error-region-name-empty"
	case "no_announce_channel":
		return "error-no-announce-channel"
	default:
		return "error-generic"
	}
}

// DomainErrorKey is a convenience helper that extracts the domain error code
// and immediately resolves it to a catalog key.
func DomainErrorKey(err error) string {
	if err == nil {
		return ""
	}
	return ErrorKey(domain.Code(err))
}
