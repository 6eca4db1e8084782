package domain

import "errors"

// Region types.
const (
	RegionTypeRent = "rent"
	RegionTypeBuy  = "buy"
)

// Domain errors.
var (
	ErrRegionNotFound    = errors.New("region not found")
	ErrRegionNameEmpty   = errors.New("region name is empty")
	ErrNoAnnounceChannel = errors.New("no announce channel configured")
)

var codes = map[error]string{
	ErrRegionNotFound:    "region_not_found",
	ErrRegionNameEmpty:   "region_name_empty",
	ErrNoAnnounceChannel: "no_announce_channel",
}

// Code returns the stable code of the domain error wrapped by err, or "" when
// err is not a domain error.
func Code(err error) string {
	for target, code := range codes {
		if errors.Is(err, target) {
			return code
		}
	}
	return ""
}
