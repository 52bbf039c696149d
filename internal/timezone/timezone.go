/*
Package timezone resolves newsletter schedule timezone labels into concrete
locations for date display.
*/
package timezone

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Display layouts for localized dates. The long form appears in prompts and
// email headers, the short form in subject lines.
const (
	LongDate  = "January 02, 2006"
	ShortDate = "Jan 02, 2006"
)

// aliases maps the region labels accepted in newsletter configs to IANA zone
// names. Labels outside this table are tried as IANA names directly.
var aliases = map[string]string{
	"US/Eastern":    "America/New_York",
	"US/Central":    "America/Chicago",
	"US/Mountain":   "America/Denver",
	"US/Pacific":    "America/Los_Angeles",
	"Europe/London": "Europe/London",
	"Europe/Berlin": "Europe/Berlin",
	"Asia/Tokyo":    "Asia/Tokyo",
	"UTC":           "UTC",
}

// Resolve maps a timezone label to a location, falling back to UTC for
// anything unresolvable.
func Resolve(label string) *time.Location {
	name := label
	if alias, ok := aliases[label]; ok {
		name = alias
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Str("timezone", label).Msg("unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}

// Now returns the current time in the zone named by label.
func Now(label string) time.Time {
	return time.Now().In(Resolve(label))
}
