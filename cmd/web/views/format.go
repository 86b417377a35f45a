package views

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	jalaali "github.com/jalaali/go-jalaali"
)

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// PersianDigits replaces ASCII digits with Persian ones.
func PersianDigits(s string) string {
	return persianDigits.Replace(s)
}

// FaNumber formats n with Persian digits.
func FaNumber(n int) string {
	return PersianDigits(strconv.Itoa(n))
}

// JalaliDate formats t in UTC as a short Solar Hijri date and 24h time with Persian
// digits, e.g. ۱۴۰۲/۱۲/۱۱ ۱۲:۰۰. Dates the calendar cannot convert fall back to
// RFC 3339.
func JalaliDate(t time.Time) string {
	t = t.UTC()
	jy, jm, jd, err := jalaali.ToJalaali(t.Year(), t.Month(), t.Day())
	if err != nil {
		return t.Format(time.RFC3339)
	}
	s := fmt.Sprintf("%04d/%02d/%02d %02d:%02d", jy, int(jm), jd, t.Hour(), t.Minute())
	return PersianDigits(s)
}

// channelMentionRe matches a trailing @channel signature in post content.
func channelMentionRe(channel string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\s*@` + regexp.QuoteMeta(channel) + `\s*$`)
}
