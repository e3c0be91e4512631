package durafmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Clock formats the given duration as MM:SS. Minutes are not wrapped into
// hours, so an hour and a half is 90:00. Negative durations are 00:00.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	var mins, secs int
	mins, d = divide(d, time.Minute)
	secs, _ = divide(d, time.Second)

	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// ParseClock parses the output of Clock. A plain number of seconds is also
// accepted. In the MM:SS form, seconds must be below 60.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return 0, errors.Errorf("invalid time %q, expected MM:SS", s)
	}

	nums := make([]int64, len(parts))
	for i, part := range parts {
		n, err := parseUint(part)
		if err != nil {
			return 0, errors.Errorf("invalid time %q, expected MM:SS", s)
		}
		nums[i] = n
	}

	var mins, secs int64
	if len(nums) == 2 {
		mins, secs = nums[0], nums[1]
		if secs >= 60 {
			return 0, errors.Errorf("invalid time %q, seconds must be below 60", s)
		}
	} else {
		secs = nums[0]
	}

	total := mins*60 + secs
	if mins > maxSeconds/60 || total > maxSeconds {
		return 0, errors.Errorf("invalid time %q, too long", s)
	}

	return time.Duration(total) * time.Second, nil
}

const maxSeconds = math.MaxInt64 / int64(time.Second)

// parseUint parses a non-empty run of ASCII digits.
func parseUint(s string) (int64, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, errors.Errorf("not a number: %q", s)
	}
	return strconv.ParseInt(s, 10, 64)
}

func divide(d, div time.Duration) (n int, newd time.Duration) {
	n = int(d / div)
	return n, d - time.Duration(n)*div
}
