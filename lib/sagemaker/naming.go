package sagemaker

import (
	"fmt"
	"time"
)

// MaxResourceNameLength is the longest name SageMaker accepts for endpoint
// configs.
const MaxResourceNameLength = 63

// Timestamp formats t the way generated resource names are suffixed:
// UTC, to the millisecond.
func Timestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s-%03d", t.Format("2006-01-02-15-04-05"), t.Nanosecond()/int(time.Millisecond))
}

// NameFromBase appends a timestamp to base, trimming base so the result fits
// in MaxResourceNameLength.
func NameFromBase(base string, now time.Time) string {
	ts := Timestamp(now)
	limit := MaxResourceNameLength - len(ts) - 1
	if len(base) > limit {
		base = base[:limit]
	}
	return base + "-" + ts
}
