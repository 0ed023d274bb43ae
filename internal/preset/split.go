package preset

import "github.com/pkg/errors"

// SplitDuration is a selectable segment length.
type SplitDuration struct {
	Seconds float64
	Label   string
}

var splitDurations = map[string]SplitDuration{
	"1": {Seconds: 10, Label: "10 seconds"},
	"2": {Seconds: 30, Label: "30 seconds"},
	"3": {Seconds: 60, Label: "1 minute"},
	"4": {Seconds: 120, Label: "2 minutes"},
}

// GetSplitDuration returns the segment duration registered under key.
func GetSplitDuration(key string) (SplitDuration, error) {
	d, ok := splitDurations[key]
	if !ok {
		return SplitDuration{}, errors.Errorf("unknown segment duration: %s", key)
	}
	return d, nil
}

// SplitKeys returns the duration keys in menu order. The custom key is
// not included.
func SplitKeys() []string {
	return sortedKeys(splitDurations)
}
