package domain

import (
	"fmt"
	"strings"
)

// StatusTag is the derived freshness of an item. It is never stored.
type StatusTag int

const (
	StatusFresh StatusTag = iota
	StatusExpiringSoon
	StatusExpired
)

var statusNames = map[StatusTag]string{
	StatusFresh:        "Fresh",
	StatusExpiringSoon: "ExpiringSoon",
	StatusExpired:      "Expired",
}

// statusLabels are the labels the household UI shows next to each row.
var statusLabels = map[StatusTag]string{
	StatusFresh:        "Свежий",
	StatusExpiringSoon: "Истекает срок",
	StatusExpired:      "Просроченный",
}

func (s StatusTag) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StatusTag(%d)", int(s))
}

// Label returns the user-facing label of the status.
func (s StatusTag) Label() string {
	return statusLabels[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s StatusTag) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status tag %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StatusTag) UnmarshalText(text []byte) error {
	for tag, name := range statusNames {
		if strings.EqualFold(name, string(text)) {
			*s = tag
			return nil
		}
	}
	return fmt.Errorf("unknown status tag %q", string(text))
}

// FilterTag selects which statuses a view shows.
type FilterTag int

const (
	FilterAll FilterTag = iota
	FilterExpired
	FilterRecommend
)

var filterNames = map[FilterTag]string{
	FilterAll:       "All",
	FilterExpired:   "Expired",
	FilterRecommend: "Recommend",
}

// ParseFilterTag maps a free-form tag to a FilterTag. Unknown values fall back to FilterAll.
func ParseFilterTag(value string) FilterTag {
	trimmed := strings.TrimSpace(value)
	for tag, name := range filterNames {
		if strings.EqualFold(name, trimmed) {
			return tag
		}
	}
	return FilterAll
}

func (f FilterTag) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return filterNames[FilterAll]
}

// Matches reports whether an item with the given status passes the filter.
// Out-of-range filter values behave like FilterAll.
func (f FilterTag) Matches(status StatusTag) bool {
	switch f {
	case FilterExpired:
		return status == StatusExpired
	case FilterRecommend:
		return status == StatusExpiringSoon
	default:
		return true
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f FilterTag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (f *FilterTag) UnmarshalText(text []byte) error {
	*f = ParseFilterTag(string(text))
	return nil
}
