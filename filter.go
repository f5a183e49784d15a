package osmslope

import (
	"fmt"
	"strings"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// FilterCondition is a single tag requirement: either "key is present"
// or "key equals value" (exact, case-sensitive match).
type FilterCondition struct {
	Key      string
	Value    string
	HasValue bool
}

// String returns pretty printed value for FilterCondition
func (condition FilterCondition) String() string {
	if condition.HasValue {
		return fmt.Sprintf("%s=%s", condition.Key, condition.Value)
	}
	return condition.Key
}

func (condition FilterCondition) matches(tags osm.Tags) bool {
	for i := range tags {
		if tags[i].Key != condition.Key {
			continue
		}
		return !condition.HasValue || tags[i].Value == condition.Value
	}
	return false
}

// FilterSpec is a set of tag conditions combined with a logical OR: an
// entity matches the spec if at least one condition holds.
type FilterSpec []FilterCondition

// DefaultFilter returns the filter used when no user filter is given:
// any entity carrying a "highway" tag.
func DefaultFilter() FilterSpec {
	return FilterSpec{{Key: "highway"}}
}

// ParseFilter parses a user-supplied filter string: conditions are
// separated by commas, each condition is either "key" or "key=value".
// The value part is split on the first "=" only, so "name=a=b" means
// key "name" with value "a=b"; "key=" means key equals the empty
// string. A condition with an empty key is a configuration error.
func ParseFilter(filter string) (FilterSpec, error) {
	spec := FilterSpec{}
	for _, token := range strings.Split(filter, ",") {
		key, value, hasValue := strings.Cut(token, "=")
		if key == "" {
			return nil, errors.Wrapf(ErrEmptyFilterKey, "condition '%s' in filter '%s'", token, filter)
		}
		spec = append(spec, FilterCondition{Key: key, Value: value, HasValue: hasValue})
	}
	return spec, nil
}

// Matches reports whether given tags satisfy at least one condition of
// the spec. An empty spec matches nothing.
func (spec FilterSpec) Matches(tags osm.Tags) bool {
	for i := range spec {
		if spec[i].matches(tags) {
			return true
		}
	}
	return false
}

// String returns pretty printed value for FilterSpec
func (spec FilterSpec) String() string {
	conditions := make([]string, len(spec))
	for i := range spec {
		conditions[i] = spec[i].String()
	}
	return strings.Join(conditions, ",")
}
