package status

import (
	"math"
	"strings"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/rileyhilliard/statusboard/internal/icinga"
)

const (
	maxStateCode = 255
	maxEpoch     = 1 << 62
)

// Normalize merges decoded host and service objects into one item list.
// Objects that cannot be represented are skipped; one error per skipped
// object is returned alongside the items so the caller can log them.
func Normalize(hosts, services []icinga.Object) ([]Item, []error) {
	items := make([]Item, 0, len(hosts)+len(services))
	var errs []error

	for _, obj := range hosts {
		item, err := normalizeOne(Host, obj)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}

	for _, obj := range services {
		item, err := normalizeOne(Service, obj)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}

	return items, errs
}

func normalizeOne(kind Kind, obj icinga.Object) (Item, error) {
	if obj.Type != "" && obj.Type != kind.String() {
		return Item{}, errors.Recordf("%q: type %q found in %s results", obj.Name, obj.Type, strings.ToLower(kind.String()))
	}

	item := Item{Kind: kind}

	switch kind {
	case Host:
		if obj.Name == "" || strings.Contains(obj.Name, "!") {
			return Item{}, errors.Recordf("%q: not a valid host name", obj.Name)
		}
		item.Host = obj.Name
	case Service:
		parts := strings.Split(obj.Name, "!")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Item{}, errors.Recordf("%q: service name must be host!service", obj.Name)
		}
		item.Host = parts[0]
		item.Service = parts[1]
	}

	if obj.Attrs.State == nil {
		return Item{}, errors.Recordf("%q: missing state", obj.Name)
	}
	state := *obj.Attrs.State
	if state != math.Trunc(state) || state < 0 || state > maxStateCode || !ValidState(kind, int(state)) {
		return Item{}, errors.Recordf("%q: state %v is not a valid %s state", obj.Name, state, strings.ToLower(kind.String()))
	}
	item.State = int(state)

	if obj.Attrs.LastHardStateChange != nil {
		ts := *obj.Attrs.LastHardStateChange
		if ts < 0 || ts > maxEpoch || math.IsNaN(ts) {
			return Item{}, errors.Recordf("%q: invalid last_hard_state_change %v", obj.Name, ts)
		}
		item.LastHardStateChange = int64(ts)
	}

	return item, nil
}
