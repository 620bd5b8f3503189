package topic

import (
	"errors"
	"fmt"
)

// Validate checks that topics form a single linear chain: unique IDs, one
// root, and every prerequisite pointing at the topic immediately before.
func Validate(topics []Topic) error {
	var errs []error
	seen := make(map[ID]bool, len(topics))

	for i, t := range topics {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("topic %d: empty id", i))
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate topic id %q", t.ID))
		}
		seen[t.ID] = true

		switch {
		case i == 0 && t.Prerequisite != "":
			errs = append(errs, fmt.Errorf("root topic %q has prerequisite %q", t.ID, t.Prerequisite))
		case i > 0 && t.Prerequisite != topics[i-1].ID:
			errs = append(errs, fmt.Errorf("topic %q: prerequisite %q, want %q", t.ID, t.Prerequisite, topics[i-1].ID))
		}
	}

	return errors.Join(errs...)
}
