package domain

import (
	"sort"
	"strconv"
	"strings"
)

// OptionsKey returns a canonical key for a line item's options, used to
// decide whether an added item merges into an existing entry. The key is
// defined over the normalized structure (sorted flavor ids, zero values
// elided) so merge-on-add does not depend on any serialization format.
func OptionsKey(o *ItemOptions) string {
	if o == nil {
		return ""
	}

	var parts []string
	if o.BoxSize > 0 {
		parts = append(parts, "box="+strconv.Itoa(o.BoxSize))
	}
	if o.DoughType != "" {
		parts = append(parts, "dough="+o.DoughType)
	}
	if len(o.FlavorIDs) > 0 {
		flavors := make([]string, len(o.FlavorIDs))
		for i, id := range o.FlavorIDs {
			flavors[i] = id.String()
		}
		sort.Strings(flavors)
		parts = append(parts, "flavors="+strings.Join(flavors, ","))
	}

	return strings.Join(parts, "|")
}

// MergeKey identifies a cart line for merge-on-add purposes: same product
// and structurally equal options collapse into one entry.
func (li *LineItem) MergeKey() string {
	return li.ProductID.String() + "#" + OptionsKey(li.Options)
}
