// Package view derives the ordered, grouped contact list the UI
// renders from the raw stored contacts plus the current controls.
// The whole pipeline is pure: same inputs, same output, no clock or
// store access.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/supplykingmv/vcard/internal/domain"
)

const (
	SortName      = "name"
	SortCompany   = "company"
	SortDateAdded = "dateAdded"

	GroupNone     = "none"
	GroupCategory = "category"

	FilterAll = "all"
)

// Query is the set of UI controls feeding the pipeline.
type Query struct {
	Search   string
	Category string // FilterAll or a specific category
	Sort     string // SortName | SortCompany | SortDateAdded
	Group    string // GroupNone | GroupCategory
}

// Group is one rendered bucket. Contacts keep their post-sort order.
type Group struct {
	Label    string           `json:"label"`
	Contacts []domain.Contact `json:"contacts"`
}

// Derive runs filter -> annotate -> sort -> group. The input slice is
// never mutated; annotated contacts are copies. viewer may be nil
// (signed-out), in which case every self-card is hidden and nothing
// pins.
func Derive(contacts []domain.Contact, q Query, viewer *domain.User) []Group {
	// localeCompare-equivalent collation for name/company sorting.
	// A Collator keeps internal buffers, so build one per call rather
	// than sharing across requests.
	collator := collate.New(language.Und)
	needle := strings.ToLower(q.Search)

	filtered := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		// hide other users' self-cards
		if c.Category == domain.CategoryMyCard && (viewer == nil || c.Email != viewer.Email) {
			continue
		}
		matchesSearch := strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Company), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle)
		matchesCategory := q.Category == FilterAll || q.Category == "" || domain.Category(q.Category) == c.Category
		if !matchesSearch || !matchesCategory {
			continue
		}
		// display-time override: the viewer's own card is always
		// "My Card" and pinned, whatever category is stored
		if viewer != nil && c.Email == viewer.Email {
			c.Category = domain.CategoryMyCard
			c.Pinned = true
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		switch q.Sort {
		case SortName:
			return collator.CompareString(a.Name, b.Name) < 0
		case SortCompany:
			return collator.CompareString(a.Company, b.Company) < 0
		case SortDateAdded:
			// newest first
			return a.DateAdded.After(b.DateAdded)
		default:
			// unrecognized key: stable no-op
			return false
		}
	})

	if q.Group != GroupCategory {
		return []Group{{Label: "All Contacts", Contacts: filtered}}
	}

	// bucket by displayed category, group order = first appearance
	var groups []Group
	index := map[string]int{}
	for _, c := range filtered {
		label := string(c.Category)
		if label == "" {
			label = "Uncategorized"
		}
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Contacts = append(groups[i].Contacts, c)
	}
	if groups == nil {
		groups = []Group{}
	}
	return groups
}
