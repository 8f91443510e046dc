package userdemo

import (
	"context"
	"fmt"
	"slices"
)

// Scenario is a named pipeline with a printable result.
type Scenario struct {
	Name    string
	Summary string
	Run     func(ctx context.Context) (string, error)
}

func render[T any](v T, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

func byName(users []User) []ByName {
	out := make([]ByName, len(users))
	for i, u := range users {
		out[i] = ByName{u}
	}
	return out
}

// Scenarios lists every demo pipeline in a stable order.
func Scenarios() []Scenario {
	return []Scenario{
		{"guests", "guests sorted by id, mapped to names", func(ctx context.Context) (string, error) {
			return render(GuestNamesByID(ctx, Directory()))
		}},
		{"even-ids", "names of users with even ids", func(ctx context.Context) (string, error) {
			return render(EvenIDNames(ctx, Sequential()))
		}},
		{"distinct", "first user per id on an unordered stream", func(ctx context.Context) (string, error) {
			return render(UniqueByID(ctx, Duplicates()))
		}},
		{"limit", "first three users", func(ctx context.Context) (string, error) {
			return render(Page(ctx, Duplicates(), 0, 3))
		}},
		{"skip", "users after the first three", func(ctx context.Context) (string, error) {
			return render(Page(ctx, Shuffled(), 3, 5))
		}},
		{"sort-by-name", "users sorted with a name comparator", func(ctx context.Context) (string, error) {
			return render(SortByName(ctx, Shuffled()))
		}},
		{"sort-natural", "users sorted by their natural order", func(ctx context.Context) (string, error) {
			return render(SortNatural(ctx, byName(Shuffled())))
		}},
		{"order", "stage invocation order around a sort", func(ctx context.Context) (string, error) {
			result, phases, err := TraceOrder(ctx, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%v %v", result, phases), nil
		}},
		{"peek", "names after a sort, with the users seen by peek", func(ctx context.Context) (string, error) {
			names, seen, err := PeekSorted(ctx, Shuffled())
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%v %v", names, seen), nil
		}},
		{"roles", "role of every user", func(ctx context.Context) (string, error) {
			return render(Roles(ctx, Shuffled()))
		}},
		{"renumber", "users rebuilt from their ids", func(ctx context.Context) (string, error) {
			return render(Renumber(ctx, Shuffled()))
		}},
		{"role-weights", "id plus role name length, in role order", func(ctx context.Context) (string, error) {
			return render(RoleWeights(ctx, Shuffled()))
		}},
		{"describe", "id, role and name tokens per user", func(ctx context.Context) (string, error) {
			return render(Describe(ctx, Shuffled()))
		}},
		{"measures", "id, name length and role length per user", func(ctx context.Context) (string, error) {
			users := Shuffled()
			users[0].Name = "User44"
			return render(Measures(ctx, users))
		}},
		{"sum-ids", "ids reduced onto 350", func(ctx context.Context) (string, error) {
			return render(SumIDs(ctx, Shuffled(), 350))
		}},
		{"by-role", "users grouped by role", func(ctx context.Context) (string, error) {
			groups, err := ByRole(ctx, Directory())
			if err != nil {
				return "", err
			}
			out := make([]string, len(groups))
			for i, g := range groups {
				out[i] = fmt.Sprintf("%s=%d", g.Key, len(g.Values))
			}
			return fmt.Sprint(out), nil
		}},
	}
}

// Lookup returns the scenario with the given name.
func Lookup(name string) (Scenario, bool) {
	all := Scenarios()
	i := slices.IndexFunc(all, func(s Scenario) bool { return s.Name == name })
	if i < 0 {
		return Scenario{}, false
	}
	return all[i], true
}
