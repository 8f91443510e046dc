package userdemo

import (
	"cmp"
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/vnykmshr/seqflow/pkg/streaming/stream"
)

func name(u User) string { return u.Name }

// GuestNamesByID returns the names of guests ordered by id.
func GuestNamesByID(ctx context.Context, users []User) ([]string, error) {
	guests := stream.FromSlice(users).
		Filter(func(u User) bool { return u.Role == Guest }).
		Sorted(stream.Comparing(func(u User) int64 { return u.ID }))
	return stream.Map(guests, name).ToSlice(ctx)
}

// EvenIDNames returns the names of users with even ids, in directory order.
func EvenIDNames(ctx context.Context, users []User) ([]string, error) {
	even := stream.FromSlice(users).Filter(func(u User) bool { return u.ID%2 == 0 })
	return stream.Map(even, name).ToSlice(ctx)
}

// UniqueByID keeps the first user of every id.
func UniqueByID(ctx context.Context, users []User) ([]User, error) {
	return stream.DistinctBy(stream.FromSlice(users).Unordered(), func(u User) int64 { return u.ID }).
		ToSlice(ctx)
}

// Page returns up to limit users after skipping offset of them.
func Page(ctx context.Context, users []User, offset, limit int64) ([]User, error) {
	return stream.FromSlice(users).Skip(offset).Limit(limit).ToSlice(ctx)
}

// SortByName orders users by name with an explicit comparator.
func SortByName(ctx context.Context, users []User) ([]User, error) {
	return stream.FromSlice(users).Sorted(stream.Comparing(name)).ToSlice(ctx)
}

// SortNatural orders users by their natural order.
func SortNatural(ctx context.Context, users []ByName) ([]ByName, error) {
	return stream.FromSlice(users).Sorted(nil).ToSlice(ctx)
}

// TraceOrder runs filter(even), map(square), sorted, limit(2) over numbers and
// records every stage invocation as f-n, m-n and s-a-b.
func TraceOrder(ctx context.Context, numbers []int) ([]int, []string, error) {
	var (
		mu     sync.Mutex
		phases []string
	)
	record := func(p string) {
		mu.Lock()
		phases = append(phases, p)
		mu.Unlock()
	}

	result, err := stream.FromSlice(numbers).
		Filter(func(n int) bool {
			record("f-" + strconv.Itoa(n))
			return n%2 == 0
		}).
		Map(func(n int) int {
			record("m-" + strconv.Itoa(n))
			return n * n
		}).
		Sorted(func(a, b int) int {
			record(fmt.Sprintf("s-%d-%d", a, b))
			return cmp.Compare(a, b)
		}).
		Limit(2).
		ToSlice(ctx)
	return result, phases, err
}

// PeekSorted returns the names of users with id above 3 ordered by name, along with
// the users observed between the sort and the projection.
func PeekSorted(ctx context.Context, users []User) ([]string, []User, error) {
	var seen []User
	sorted := stream.FromSlice(users).
		Filter(func(u User) bool { return u.ID > 3 }).
		Sorted(stream.Comparing(name)).
		Peek(func(u User) { seen = append(seen, u) })
	names, err := stream.Map(sorted, name).ToSlice(ctx)
	return names, seen, err
}

// Roles returns the role of every user, in directory order.
func Roles(ctx context.Context, users []User) ([]Role, error) {
	var roles []Role
	err := stream.Map(stream.FromSlice(users), func(u User) Role { return u.Role }).
		ForEach(ctx, func(r Role) { roles = append(roles, r) })
	return roles, err
}

// Renumber maps every user to a placeholder user named after its id, taking the role
// of the user at position id-1.
func Renumber(ctx context.Context, users []User) ([]User, error) {
	ids := stream.Map(stream.FromSlice(users), func(u User) int { return int(u.ID) })
	return stream.Map(ids, func(id int) User {
		role := Guest
		if id >= 1 && id <= len(users) {
			role = users[id-1].Role
		}
		return User{ID: int64(id), Name: "User_" + strconv.Itoa(id), Role: role}
	}).ToSlice(ctx)
}

// RoleWeights orders users by role and maps each to its id plus the length of its
// role name.
func RoleWeights(ctx context.Context, users []User) ([]float64, error) {
	byRole := stream.FromSlice(users).Sorted(stream.Comparing(func(u User) Role { return u.Role }))
	return stream.Map(byRole, func(u User) float64 {
		return float64(u.ID) + float64(len(u.Role.String()))
	}).ToSlice(ctx)
}

// Describe flattens every user, ordered by name, into its id, role and name tokens.
func Describe(ctx context.Context, users []User) ([]string, error) {
	ordered := stream.FromSlice(users).
		Sorted(stream.Comparing(func(u User) int64 { return u.ID })).
		Sorted(stream.Comparing(name))
	return stream.FlatMap(ordered, func(u User) stream.Stream[string] {
		return stream.Of(
			"id:"+strconv.FormatInt(u.ID, 10),
			"role:"+u.Role.String(),
			"name:"+u.Name,
		)
	}).ToSlice(ctx)
}

// Measures flattens every user into its id, name length and role name length,
// collected with an explicit supplier, accumulator and combiner.
func Measures(ctx context.Context, users []User) ([]int, error) {
	measures := stream.FlatMapSlice(stream.FromSlice(users), func(u User) []int {
		return []int{int(u.ID), len(u.Name), len(u.Role.String())}
	})
	return stream.Collect(ctx, measures, stream.Collector[int, []int, []int]{
		Supplier:    func() []int { return nil },
		Accumulator: func(acc []int, v int) []int { return append(acc, v) },
		Combiner:    func(a, b []int) []int { return append(a, b...) },
	})
}

// SumIDs folds user ids onto seed.
func SumIDs(ctx context.Context, users []User, seed int64) (int64, error) {
	ids := stream.Map(stream.FromSlice(users), func(u User) int64 { return u.ID })
	return ids.Reduce(ctx, seed, func(a, b int64) int64 { return a + b })
}

// ByRole groups users by role in role order.
func ByRole(ctx context.Context, users []User) ([]stream.Group[Role, User], error) {
	return stream.Collect(ctx, stream.FromSlice(users),
		stream.GroupingBySorted(func(u User) Role { return u.Role }, cmp.Compare[Role]))
}

// FindByName returns the first user with the given name.
func FindByName(ctx context.Context, users []User, n string) (User, bool, error) {
	found, err := stream.FromSlice(users).
		Filter(func(u User) bool { return u.Name == n }).
		FindFirst(ctx)
	if err != nil {
		return User{}, false, err
	}
	u, ok := found.Get()
	return u, ok, nil
}
