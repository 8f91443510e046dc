package stream

import (
	"cmp"
	"context"
	"fmt"
	"strings"
)

// Example demonstrates basic stream usage.
func Example() {
	stream := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	defer func() { _ = stream.Close() }()

	// Filter even numbers, square them, sort, take the first two
	result, err := stream.
		Filter(func(x int) bool { return x%2 == 0 }).
		Map(func(x int) int { return x * x }).
		Sorted(nil).
		Limit(2).
		ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Result: %v\n", result)
	// Output: Result: [4 16]
}

// Example_dataProcessing demonstrates a pipeline that changes the element type.
func Example_dataProcessing() {
	type account struct {
		ID    int
		Login string
	}
	accounts := FromSlice([]account{
		{ID: 7, Login: "john.doe"},
		{ID: 3, Login: "jane.smith"},
		{ID: 9, Login: "bob"},
		{ID: 1, Login: "alice.brown"},
	})

	emails, err := Map(
		SortedBy(accounts.Filter(func(a account) bool { return strings.Contains(a.Login, ".") }),
			func(a account) int { return a.ID }),
		func(a account) string { return a.Login + "@company.com" },
	).ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, email := range emails {
		fmt.Println(email)
	}
	// Output:
	// alice.brown@company.com
	// jane.smith@company.com
	// john.doe@company.com
}

// Example_aggregation demonstrates various aggregation operations.
func Example_aggregation() {
	numbers := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ctx := context.Background()

	count, _ := FromSlice(numbers).Count(ctx)
	fmt.Printf("Count: %d\n", count)

	sum, _ := FromSlice(numbers).Reduce(ctx, 0, func(acc, x int) int { return acc + x })
	fmt.Printf("Sum: %d\n", sum)

	minValue, _ := FromSlice(numbers).Min(ctx, cmp.Compare[int])
	if v, ok := minValue.Get(); ok {
		fmt.Printf("Min: %d\n", v)
	}

	maxValue, _ := FromSlice(numbers).Max(ctx, nil)
	if v, ok := maxValue.Get(); ok {
		fmt.Printf("Max: %d\n", v)
	}

	hasEven, _ := FromSlice(numbers).AnyMatch(ctx, func(x int) bool { return x%2 == 0 })
	fmt.Printf("Has even numbers: %t\n", hasEven)

	allPositive, _ := FromSlice(numbers).AllMatch(ctx, func(x int) bool { return x > 0 })
	fmt.Printf("All positive: %t\n", allPositive)

	// Output:
	// Count: 10
	// Sum: 55
	// Min: 1
	// Max: 10
	// Has even numbers: true
	// All positive: true
}

// Example_textProcessing demonstrates text processing with streams.
func Example_textProcessing() {
	words := strings.Fields("The quick brown fox jumps over the lazy dog")

	processed, err := FromSlice(words).
		Filter(func(word string) bool { return len(word) > 3 }).
		Map(strings.ToUpper).
		Distinct().
		Sorted(strings.Compare).
		ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Processed words: %v\n", processed)
	// Output: Processed words: [BROWN JUMPS LAZY OVER QUICK]
}

// Example_numbers demonstrates Skip and Limit.
func Example_numbers() {
	result, err := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}).
		Filter(func(x int) bool { return x%2 == 0 }). // 2,4,6,8,10,12
		Map(func(x int) int { return x * x }).        // 4,16,36,64,100,144
		Skip(2).                                      // 36,64,100,144
		Limit(3).                                     // 36,64,100
		ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Result: %v\n", result)
	// Output: Result: [36 64 100]
}

// Example_collect demonstrates collectors.
func Example_collect() {
	words := []string{"hello", "world", "from", "stream", "api"}
	ctx := context.Background()

	joined, _ := Collect(ctx, FromSlice(words).Filter(func(w string) bool { return len(w) > 3 }),
		Joining(", ", "", ""))
	fmt.Printf("Collected: %s\n", joined)

	byLength, _ := Collect(ctx, FromSlice(words), GroupingBySorted(
		func(w string) int { return len(w) },
		cmp.Compare[int],
	))
	for _, g := range byLength {
		fmt.Printf("%d: %v\n", g.Key, g.Values)
	}

	// Output:
	// Collected: hello, world, from, stream
	// 3: [api]
	// 4: [from]
	// 5: [hello world]
	// 6: [stream]
}

// Example_channels demonstrates creating streams from channels.
func Example_channels() {
	ch := make(chan string, 5)
	ch <- "apple"
	ch <- "banana"
	ch <- "cherry"
	ch <- "date"
	ch <- "elderberry"
	close(ch)

	result, err := FromChannel(ch).
		Filter(func(fruit string) bool { return len(fruit) <= 5 }).
		Map(strings.ToUpper).
		ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Short fruits: %v\n", result)
	// Output: Short fruits: [APPLE DATE]
}

// Example_generator demonstrates infinite streams.
func Example_generator() {
	counter := 0
	stream := Generate(func() int {
		counter++
		return counter
	})
	defer func() { _ = stream.Close() }()

	result, err := stream.
		Filter(func(x int) bool { return x%2 == 0 }).
		Map(func(x int) int { return x * x }).
		Limit(5).
		ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("First 5 even squares: %v\n", result)
	// Output: First 5 even squares: [4 16 36 64 100]
}

// Example_findFirst demonstrates optional results.
func Example_findFirst() {
	first, _ := Of(1, 3, 5).
		Filter(func(x int) bool { return x%2 == 0 }).
		FindFirst(context.Background())

	fmt.Println(first.IsPresent(), first.OrElse(-1))
	// Output: false -1
}

// Example_flatMap demonstrates flattening nested structures.
func Example_flatMap() {
	result, err := FromSlice([]int{2, 3, 4}).
		FlatMap(func(n int) Stream[int] { return Range(1, n+1) }).
		ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Flattened: %v\n", result)
	// Output: Flattened: [1 2 1 2 3 1 2 3 4]
}

// Example_parallel demonstrates parallel evaluation. Ordered streams keep encounter
// order in the result.
func Example_parallel() {
	squares, err := Map(Range(1, 11).Parallel(4), func(x int) int { return x * x }).
		ToSlice(context.Background())

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(squares)
	// Output: [1 4 9 16 25 36 49 64 81 100]
}

// Example_seq demonstrates range-over-func consumption.
func Example_seq() {
	for v, err := range Iterate(1, func(x int) int { return x * 3 }).Limit(4).Seq(context.Background()) {
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Print(v, " ")
	}
	fmt.Println()
	// Output: 1 3 9 27
}

// Example_wordCount demonstrates a word counting pipeline.
func Example_wordCount() {
	words := strings.Fields("the quick brown fox jumps over the lazy dog the fox is quick")

	counts, err := Collect(context.Background(),
		Map(FromSlice(words), strings.ToLower),
		GroupingByWith(func(w string) string { return w }, Counting[string]()))

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("the=%d fox=%d quick=%d dog=%d\n", counts["the"], counts["fox"], counts["quick"], counts["dog"])
	// Output: the=3 fox=2 quick=2 dog=1
}
