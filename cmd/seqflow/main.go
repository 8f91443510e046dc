// Command seqflow runs lazy pipelines over demo data, text files, JSON lines, cron
// schedules and Redis lists.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seqflow:", err)
		os.Exit(1)
	}
}
