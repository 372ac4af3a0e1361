// Example program using the nextver library API.
//
// Run from the repo root:
//
//	go run ./example/
//
// With remote mode (set GITHUB_TOKEN first):
//
//	GITHUB_TOKEN=ghp_xxx go run ./example/
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/MyCarrier-DevOps/go-nextver/pkg/sdk"
)

func main() {
	localVersion()
	branchVersions()

	if os.Getenv("GITHUB_TOKEN") != "" {
		remoteVersion()
	}
}

func localVersion() {
	bus := sdk.NewBus()
	bus.On(sdk.CommitVersionFound, func(ev sdk.Event) {
		fmt.Printf("[%s] %s: %v\n", ev.BranchName, ev.Kind, ev.Payload)
	})

	result, err := sdk.Calculate(sdk.LocalOptions{
		Path:    ".",
		Explain: true,
		Bus:     bus,
	})
	if err != nil {
		log.Fatalf("local calculation failed: %v", err)
	}

	printVersion("Local", result)
	fmt.Print(result.Explanation.FormattedOutput)
	fmt.Println()
}

func branchVersions() {
	results, err := sdk.CalculateBranches(sdk.LocalOptions{Path: "."}, "main", "develop")
	if err != nil {
		fmt.Printf("branch calculation skipped: %v\n\n", err)
		return
	}
	for branch, r := range results {
		fmt.Printf("%-10s %s\n", branch, r.Version)
	}
	fmt.Println()
}

func remoteVersion() {
	result, err := sdk.CalculateRemote(sdk.RemoteOptions{
		Owner: "MyCarrier-DevOps",
		Repo:  "go-nextver",
		Token: os.Getenv("GITHUB_TOKEN"),
		Ref:   "main",
	})
	if err != nil {
		log.Fatalf("remote calculation failed: %v", err)
	}

	printVersion("Remote", result)
}

func printVersion(label string, result *sdk.Result) {
	fmt.Printf("=== %s Version ===\n", label)

	keys := make([]string, 0, len(result.Variables))
	for k := range result.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-15s %s\n", k, result.Variables[k])
	}
	fmt.Println()
}
