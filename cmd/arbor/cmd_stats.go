package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"arbor/internal/model"
	"arbor/internal/snapshot"
)

// statsCmd summarizes a document
var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Summarize a model document",
	Long: `Prints per-kind node counts and the identity fan-out of a document:
every logical identity that appears as more than one instance, with the
pages it appears on.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}
	forest, err := snapshot.Import(snap)
	if err != nil {
		return fmt.Errorf("import document: %w", err)
	}

	kinds := make(map[string]int)
	for _, n := range forest.AllNodes() {
		kinds[fmt.Sprintf("%s/%s", n.Flavor(), n.Kind())]++
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Printf("diagrams: %d, trees: %d, entries: %d\n",
		len(forest.Diagrams), len(forest.Trees), len(forest.Entries))
	for _, k := range names {
		fmt.Printf("  %-30s %d\n", k, kinds[k])
	}

	registry := model.NewRegistry()
	registry.Rebuild(forest)
	identities := registry.Identities()
	sort.Strings(identities)

	shared := 0
	for _, id := range identities {
		instances := registry.Instances(id)
		if len(instances) < 2 {
			continue
		}
		shared++
		primaryLabel := ""
		for _, n := range instances {
			if n.IsPrimary() {
				primaryLabel = n.Label()
			}
		}
		fmt.Printf("identity %s (%q): %d instances\n", id, primaryLabel, len(instances))
	}
	if shared == 0 {
		fmt.Println("no shared identities")
	}
	return nil
}
