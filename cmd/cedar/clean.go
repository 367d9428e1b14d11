package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cedar/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the cedar diagnostic cache",
	Long:  "Remove the persistent diagnostic cache so every file is rechecked from scratch.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("cedar")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	dir := cache.Dir()
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", dir)
	return nil
}
