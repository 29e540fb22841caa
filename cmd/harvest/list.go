package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	for _, info := range deps.Registry.List() {
		fmt.Fprintf(deps.Stdout, "%-10s %-30s %s\n", info.ID, info.Name, info.BaseURL)
	}
	return nil
}
