package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	seed := flag.Int64("seed", 1, "workload RNG seed")
	maxSize := flag.Int64("max-size", 512, "largest single allocation in bytes")
	flag.Parse()

	m := newModel(*seed, *maxSize)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "heapscope: %v\n", err)
		os.Exit(1)
	}
}
