package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/memkit/heap/malloc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	allocStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	freeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

func opLabel(op string, size int64, ref malloc.Ref) string {
	if size > 0 {
		return fmt.Sprintf("%s(%d) -> %#x", op, size, ref)
	}
	return fmt.Sprintf("%s(%#x)", op, ref)
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("heapscope"))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  op %d  %s", m.ops, m.lastOp)))
	b.WriteString("\n\n")

	b.WriteString(m.renderBlockBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderStats())

	if m.invErr != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("INVARIANT VIOLATION: " + m.invErr.Error()))
	}

	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render("space: step  p: autoplay  f: free one  q: quit"))
	return b.String()
}

// renderBlockBar draws the heap as one proportional bar, allocated blocks
// in red, free blocks in green, each block at least one cell wide.
func (m *Model) renderBlockBar() string {
	width := m.width - 4
	if width < 10 {
		width = 76
	}

	heapSize := m.alloc.Stats().HeapSize
	if heapSize == 0 {
		return statusStyle.Render("(heap empty)")
	}

	var bar strings.Builder
	m.alloc.Walk(func(b malloc.Block) bool {
		cells := int(b.Size * int64(width) / heapSize)
		if cells < 1 {
			cells = 1
		}
		seg := strings.Repeat("█", cells)
		if b.Free {
			bar.WriteString(freeStyle.Render(seg))
		} else {
			bar.WriteString(allocStyle.Render(seg))
		}
		return true
	})
	return bar.String()
}

func (m *Model) renderStats() string {
	s := m.alloc.Stats()
	lines := []string{
		fmt.Sprintf("heap %d B   live blocks %d   free %d blocks / %d B",
			s.HeapSize, len(m.live), s.FreeBlocks, s.FreeBytes),
		fmt.Sprintf("grow %d (%d B)   split %d   coalesce %d fwd / %d bwd",
			s.GrowCalls, s.GrowBytes, s.SplitCount, s.CoalesceForward, s.CoalesceBackward),
		fmt.Sprintf("realloc %d (%d in place, %d moved)",
			s.ReallocCalls, s.ReallocInPlace, s.ReallocMoved),
	}
	return statusStyle.Render(strings.Join(lines, "\n"))
}
