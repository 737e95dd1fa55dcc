package main

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/heap/malloc"
)

// tickMsg drives the workload while autoplay is on.
type tickMsg time.Time

const tickInterval = 100 * time.Millisecond

// Model steps a seeded random workload one operation at a time and
// renders the resulting block map.
type Model struct {
	alloc *malloc.Allocator
	rng   *rand.Rand

	maxSize int64
	live    []malloc.Ref
	ops     int
	lastOp  string
	invErr  error

	playing bool
	width   int
	height  int
}

func newModel(seed, maxSize int64) *Model {
	return &Model{
		alloc:   malloc.New(heap.NewArena(0)),
		rng:     rand.New(rand.NewSource(seed)),
		maxSize: maxSize,
		lastOp:  "press space to step, p to autoplay",
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tickMsg:
		if m.playing {
			m.step()
			return m, tick()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			m.step()
		case "p":
			m.playing = !m.playing
			if m.playing {
				return m, tick()
			}
		case "f":
			// Drain one live block on demand.
			if len(m.live) > 0 {
				m.freeRandom()
				m.afterStep()
			}
		}
	}
	return m, nil
}

// step performs one random allocator operation.
func (m *Model) step() {
	switch op := m.rng.Intn(10); {
	case op < 5 || len(m.live) == 0:
		size := m.rng.Int63n(m.maxSize) + 1
		ref, _, err := m.alloc.Malloc(size)
		if err != nil {
			m.lastOp = "malloc: " + err.Error()
			break
		}
		m.live = append(m.live, ref)
		m.lastOp = opLabel("malloc", size, ref)

	case op < 8:
		m.freeRandom()

	default:
		j := m.rng.Intn(len(m.live))
		size := m.rng.Int63n(m.maxSize) + 1
		ref, _, err := m.alloc.Realloc(m.live[j], size)
		if err != nil {
			m.lastOp = "realloc: " + err.Error()
			break
		}
		m.live[j] = ref
		m.lastOp = opLabel("realloc", size, ref)
	}
	m.afterStep()
}

func (m *Model) freeRandom() {
	j := m.rng.Intn(len(m.live))
	ref := m.live[j]
	m.alloc.Free(ref)
	m.live[j] = m.live[len(m.live)-1]
	m.live = m.live[:len(m.live)-1]
	m.lastOp = opLabel("free", 0, ref)
}

func (m *Model) afterStep() {
	m.ops++
	m.invErr = m.alloc.CheckInvariants()
}
