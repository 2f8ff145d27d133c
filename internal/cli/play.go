package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/pipeline"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// Move-class colors, shared by value with the rendered state graph:
// green for moves toward a solution, red for moves away or into dead
// ends, blue for the start marker.
var (
	stylePositive = lipgloss.NewStyle().Foreground(lipgloss.Color("#009d77"))
	styleNegative = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff443a"))
	styleNeutral  = lipgloss.NewStyle().Foreground(colorGray)
	styleStart    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B7BFF"))
)

// Board cell styles. Pieces are colored by shape so the goal piece
// stands out and sliding lanes read at a glance.
var (
	styleCellGoal  = lipgloss.NewStyle().Background(lipgloss.Color("203")).Foreground(lipgloss.Color("235"))
	styleCellWide  = lipgloss.NewStyle().Background(colorCyan).Foreground(lipgloss.Color("235"))
	styleCellTall  = lipgloss.NewStyle().Background(colorBlue).Foreground(lipgloss.Color("235"))
	styleCellSmall = lipgloss.NewStyle().Background(colorYellow).Foreground(lipgloss.Color("235"))
	styleCellFree  = lipgloss.NewStyle().Foreground(colorDim)
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	maxStates int
	noCache   bool
}

// playCommand creates the play command for interactive solving.
func (c *CLI) playCommand() *cobra.Command {
	opts := playOpts{maxStates: pipeline.DefaultMaxStates}

	cmd := &cobra.Command{
		Use:   "play <board>",
		Short: "Play a board interactively in the terminal",
		Long: `Play a board interactively in the terminal.

Every legal slide out of the current position is listed and graded:
green moves step toward a solution, red moves step away. Ask for a
hint, undo freely, or let the auto-solver walk the shortest path.

  gridlock play classic
  gridlock play puzzles/my_board.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxStates, "max-states", opts.maxStates, "maximum states to explore")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPlay solves the board, then hands the graph to the interactive
// model.
func (c *CLI) runPlay(ctx context.Context, arg string, opts playOpts) error {
	p, err := loadPuzzleArg(arg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exploring %s...", p.Name))
	spinner.Start()
	g, err := runner.Solve(ctx, pipeline.Options{
		Puzzle:    p,
		MaxStates: opts.maxStates,
		Logger:    c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	model := newPlayModel(g)
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = prog.Run()
	return err
}

// played records one applied move so it can be undone. The labeling
// snapshot restores piece letters exactly as they stood before the
// move.
type played struct {
	move   board.Move
	from   solver.StateID
	labels map[board.Piece]byte
}

// autoTickMsg advances the auto-solver by one move.
type autoTickMsg struct{}

func autoTick() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg {
		return autoTickMsg{}
	})
}

// playModel is the bubbletea model for interactive play. The solved
// graph is read-only; all play state lives in the model.
//
// States store canonical boards without piece identity, so the model
// tracks display letters itself: labels maps each current placement to
// its letter and is re-keyed move by move.
type playModel struct {
	graph   *solver.Graph
	current solver.StateID
	history []played
	labels  map[board.Piece]byte
	cursor  int
	auto    bool
	height  int
}

func newPlayModel(g *solver.Graph) playModel {
	m := playModel{graph: g, current: g.StartID(), height: 24}
	m.labels = labelPieces(m.state().Board)
	return m
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) state() *solver.State {
	st, err := m.graph.State(m.current)
	if err != nil {
		// Current always comes from this graph.
		panic(fmt.Sprintf("play: state %d missing: %v", m.current, err))
	}
	return st
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case autoTickMsg:
		return m.autoStep()
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.state()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(st.Edges)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(st.Edges) {
			m = m.apply(st.Edges[m.cursor])
		}
	case "h":
		if best, err := m.graph.BestNeighbor(m.current); err == nil {
			m = m.apply(best)
		}
	case "a":
		m.auto = !m.auto
		if m.auto && !st.Solved {
			return m, autoTick()
		}
	case "u":
		m = m.undo()
	case "r":
		m.current = m.graph.StartID()
		m.history = nil
		m.labels = labelPieces(m.state().Board)
		m.cursor = 0
		m.auto = false
	}
	return m, nil
}

// autoStep applies the best move and schedules the next tick until the
// board is solved or auto mode is switched off.
func (m playModel) autoStep() (tea.Model, tea.Cmd) {
	if !m.auto {
		return m, nil
	}
	if m.state().Solved {
		m.auto = false
		return m, nil
	}
	best, err := m.graph.BestNeighbor(m.current)
	if err != nil {
		m.auto = false
		return m, nil
	}
	m = m.apply(best)
	if m.state().Solved {
		m.auto = false
		return m, nil
	}
	return m, autoTick()
}

func (m playModel) apply(e solver.Edge) playModel {
	m.history = append(m.history, played{move: e.Move, from: m.current, labels: m.labels})
	m.labels = relabel(m.labels, e.Move)
	m.current = e.To
	m.cursor = 0
	return m
}

func (m playModel) undo() playModel {
	if len(m.history) == 0 {
		return m
	}
	last := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.current = last.from
	m.labels = last.labels
	m.cursor = 0
	m.auto = false
	return m
}

func (m playModel) View() string {
	st := m.state()
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gridlock — " + m.graph.Puzzle().Name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ select  ⏎ slide  h hint  a auto  u undo  r reset  q quit"))
	b.WriteString("\n\n")

	b.WriteString(renderBoard(st.Board, m.graph.Puzzle().Goal, m.labels))
	b.WriteString("\n")
	b.WriteString(m.statusLine(st))
	b.WriteString("\n\n")

	if st.Solved {
		b.WriteString(stylePositive.Bold(true).Render(fmt.Sprintf("Solved in %d moves!", len(m.history))))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("u undo · r play again · q quit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.moveList(st))
	return b.String()
}

// statusLine summarizes where the play stands.
func (m playModel) statusLine(st *solver.State) string {
	parts := []string{fmt.Sprintf("%d moves", len(m.history))}
	switch {
	case st.Solved:
		parts = append(parts, stylePositive.Render("solved"))
	case st.ToSolution.Reachable():
		parts = append(parts, fmt.Sprintf("%d from solution", int(st.ToSolution)))
	default:
		parts = append(parts, styleNegative.Render("dead end — no path to a solution"))
	}
	if m.current == m.graph.StartID() {
		parts = append(parts, styleStart.Render("start"))
	}
	if m.auto {
		parts = append(parts, StyleHighlight.Render("auto"))
	}
	return "  " + StyleDim.Render(strings.Join(parts, " · "))
}

// moveList renders every legal slide, cursor first column, class mark
// second.
func (m playModel) moveList(st *solver.State) string {
	var b strings.Builder
	for i, e := range st.Edges {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		mark, style := m.classMark(st, e)
		line := fmt.Sprintf("%s%s %s", cursor, mark, e.Move)
		if i == m.cursor {
			b.WriteString(style.Bold(true).Render(line))
		} else {
			b.WriteString(style.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// classMark grades an edge for display.
func (m playModel) classMark(st *solver.State, e solver.Edge) (string, lipgloss.Style) {
	to, err := m.graph.State(e.To)
	if err != nil {
		return "·", styleNeutral
	}
	switch solver.Classify(st.ToSolution, to.ToSolution) {
	case solver.MovePositive:
		return "+", stylePositive
	case solver.MoveNegative:
		return "−", styleNegative
	default:
		return "·", styleNeutral
	}
}

// labelPieces assigns display letters to the board's pieces in storage
// order: A..Z, then a..z.
func labelPieces(bd board.Board) map[board.Piece]byte {
	labels := make(map[board.Piece]byte, len(bd.Pieces))
	for i, p := range bd.Pieces {
		labels[p] = boardLabel(i)
	}
	return labels
}

// relabel carries piece letters across a slide. The entry keyed by the
// moved piece's old placement is re-keyed to its destination; every
// other letter stays where it is. The input map is not modified.
func relabel(labels map[board.Piece]byte, mv board.Move) map[board.Piece]byte {
	moved := board.Piece{Size: mv.Size, At: mv.From}
	next := make(map[board.Piece]byte, len(labels))
	for p, l := range labels {
		if p == moved {
			p.At = mv.Dest()
		}
		next[p] = l
	}
	return next
}

// renderBoard draws the position as colored blocks, topmost row first.
// Each cell is two characters wide; the piece's label letter keeps
// adjacent same-colored pieces distinguishable and stays with the
// piece as it slides.
func renderBoard(bd board.Board, goal board.Goal, labels map[board.Piece]byte) string {
	cells := make(map[board.Cell]byte, bd.Width*bd.Height)
	styles := make(map[board.Cell]lipgloss.Style, bd.Width*bd.Height)
	for _, p := range bd.Pieces {
		style := pieceStyle(p.Size, goal.Size)
		label, ok := labels[p]
		if !ok {
			label = '?'
		}
		for y := p.At.Y; y < p.At.Y+p.Size.H; y++ {
			for x := p.At.X; x < p.At.X+p.Size.W; x++ {
				cell := board.Cell{X: x, Y: y}
				cells[cell] = label
				styles[cell] = style
			}
		}
	}

	var b strings.Builder
	for y := bd.Height - 1; y >= 0; y-- {
		b.WriteString("  ")
		for x := 0; x < bd.Width; x++ {
			cell := board.Cell{X: x, Y: y}
			if label, ok := cells[cell]; ok {
				b.WriteString(styles[cell].Render(string(label) + " "))
			} else {
				b.WriteString(styleCellFree.Render("· "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pieceStyle picks a cell style by shape. Goal-sized pieces get the
// hero color.
func pieceStyle(s, goal board.Size) lipgloss.Style {
	switch {
	case s == goal:
		return styleCellGoal
	case s.W > s.H:
		return styleCellWide
	case s.H > s.W:
		return styleCellTall
	default:
		return styleCellSmall
	}
}

// boardLabel mirrors the ASCII-art labeling: A..Z then a..z.
func boardLabel(i int) byte {
	switch {
	case i < 26:
		return byte('A' + i)
	case i < 52:
		return byte('a' + i - 26)
	default:
		return '#'
	}
}
