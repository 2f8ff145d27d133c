package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/library"
)

// boardsCommand creates the boards command group.
func (c *CLI) boardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "List, inspect and check board definitions",
	}

	cmd.AddCommand(c.boardsListCommand())
	cmd.AddCommand(c.boardsShowCommand())
	cmd.AddCommand(c.boardsValidateCommand())

	return cmd
}

// boardsListCommand creates the "boards list" subcommand.
func (c *CLI) boardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

			rows := [][]string{}
			for _, doc := range library.Builtins() {
				p, err := doc.Puzzle()
				if err != nil {
					return fmt.Errorf("builtin %s: %w", doc.Name, err)
				}
				rows = append(rows, []string{
					doc.Name,
					fmt.Sprintf("%dx%d", p.Board.Width, p.Board.Height),
					fmt.Sprintf("%d", len(p.Board.Pieces)),
					fmt.Sprintf("%s at %s", p.Goal.Size, p.Goal.At),
					doc.Description,
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Name", "Grid", "Pieces", "Goal", "Description").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return StyleHighlight
					}
					return StyleValue
				})

			fmt.Println(t.Render())
			printNextStep("Play", "gridlock play <name>")
			return nil
		},
	}
}

// boardsShowCommand creates the "boards show" subcommand.
func (c *CLI) boardsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <board>",
		Short: "Show a board's layout and goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPuzzleArg(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(p.Name))
			printNewline()
			fmt.Print(renderBoard(p.Board, p.Goal, labelPieces(p.Board)))
			printNewline()
			printKeyValue("Grid", fmt.Sprintf("%dx%d", p.Board.Width, p.Board.Height))
			printKeyValue("Pieces", fmt.Sprintf("%d", len(p.Board.Pieces)))
			printKeyValue("Goal", fmt.Sprintf("%s at %s", p.Goal.Size, p.Goal.At))
			if p.Board.Solved(p.Goal) {
				printKeyValue("State", StyleSuccess.Render("already solved"))
			}
			return nil
		},
	}
}

// boardsValidateCommand creates the "boards validate" subcommand.
func (c *CLI) boardsValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.toml>",
		Short: "Check a board definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := board.LoadPuzzle(args[0])
			if err != nil {
				printError("Invalid board definition")
				return err
			}
			printSuccess("Valid board: %s", p.Name)
			printDetail("%d pieces on a %dx%d grid, goal %s at %s",
				len(p.Board.Pieces), p.Board.Width, p.Board.Height, p.Goal.Size, p.Goal.At)
			return nil
		},
	}
}
