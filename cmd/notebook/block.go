// ABOUTME: Block commands for adding, removing, moving, editing, and toggling blocks.
// ABOUTME: Removing blocks offers a short undo window on interactive terminals.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/harper/notebook/internal/undo"
	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage the blocks of a page",
	Long: `Manage the blocks of a page.

Blocks are addressed by their 1-based position as shown by 'notebook page show'.`,
}

var blockAddCmd = &cobra.Command{
	Use:   "add <page> <text|todo|calendar> [content]",
	Short: "Append a block to a page",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		blockType, err := models.ParseBlockType(args[1])
		if err != nil {
			return err
		}
		content := ""
		if len(args) == 3 {
			content = args[2]
		}

		if _, ok := store.AddBlock(page.ID, blockType, content); !ok {
			return fmt.Errorf("failed to add block to page %s", page.ID.String()[:6])
		}
		fmt.Println(ui.Success(fmt.Sprintf("Added %s block at position %d", blockType, len(page.Blocks)+1)))
		return nil
	},
}

// promptRegistrar receives the undo offer made when blocks are deleted.
type promptRegistrar struct {
	offers chan offer
}

type offer struct {
	pending undo.Pending
	undo    func() bool
}

func (r *promptRegistrar) Offer(p undo.Pending, fn func() bool) {
	select {
	case r.offers <- offer{pending: p, undo: fn}:
	default:
	}
}

func (r *promptRegistrar) Withdraw() {}

func interactive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// awaitUndo waits for Enter until the offer expires and runs the undo if it
// arrives in time.
func awaitUndo(o offer) bool {
	fmt.Print(ui.FormatUndoPrompt(o.pending.Message(), time.Until(o.pending.ExpiresAt).Round(time.Second)))

	lines := make(chan struct{}, 1)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		if _, err := reader.ReadString('\n'); err == nil {
			lines <- struct{}{}
		}
	}()

	select {
	case <-lines:
		return o.undo()
	case <-time.After(time.Until(o.pending.ExpiresAt)):
		fmt.Println()
		return false
	}
}

var blockRmCmd = &cobra.Command{
	Use:   "rm <page> <position>...",
	Short: "Remove blocks",
	Long: `Remove one or more blocks by position, e.g. 'notebook block rm abc123 1,3'.

On an interactive terminal the delete can be undone by pressing Enter
before the undo window closes.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		noUndo, _ := cmd.Flags().GetBool("no-undo")

		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		positions, err := parsePositions(args[1:])
		if err != nil {
			return err
		}

		reg := &promptRegistrar{offers: make(chan offer, 1)}
		coord := store.UndoCoordinator()
		coord.SetRegistrar(reg)
		defer coord.SetRegistrar(nil)

		removed := store.DeleteBlocks(page.ID, positions)
		if removed == 0 {
			return fmt.Errorf("no blocks at the given positions")
		}

		if noUndo || !interactive() {
			fmt.Println(ui.Success(fmt.Sprintf("Removed %d block(s)", removed)))
			return nil
		}

		select {
		case o := <-reg.offers:
			if awaitUndo(o) {
				fmt.Println(ui.Success("Restored"))
				return nil
			}
		default:
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed %d block(s)", removed)))
		return nil
	},
}

var blockMvCmd = &cobra.Command{
	Use:   "mv <page> <positions> <to>",
	Short: "Move blocks",
	Long: `Move blocks so they sit before the block currently at position <to>.
Use the block count plus one to move them to the end.

Example: 'notebook block mv abc123 1,2 5' moves the first two blocks after the fourth.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		from, err := parsePositions([]string{args[1]})
		if err != nil {
			return err
		}
		to, err := parsePositions([]string{args[2]})
		if err != nil || len(to) != 1 {
			return fmt.Errorf("invalid destination %q", args[2])
		}

		moved := store.MoveBlocks(page.ID, from, to[0])
		if moved == 0 {
			fmt.Println("Nothing moved.")
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("Moved %d block(s)", moved)))
		return nil
	},
}

var blockEditCmd = &cobra.Command{
	Use:   "edit <page> <position> <content>",
	Short: "Replace the text of a block",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		block, err := blockAt(page, args[1])
		if err != nil {
			return err
		}

		if !store.EditBlockContent(page.ID, block.ID, args[2]) {
			return fmt.Errorf("block %s is a %s block and has no text", args[1], block.Type)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Updated block %s", args[1])))
		return nil
	},
}

var blockToggleCmd = &cobra.Command{
	Use:   "toggle <page> <position>",
	Short: "Toggle a todo block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := resolvePage(args[0])
		if err != nil {
			return err
		}
		block, err := blockAt(page, args[1])
		if err != nil {
			return err
		}

		if !store.ToggleBlock(page.ID, block.ID) {
			return fmt.Errorf("block %s is a %s block, not todo", args[1], block.Type)
		}
		state := "done"
		if block.IsCompleted {
			state = "not done"
		}
		fmt.Println(ui.Success(fmt.Sprintf("Marked %q %s", strings.TrimSpace(block.Content), state)))
		return nil
	},
}

func init() {
	blockRmCmd.Flags().Bool("no-undo", false, "skip the undo prompt")

	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockRmCmd)
	blockCmd.AddCommand(blockMvCmd)
	blockCmd.AddCommand(blockEditCmd)
	blockCmd.AddCommand(blockToggleCmd)
	rootCmd.AddCommand(blockCmd)
}
