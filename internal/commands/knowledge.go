package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/finchat/internal/knowledge"
)

// NewKnowledgeCmd creates the command that lists the knowledge table
func NewKnowledgeCmd(flags *globalFlags) *cobra.Command {
	var showAnswers bool

	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "List the questions finchat can answer",
		Long: `List every trigger phrase in match order.

When a message contains more than one trigger, the one listed first wins.
Triggers that contain another trigger are reported at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			kb, err := loadKnowledge(cfg, zap.NewNop(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printKnowledge(cmd.OutOrStdout(), kb, showAnswers)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAnswers, "answers", "a", false, "Show the answer for each trigger")

	return cmd
}

// printKnowledge writes the numbered trigger list and any overlaps
func printKnowledge(w io.Writer, kb *knowledge.Base, showAnswers bool) {
	for i, e := range kb.Entries() {
		fmt.Fprintf(w, "%2d. %s\n", i+1, e.Trigger)
		if showAnswers {
			fmt.Fprintf(w, "    %s\n", e.Answer)
		}
	}

	overlaps := kb.Overlaps()
	if len(overlaps) == 0 {
		return
	}

	fmt.Fprintf(w, "\nOverlapping triggers:\n")
	for _, o := range overlaps {
		if o.Shadowing {
			fmt.Fprintf(w, "  %q comes first, so %q only matches when typed exactly\n", o.Inner, o.Outer)
		} else {
			fmt.Fprintf(w, "  %q contains %q and is listed first\n", o.Outer, o.Inner)
		}
	}
}
