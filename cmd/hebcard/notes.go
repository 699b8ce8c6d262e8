package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/hebcard/internal/store"
)

var notesListTag string

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Inspect saved notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved notes in the order they were first saved",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		notes, err := st.List(cmd.Context(), notesListTag)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "GUID\tHEBREW\tTAGS\tURL")
		for _, n := range notes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.GUID, firstLine(n.Hebrew()), strings.Join(n.Tags, ","), n.URL)
		}
		return tw.Flush()
	},
}

var notesShowCmd = &cobra.Command{
	Use:   "show <guid>",
	Short: "Print one note's fields and tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.Get(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no note with guid %s", args[0])
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "GUID: %s\nURL: %s\n", n.GUID, n.URL)
		if err := printFields(out, n.Fields[:]); err != nil {
			return err
		}
		tags := lo.Map(n.Tags, func(t string, _ int) string { return "#" + t })
		_, err = fmt.Fprintf(out, "Tags: %s\n", strings.Join(tags, " "))
		return err
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesListCmd, notesShowCmd)

	notesListCmd.Flags().StringVar(&notesListTag, "tag", "", "Only list notes with this tag")
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.DBPath)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
