package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/hebcard/internal/app"
	"github.com/hyperifyio/hebcard/internal/card"
	"github.com/hyperifyio/hebcard/internal/store"
)

var translateOpts struct {
	json bool
	save bool
}

var translateCmd = &cobra.Command{
	Use:   "translate <url>",
	Short: "Fetch an entry page and print its card fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		url := args[0]

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := app.New(cfg)
		if err != nil {
			return err
		}

		var rec card.Record
		if translateOpts.save {
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			n := &store.Note{URL: url}
			if rec, err = a.Populate(ctx, n, url); err != nil {
				return err
			}
			if err := st.Save(ctx, n); err != nil {
				return fmt.Errorf("save note: %w", err)
			}
			log.Info().Str("guid", n.GUID).Str("hebrew", n.Hebrew()).Msg("note saved")
		} else {
			res, err := a.Convert(ctx, url)
			if err != nil {
				return err
			}
			rec = res.Record
		}

		if translateOpts.json {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}
		return printFields(cmd.OutOrStdout(), rec.Fields())
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().BoolVar(&translateOpts.json, "json", false, "Print the record as JSON")
	translateCmd.Flags().BoolVar(&translateOpts.save, "save", false, "Store the result as a note in the database")
}

func printFields(w io.Writer, fields []string) error {
	for i, v := range fields {
		if _, err := fmt.Fprintf(w, "%s: %s\n", card.FieldNames[i], v); err != nil {
			return err
		}
	}
	return nil
}
