package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/snipcopy/internal/page"
)

const listPreview = 48

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the snippets in the snippets file",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runList(cmd, v) },
	}

	f := cmd.Flags()
	f.String("snippets", defaultSnippetsPath(), "path to the snippets YAML file")
	f.Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)

	return cmd
}

func runList(cmd *cobra.Command, v *viper.Viper) error {
	doc, err := page.Load(v.GetString("snippets"))
	if err != nil {
		return err
	}
	snippets := doc.Snippets()
	out := cmd.OutOrStdout()

	if v.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snippets)
	}

	if len(snippets) == 0 {
		fmt.Fprintln(out, "No snippets.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ID\tMESSAGE ID\tMESSAGE\tTEXT\n")
	for _, s := range snippets {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.MessageID, s.Message, quote(s.Text, listPreview))
	}
	return tw.Flush()
}
