package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/metricslab/hubcheck/internal/cli/output"
	"github.com/metricslab/hubcheck/pkg/check"
	"github.com/spf13/cobra"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "rules [name]",
		Short: "List the validation rules",
		Long: `List every validation rule hubcheck runs against a submission, in
execution order. Path rules run first, then the table rules. With a name
argument, only that rule is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runRules(cmd, name, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json")
	return cmd
}

func runRules(cmd *cobra.Command, name, format string) error {
	rt := getRuntime()
	r := rt.Renderer
	if format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}

	rules := append(check.PathRules(), check.TableRules()...)
	if name != "" {
		filtered := rules[:0]
		for _, rule := range rules {
			if rule.Name == name {
				filtered = append(filtered, rule)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("unknown rule %q", name)
		}
		rules = filtered
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		type ruleInfo struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		infos := make([]ruleInfo, 0, len(rules))
		for _, rule := range rules {
			infos = append(infos, ruleInfo{Name: rule.Name, Description: rule.Description})
		}
		return r.JSON(infos)
	case output.ModeMarkdown:
		r.Println("# Validation rules")
		r.Println("")
		for _, rule := range rules {
			r.Println("- `" + rule.Name + "`: " + rule.Description)
		}
		return nil
	default:
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"rule", "description"})
		for _, rule := range rules {
			tw.AppendRow(table.Row{rule.Name, rule.Description})
		}
		r.Println(tw.Render())
		return nil
	}
}
