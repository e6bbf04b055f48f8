package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/pensionproj/internal/compare"
	"github.com/rgehrsitz/pensionproj/internal/config"
	"github.com/rgehrsitz/pensionproj/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	var with, format, outFile string
	var transforms []string
	var listTemplates, debugMode bool

	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a scenario against what-if alternatives",
		Long: `Compare a scenario against what-if alternatives.

Alternatives come from built-in templates (--with) or ad-hoc transforms
(--transform name:key=value,...). Run with --list-templates to see the templates.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				fmt.Fprintf(cmd.OutOrStdout(), "Transforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}

			templates := transform.ParseTemplateList(with)
			if len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("nothing to compare: pass --with or --transform")
			}

			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			set, err := compare.NewCompareEngine(newEngine(debugMode)).Compare(cmd.Context(), req, compare.CompareOptions{
				Templates:  templates,
				Transforms: transforms,
				ConfigPath: args[0],
			})
			if err != nil {
				return err
			}

			var out string
			switch strings.ToLower(format) {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(set)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			default:
				return fmt.Errorf("unknown comparison format %q (valid: table, csv, json)", format)
			}
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, []byte(out), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outFile, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote comparison to %s\n", outFile)
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&with, "with", "", "Comma-separated template names, e.g. postpone_1yr,growth_low")
	cmd.Flags().StringArrayVar(&transforms, "transform", nil, "Ad-hoc transform spec (repeatable), e.g. set_retirement_age:age=63")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in templates and transforms")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the comparison to a file instead of stdout")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug output for detailed calculations")
	return cmd
}
