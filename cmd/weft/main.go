package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weftlang/weft/core/registry"
	"github.com/weftlang/weft/core/types"
	"github.com/weftlang/weft/runtime/builtin"
	"github.com/weftlang/weft/runtime/engine"
	"github.com/weftlang/weft/runtime/loader"
)

func main() {
	var registryDir string

	rootCmd := &cobra.Command{
		Use:           "weft",
		Short:         "Apply prompt decorators to text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&registryDir, "registry", "", "Directory of decorator definition files (default: builtin set)")

	rootCmd.AddCommand(applyCmd(&registryDir))
	rootCmd.AddCommand(listCmd(&registryDir))
	rootCmd.AddCommand(validateCmd(&registryDir))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func applyCmd(registryDir *string) *cobra.Command {
	var (
		file       string
		stdVersion string
		context    []string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Transform a prompt by applying its decorator invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := openRegistry(*registryDir)
			if err != nil {
				return err
			}

			text, err := readPrompt(file)
			if err != nil {
				return err
			}

			ctx, err := parseContext(context)
			if err != nil {
				return err
			}

			result := engine.Apply(text, snap, engine.Options{
				StandardVersion: stdVersion,
				Context:         ctx,
			})

			printDiagnostics(result.Diagnostics)
			if result.Aborted() {
				return fmt.Errorf("composition aborted")
			}

			fmt.Println(result.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Prompt file ('-' for stdin)")
	cmd.Flags().StringVar(&stdVersion, "std-version", engine.DefaultStandardVersion, "Active standard version")
	cmd.Flags().StringArrayVar(&context, "context", nil, "Context key=value for Conditional predicates (repeatable)")
	return cmd
}

func listCmd(registryDir *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available decorators",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := openRegistry(*registryDir)
			if err != nil {
				return err
			}

			summaries := snap.List()
			if format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}

			for _, s := range summaries {
				fmt.Printf("%-16s %-8s %-10s %s\n", s.Name, s.Version, s.Category, s.Description)
				for _, p := range s.Parameters {
					required := ""
					if p.Required {
						required = " (required)"
					}
					fmt.Printf("    %s: %s%s  %s\n", p.Name, p.Type, required, p.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func validateCmd(registryDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a registry directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *registryDir == "" {
				return fmt.Errorf("--registry is required for validate")
			}
			snap, diags, err := loader.Load(*registryDir)
			printDiagnostics(diags)
			if err != nil {
				return err
			}
			fmt.Printf("ok: %d decorators\n", snap.Len())
			return nil
		},
	}
}

// openRegistry loads the registry directory, or falls back to the builtin
// set when none is given.
func openRegistry(dir string) (*registry.Snapshot, error) {
	if dir == "" {
		return builtin.Snapshot(), nil
	}
	snap, diags, err := loader.Load(dir)
	printDiagnostics(diags)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func readPrompt(file string) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseContext(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	ctx := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --context %q, expected key=value", pair)
		}
		ctx[key] = value
	}
	return ctx, nil
}

func printDiagnostics(diags []types.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
