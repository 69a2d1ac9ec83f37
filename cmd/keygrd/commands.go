package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jenian/keygrd/internal/analyzer"
	"github.com/jenian/keygrd/internal/config"
	"github.com/jenian/keygrd/internal/inspect"
	"github.com/jenian/keygrd/internal/localefile"
	"github.com/jenian/keygrd/internal/output"
	"github.com/jenian/keygrd/internal/tree"
	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var opts output.Options
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [source]",
		Short: "Report required keys missing from each locale",
		Long: "Extract the keys the source references under the namespace and report, per locale, " +
			"the keys whose dotted path does not resolve, followed by a count summary.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Source = args[0]
			}

			usages, err := collectUsages(cfg, root.root)
			if err != nil {
				return err
			}
			locales, err := loadLocales(cfg, root.root)
			if err != nil {
				return err
			}

			result := analyzer.Analyze(usages, cfg.Namespace, locales, cfg)
			if err := output.Format(cmd.OutOrStdout(), result, opts); err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			if (strict || opts.Silent) && output.HasIssues(result, opts) {
				return errIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&opts.Silent, "silent", false, "Silent mode (exit code only, implies --strict)")
	cmd.Flags().BoolVar(&opts.ShowUnused, "unused", false, "Also report locale keys under the namespace that no source references")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 1 when any key is missing")
	return cmd
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	var opts output.Options

	cmd := &cobra.Command{
		Use:   "extract [source]",
		Short: "List the required keys referenced by the source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Source = args[0]
			}

			usages, err := collectUsages(cfg, root.root)
			if err != nil {
				return err
			}
			return output.FormatKeys(cmd.OutOrStdout(), requiredKeys(usages), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")
	return cmd
}

func newInspectCmd(root *rootOptions) *cobra.Command {
	var jsonOutput, diff bool

	cmd := &cobra.Command{
		Use:   "inspect [subtree]",
		Short: "Show the top-level shape of a subtree in each locale",
		Long: "Resolve the subtree (default: the namespace) in every locale and list its immediate " +
			"children in document order. --diff compares the structure of the first two locales.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			subtree := cfg.Namespace
			if len(args) > 0 {
				subtree = args[0]
			}

			locales, err := loadLocales(cfg, root.root)
			if err != nil {
				return err
			}

			shapes := make([]inspect.Shape, 0, len(locales))
			for _, l := range locales {
				shapes = append(shapes, inspect.Inspect(l, subtree))
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				return output.WriteJSON(w, shapes)
			}
			inspect.Render(w, shapes)

			if diff {
				if len(shapes) < 2 {
					return fmt.Errorf("--diff needs at least two locales")
				}
				fmt.Fprintln(w)
				if d := inspect.Diff(shapes[0], shapes[1]); d != "" {
					fmt.Fprint(w, d)
				} else {
					fmt.Fprintf(w, "%s and %s have the same structure.\n", shapes[0].Label, shapes[1].Label)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&diff, "diff", false, "Diff the structure of the first two locales")
	return cmd
}

func newFindCmd(root *rootOptions) *cobra.Command {
	var opts output.Options

	cmd := &cobra.Command{
		Use:   "find <key>",
		Short: "Find the dotted path of a key name anywhere in each locale",
		Long: "Search every locale tree depth-first, in document order, for the first entry named <key>. " +
			"Array items appear as [i] in the reported path.",
		Args: cobra.MatchAll(cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return fmt.Errorf("key must not be empty")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			locales, err := loadLocales(cfg, root.root)
			if err != nil {
				return err
			}

			key := args[0]
			results := make([]output.FindResult, 0, len(locales))
			for _, l := range locales {
				r := output.FindResult{Label: l.Label, Key: key}
				if path, ok := tree.Find(l.Tree, key); ok {
					r.Found = true
					r.Path = path
					if n, ok := tree.Lookup(l.Tree, path); ok {
						r.Resolves = true
						r.Value = n.Summary()
					}
					if p, ok := tree.Parent(l.Tree, path); ok {
						r.Parent = p.Summary()
					}
				}
				results = append(results, r)
			}
			return output.FormatFind(cmd.OutOrStdout(), results, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")
	return cmd
}

func newParityCmd(root *rootOptions) *cobra.Command {
	var opts output.Options
	var all, strict bool

	cmd := &cobra.Command{
		Use:   "parity",
		Short: "Compare the keys of the first locale with every other locale",
		Long: "List the leaf keys under the namespace (or the whole tree with --all) that exist in " +
			"the first configured locale but not in another, and the reverse.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			locales, err := loadLocales(cfg, root.root)
			if err != nil {
				return err
			}
			if len(locales) < 2 {
				return fmt.Errorf("parity needs at least two locales, %d configured", len(locales))
			}

			prefix := cfg.Namespace
			if all {
				prefix = ""
			}

			w := cmd.OutOrStdout()
			inSync := true
			for i, other := range locales[1:] {
				onlyA, onlyB := analyzer.Parity(locales[0].Tree, other.Tree, prefix)
				r := output.ParityResult{
					Prefix: prefix,
					LabelA: locales[0].Label,
					LabelB: other.Label,
					OnlyA:  onlyA,
					OnlyB:  onlyB,
				}
				inSync = inSync && r.InSync()

				if i > 0 && !opts.JSON {
					fmt.Fprintln(w)
				}
				if err := output.FormatParity(w, r, opts); err != nil {
					return err
				}
			}

			if strict && !inSync {
				return errIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&all, "all", false, "Compare whole trees instead of the namespace")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 1 when the locales differ")
	return cmd
}

func newInitConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a " + config.FileName + " file in the root directory",
		Long:  "Creates a " + config.FileName + " file with the default configuration in the root directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(root.root, config.FileName)
			if err := config.WriteTemplate(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number of keygrd",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// loadLocales loads every configured locale; the first failure is fatal
func loadLocales(cfg *config.Config, root string) ([]analyzer.Locale, error) {
	return localefile.NewLoader(root, cfg.Locales).LoadAll()
}

// requiredKeys returns the distinct keys of usages, sorted
func requiredKeys(usages []analyzer.KeyUsage) []string {
	seen := make(map[string]bool)
	keys := []string{}
	for _, u := range usages {
		if u.InIgnoredPath || seen[u.Key] {
			continue
		}
		seen[u.Key] = true
		keys = append(keys, u.Key)
	}
	sort.Strings(keys)
	return keys
}
