package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"terolib/internal/auth"
	"terolib/internal/catalog"
	"terolib/internal/library"
	"terolib/internal/models"
	"terolib/internal/store"
	"terolib/internal/theme"
)

// env is what every subcommand operates on.
type env struct {
	kv              store.KV
	locale          string
	defaultPassword string
	close           func()
}

func rootCmd(open func() (*env, error)) *cobra.Command {
	var e *env

	cmd := &cobra.Command{
		Use:           "teroctl",
		Short:         "Administer the TERO portal store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			e, err = open()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e != nil && e.close != nil {
				e.close()
			}
		},
	}

	get := func() *env { return e }
	cmd.AddCommand(treeCmd(get), passwordCmd(get), filesCmd(get), themeCmd(get))
	return cmd
}

// --- tree ---

// docCategory is the export form of a category. A nil SubCategories
// pointer marks a leaf; a pointer to an empty slice an empty group.
type docCategory struct {
	ID            string            `json:"id" yaml:"id"`
	Title         string            `json:"title" yaml:"title"`
	ContentType   string            `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	SubCategories *[]docSubCategory `json:"sub_categories,omitempty" yaml:"sub_categories,omitempty"`
}

type docSubCategory struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	ContentType string `json:"content_type" yaml:"content_type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func toDoc(t catalog.Tree) []docCategory {
	out := make([]docCategory, 0, len(t))
	for _, c := range t {
		dc := docCategory{ID: c.ID, Title: c.Title, ContentType: string(c.ContentType), Description: c.Description}
		if c.IsGroup() {
			subs := make([]docSubCategory, 0, len(c.SubCategories))
			for _, s := range c.SubCategories {
				subs = append(subs, docSubCategory{ID: s.ID, Title: s.Title, ContentType: string(s.ContentType), Description: s.Description})
			}
			dc.SubCategories = &subs
		}
		out = append(out, dc)
	}
	return out
}

func fromDoc(doc []docCategory) catalog.Tree {
	t := make(catalog.Tree, 0, len(doc))
	for _, dc := range doc {
		c := models.Category{ID: dc.ID, Title: dc.Title, ContentType: models.ContentType(dc.ContentType), Description: dc.Description}
		if dc.SubCategories != nil {
			c.SubCategories = make([]models.SubCategory, 0, len(*dc.SubCategories))
			for _, s := range *dc.SubCategories {
				c.SubCategories = append(c.SubCategories, models.SubCategory{
					ID: s.ID, Title: s.Title, ContentType: models.ContentType(s.ContentType), Description: s.Description,
				})
			}
		}
		t = append(t, c)
	}
	return t
}

func treeCmd(get func() *env) *cobra.Command {
	cmd := &cobra.Command{Use: "tree", Short: "Export, import or reset the category tree"}

	var asYAML bool
	export := &cobra.Command{
		Use:   "export",
		Short: "Print the committed tree as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.NewStore(get().kv).Load(cmd.Context())
			if err != nil {
				return err
			}
			doc := toDoc(t)
			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(doc)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
	export.Flags().BoolVar(&asYAML, "yaml", false, "Output YAML instead of JSON")

	imp := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the tree with the contents of a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			var doc []docCategory
			switch strings.ToLower(filepath.Ext(args[0])) {
			case ".yaml", ".yml":
				err = yaml.Unmarshal(raw, &doc)
			default:
				err = json.Unmarshal(raw, &doc)
			}
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			t := fromDoc(doc)
			if err := catalog.NewStore(get().kv).Save(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d categories\n", len(t))
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Drop the stored tree so the built-in default is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catalog.NewStore(get().kv).Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "category tree reset to defaults")
			return nil
		},
	}

	cmd.AddCommand(export, imp, reset)
	return cmd
}

// --- password ---

func passwordCmd(get func() *env) *cobra.Command {
	cmd := &cobra.Command{Use: "password", Short: "Manage the admin credential"}
	cmd.AddCommand(&cobra.Command{
		Use:   "set NEW",
		Short: "Replace the admin password without checking the old one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := get()
			if err := auth.NewCredentialStore(e.kv, e.defaultPassword).Set(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "admin password updated")
			return nil
		},
	})
	return cmd
}

// --- files ---

func filesCmd(get func() *env) *cobra.Command {
	cmd := &cobra.Command{Use: "files", Short: "Inspect resource records"}

	var query string
	var asJSON bool
	list := &cobra.Command{
		Use:   "list SCOPE",
		Short: "List the records of a category or subcategory id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := get()
			reg := library.NewRegistry(e.kv, nil, library.NewDateFormatter(e.locale))
			items, err := reg.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			items = library.Search(items, query)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSIZE\tDATE")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Type, it.Size, it.Date)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "Only records whose name contains this text")
	list.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	scopes := &cobra.Command{
		Use:   "scopes",
		Short: "List every scope with stored records, flagging those missing from the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := get()
			ctx := cmd.Context()
			tree, err := catalog.NewStore(e.kv).Load(ctx)
			if err != nil {
				return err
			}
			inTree := make(map[string]bool)
			for _, id := range tree.ScopeIDs() {
				inTree[id] = true
			}

			reg := library.NewRegistry(e.kv, nil, library.NewDateFormatter(e.locale))
			ids, err := reg.Scopes(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCOPE\tFILES\tSTATUS")
			for _, id := range ids {
				items, err := reg.List(ctx, id)
				if err != nil {
					return err
				}
				status := "ok"
				if !inTree[id] {
					status = "orphaned"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", id, len(items), status)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(list, scopes)
	return cmd
}

// --- theme ---

func themeCmd(get func() *env) *cobra.Command {
	cmd := &cobra.Command{Use: "theme", Short: "Manage the active palette"}
	cmd.AddCommand(&cobra.Command{
		Use:   "apply PRESET",
		Short: "Activate a named preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := theme.NewRegistry(get().kv, nil).ApplyPreset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s (primary %s)\n", args[0], p.Primary)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "presets",
		Short: "List the preset names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range theme.Presets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Name, p.Label)
			}
			return nil
		},
	})
	return cmd
}
