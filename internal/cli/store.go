package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chronoplot/pkg/errors"
	chronoio "github.com/matzehuels/chronoplot/pkg/io"
	"github.com/matzehuels/chronoplot/pkg/pipeline"
	"github.com/matzehuels/chronoplot/pkg/source/mongo"
)

// storeCommand creates the store management command for timelines kept in
// MongoDB.
func (c *CLI) storeCommand() *cobra.Command {
	var styleFile string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage timelines in the MongoDB store",
	}
	cmd.PersistentFlags().StringVar(&styleFile, "style", "", "style file path (default: ./chronoplot.toml)")

	cmd.AddCommand(c.storePushCommand(&styleFile))
	cmd.AddCommand(c.storeListCommand(&styleFile))
	cmd.AddCommand(c.storeRemoveCommand(&styleFile))

	return cmd
}

// openStore connects to the store configured in the style file.
func (c *CLI) openStore(cmd *cobra.Command, styleFile string) (*mongo.Store, error) {
	style, err := LoadStyle(styleFile)
	if err != nil {
		return nil, err
	}
	if style.Mongo.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"no mongo URI configured: set [mongo] uri in %s", styleFileName)
	}

	database := style.Mongo.Database
	if database == "" {
		database = pipeline.DefaultMongoDatabase
	}
	collection := style.Mongo.Collection
	if collection == "" {
		collection = pipeline.DefaultMongoCollection
	}

	sp := newSpinnerWithContext(cmd.Context(), "Connecting to store...")
	sp.Start()
	store, err := mongo.Connect(cmd.Context(), style.Mongo.URI, database, collection)
	sp.Stop()
	return store, err
}

// storePushCommand creates the "store push" subcommand.
func (c *CLI) storePushCommand(styleFile *string) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Upload a timeline file to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, err := chronoio.Import(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = tl.Title
			}

			store, err := c.openStore(cmd, *styleFile)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(cmd.Context()) }()

			if err := store.Save(cmd.Context(), name, tl); err != nil {
				return err
			}
			printSuccess("Stored %s as %s", args[0], StyleHighlight.Render(name))
			printStats(len(tl.Events), len(tl.Tracks), false)
			printNextStep("Render it", appName+" render --name "+name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "store under this name (default: timeline title)")
	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand(styleFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd, *styleFile)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(cmd.Context()) }()

			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("Store is empty")
				return nil
			}
			for _, name := range names {
				printDetail("%s", name)
			}
			return nil
		},
	}
}

// storeRemoveCommand creates the "store rm" subcommand.
func (c *CLI) storeRemoveCommand(styleFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a stored timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd, *styleFile)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(cmd.Context()) }()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Removed %q", args[0])
			return nil
		},
	}
}
