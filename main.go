package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"budgetmonitor/collections"
	"budgetmonitor/handlers"
	"budgetmonitor/services"
)

func main() {
	app := pocketbase.New()

	// Campus/college registry: built-in tables, optionally extended from a
	// YAML file.
	registry, err := services.LoadRegistry(os.Getenv("BUDGETMON_REGISTRY"))
	if err != nil {
		log.Fatalf("load registry: %v", err)
	}

	// One read cache for the whole process, passed to the handlers that use
	// it. Dashboard entries live for a minute; every write path invalidates.
	cache := services.NewCache(time.Minute)

	registerAdminCommands(app, registry)

	// Create collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app, registry)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Transactions ─────────────────────────────────────────
		se.Router.GET("/api/ext/transactions", handlers.HandleTransactionList(app))
		se.Router.POST("/api/ext/transactions", handlers.HandleTransactionCreate(app, registry, cache))
		se.Router.GET("/api/ext/transactions/{id}", handlers.HandleTransactionView(app))
		se.Router.PATCH("/api/ext/transactions/{id}", handlers.HandleTransactionUpdate(app, registry, cache))
		se.Router.POST("/api/ext/transactions/{id}/{action}", handlers.HandleTransactionTransition(app, cache))

		// ── Bulk import ──────────────────────────────────────────
		se.Router.GET("/api/ext/import/shapes", handlers.HandleShapeList(app))
		se.Router.POST("/api/ext/import/preview", handlers.HandleImportPreview(app))
		se.Router.POST("/api/ext/import/commit", handlers.HandleImportCommit(app, registry, cache))
		se.Router.POST("/api/ext/import/errors", handlers.HandleImportErrorReport(app))
		se.Router.POST("/api/ext/import/json", handlers.HandleBackupRestore(app, cache))

		// ── Dashboard & exports ──────────────────────────────────
		se.Router.GET("/api/ext/dashboard", handlers.HandleDashboard(app, cache))
		se.Router.GET("/api/ext/export/excel", handlers.HandleRegisterExport(app))
		se.Router.GET("/api/ext/export/pdf", handlers.HandleSummaryPDF(app, cache))
		se.Router.GET("/api/ext/export/json", handlers.HandleBackupDump(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// registerAdminCommands adds the offline maintenance subcommands to the
// PocketBase CLI: dump/restore of the transactions collection and the
// administrative bulk wipe.
func registerAdminCommands(app *pocketbase.PocketBase, registry *services.Registry) {
	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "dump [file]",
		Short: "Write a JSON dump of all transactions to a file (or stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bootstrap(); err != nil {
				return err
			}
			out := os.Stdout
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create dump file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return services.DumpTransactions(app, out)
		},
	})

	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "restore <file>",
		Short: "Recreate transactions from a JSON dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bootstrap(); err != nil {
				return err
			}
			collections.Setup(app, registry)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open dump file: %w", err)
			}
			defer f.Close()

			restored, err := services.RestoreTransactions(app, f)
			if err != nil {
				return err
			}
			log.Printf("restored %d transactions", restored)
			return nil
		},
	})

	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "wipe",
		Short: "Delete every transaction record (irreversible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bootstrap(); err != nil {
				return err
			}
			deleted, err := services.WipeTransactions(app)
			if err != nil {
				return err
			}
			log.Printf("deleted %d transactions", deleted)
			return nil
		},
	})
}
