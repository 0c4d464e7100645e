package cmd

import (
	"log"

	"github.com/gdshowcase/gd-showcase/config"
	"github.com/gdshowcase/gd-showcase/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations and exit",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()

		db, err := database.NewDB(config.Get())
		if err != nil {
			log.Fatalf("Fatal error: failed to connect to database: %v", err)
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Fatal error: migration failed: %v", err)
		}
		log.Println("Database migration completed")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
