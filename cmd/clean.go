package cmd

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gdshowcase/gd-showcase/config"
	"github.com/gdshowcase/gd-showcase/database"
	"github.com/gdshowcase/gd-showcase/database/repo/levels"
	"github.com/gdshowcase/gd-showcase/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var cleanPrune bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Find level records referencing missing media objects",
	Long:  "Probes the storage backend for every media object the database references and reports the ones that no longer exist. With --prune, the dangling image rows are removed.",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
		runClean()
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanPrune, "prune", false, "remove image rows whose storage object is missing")
	rootCmd.AddCommand(cleanCmd)
}

func runClean() {
	cfg := config.Get()

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Fatal error: failed to connect to database: %v", err)
	}
	defer database.Close(db)

	factory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Fatal error: failed to initialize storage: %v", err)
	}
	provider := factory.GetDefault()

	repo := levels.NewRepository(db)
	records, err := repo.All()
	if err != nil {
		log.Fatalf("Fatal error: failed to load level records: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(8)

	var mu sync.Mutex
	missingByLevel := make(map[string][]string)

	for _, level := range records {
		for _, storageID := range level.MediaStorageIDs() {
			level, storageID := level, storageID
			group.Go(func() error {
				exists, err := provider.Exists(ctx, storageID)
				if err != nil {
					return err
				}
				if !exists {
					mu.Lock()
					missingByLevel[level.LevelID] = append(missingByLevel[level.LevelID], storageID)
					mu.Unlock()
				}
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		log.Fatalf("Fatal error: storage probe failed: %v", err)
	}

	if len(missingByLevel) == 0 {
		log.Printf("Checked %d level records, all referenced media objects exist", len(records))
		return
	}

	for levelID, missing := range missingByLevel {
		log.Printf("Level %s references %d missing media object(s): %v", levelID, len(missing), missing)
	}

	if !cleanPrune {
		log.Println("Run again with --prune to remove the dangling image rows")
		return
	}

	pruned := 0
	for _, level := range records {
		missing := missingByLevel[level.LevelID]
		if len(missing) == 0 {
			continue
		}
		if err := repo.PruneImages(level, missing); err != nil {
			log.Printf("Warning: failed to prune image rows for level %s: %v", level.LevelID, err)
			continue
		}
		pruned += len(missing)
	}
	log.Printf("Pruned %d dangling image row(s)", pruned)
}
