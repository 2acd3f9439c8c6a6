// Command migrate rewrites the data documents into the current schema. Unless
// --no-backup is given it keeps a .bak copy of each file it touches.
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/fred1268/go-clap/clap"

	"github.com/mo-amir99/premium-video-server/internal/features/user"
	"github.com/mo-amir99/premium-video-server/internal/features/video"
	"github.com/mo-amir99/premium-video-server/internal/store"
	"github.com/mo-amir99/premium-video-server/pkg/config"
	"github.com/mo-amir99/premium-video-server/pkg/logger"
)

type flags struct {
	DataDir  string `clap:"--data-dir,-d"`
	NoBackup bool   `clap:"--no-backup"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := flags{DataDir: cfg.DataDir}
	if _, err := clap.Parse(os.Args[1:], &opts); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	appLogger.Info("Starting data migration...", slog.String("data_dir", opts.DataDir))

	if err := migrate(opts.DataDir, !opts.NoBackup, appLogger); err != nil {
		appLogger.Error("Migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("Data migration completed successfully!")
}

func migrate(dataDir string, withBackup bool, logger *slog.Logger) error {
	videosPath := filepath.Join(dataDir, store.VideosFile)
	usersPath := filepath.Join(dataDir, store.UsersFile)

	if withBackup {
		for _, path := range []string{videosPath, usersPath} {
			if err := backup(path); err != nil {
				return err
			}
		}
	}

	videos, err := store.NewDocument(videosPath, video.EmptyCollection, logger)
	if err != nil {
		return err
	}
	// Decoding already coerces legacy values and drops unknown keys.
	if err := videos.Rewrite(func(*video.Collection) error { return nil }); err != nil {
		return fmt.Errorf("rewrite videos: %w", err)
	}

	users, err := store.NewDocument(usersPath, user.EmptyIndex, logger)
	if err != nil {
		return err
	}
	var fixed int
	err = users.Rewrite(func(idx *user.Index) error {
		for id, rec := range *idx {
			if normalizeRecord(&rec) {
				fixed++
			}
			(*idx)[id] = rec
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rewrite users: %w", err)
	}

	logger.Info("Documents rewritten",
		slog.Int("videos", len(videos.Read())),
		slog.Int("users", len(users.Read())),
		slog.Int("users_fixed", fixed),
	)
	return nil
}

// normalizeRecord drops duplicate unlocks while keeping first-seen order.
func normalizeRecord(rec *user.Record) bool {
	if rec.UnlockedVideos == nil {
		rec.UnlockedVideos = []int64{}
		return true
	}

	seen := make([]int64, 0, len(rec.UnlockedVideos))
	for _, id := range rec.UnlockedVideos {
		if !slices.Contains(seen, id) {
			seen = append(seen, id)
		}
	}
	changed := len(seen) != len(rec.UnlockedVideos)
	rec.UnlockedVideos = seen
	return changed
}

func backup(path string) error {
	src, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer src.Close()

	dst, err := os.Create(path + ".bak")
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy backup: %w", err)
	}
	return dst.Close()
}
