// Command music-import adds a background track to the music collection.
// It either uploads a local file to MinIO or records an existing URL:
//
//	music-import -name "Chuva" -file ./chuva.mp3
//	music-import -name "Ninar" -url https://cdn.example/ninar.mp3
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/contosparadormir/contos/internal/config"
	"github.com/contosparadormir/contos/internal/database"
	"github.com/contosparadormir/contos/internal/music"
	"github.com/contosparadormir/contos/internal/storage"
	"github.com/contosparadormir/contos/internal/store"
	"github.com/contosparadormir/contos/pkg/logger"
)

// uploader is the part of storage.MinIOStorage the import needs.
type uploader interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	RemoveFile(ctx context.Context, key string) error
	PublicURL(key string) string
}

type options struct {
	name string
	file string
	url  string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("music-import", flag.ContinueOnError)
	fs.StringVar(&o.name, "name", "", "display name of the track")
	fs.StringVar(&o.file, "file", "", "local audio file to upload to MinIO")
	fs.StringVar(&o.url, "url", "", "existing public URL of the track")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if (o.file == "") == (o.url == "") {
		return o, errors.New("exactly one of -file or -url is required")
	}
	return o, nil
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		logger.Fatalf("music-import: %v", err)
	}
	cfg := config.Load()
	if cfg.Store.Backend != "mongo" || cfg.MongoDB.URI == "" {
		logger.Fatalf("music-import needs STORE_BACKEND=mongo and MONGODB_URI")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("music-import: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	st := store.NewMongoStore(client.Database(cfg.MongoDB.Database))

	var up uploader
	if opts.file != "" {
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Fatalf("music-import: %v", err)
		}
		up = s
	}

	m, err := run(ctx, opts, st, up, time.Now())
	if err != nil {
		logger.Fatalf("music-import: %v", err)
	}
	logger.WithFields(map[string]interface{}{"id": m.ID, "url": m.URL}).Info("music imported")
}

// run publishes the file when one is given and writes the music record. An
// uploaded object is removed again if the record cannot be written.
func run(ctx context.Context, o options, st store.Store, up uploader, now time.Time) (*music.Music, error) {
	if o.file == "" {
		return music.Import(ctx, st, o.name, o.url, now)
	}
	if up == nil {
		return nil, errors.New("file upload requires MinIO configuration")
	}

	f, err := os.Open(o.file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	name := o.name
	if name == "" {
		base := filepath.Base(o.file)
		name = base[:len(base)-len(filepath.Ext(base))]
	}

	key := storage.MusicObjectKey(o.file)
	if err := up.UploadFile(ctx, key, f, info.Size(), storage.ContentType(o.file)); err != nil {
		return nil, fmt.Errorf("upload %s: %w", o.file, err)
	}
	m, err := music.Import(ctx, st, name, up.PublicURL(key), now)
	if err != nil {
		if rerr := up.RemoveFile(ctx, key); rerr != nil {
			logger.Warnf("music-import: could not remove %s after failure: %v", key, rerr)
		}
		return nil, err
	}
	return m, nil
}
