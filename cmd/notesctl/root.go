package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/2beens/stickynotes/internal/config"
	"github.com/2beens/stickynotes/internal/db"
	"github.com/2beens/stickynotes/internal/logging"
	"github.com/2beens/stickynotes/internal/notes"
	"github.com/2beens/stickynotes/internal/notes/storage"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	env        string
	logLevel   string

	storage   string
	key       string
	filePath  string
	redisHost string
	redisPort string
	pgHost    string
	pgPort    string
	pgDB      string
	pgUser    string
}

// app is what every sub command works with, opened in the root pre-run.
type app struct {
	store  *notes.Store
	editor *notes.Editor
	out    io.Writer
	in     io.Reader

	rdb    *redis.Client
	dbPool *pgxpool.Pool
}

func (a *app) close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "notesctl",
		Short:         "Manage sticky notes from the terminal",
		Long:          `notesctl reads and writes the same notes collection the notes service uses, straight from its storage.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(logging.GetLevel(opts.logLevel))

			if err := opts.applyConfig(cmd); err != nil {
				return err
			}

			a.out = cmd.OutOrStdout()
			a.in = cmd.InOrStdin()
			if err := a.open(cmd.Context(), opts); err != nil {
				a.close()
				return err
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "optional TOML config file, storage settings are read from it")
	flags.StringVar(&opts.env, "env", "development", "config environment [dev | development | prod | production]")
	flags.StringVar(&opts.logLevel, "log-level", "error", "log level")
	flags.StringVar(&opts.storage, "storage", "file", "storage backend [file | redis | postgres]")
	flags.StringVar(&opts.key, "key", storage.DefaultKey, "name of the durable notes entry")
	flags.StringVar(&opts.filePath, "file", "./data/tasks.json", "notes file path, for the file storage")
	flags.StringVar(&opts.redisHost, "redis-host", "localhost", "redis host")
	flags.StringVar(&opts.redisPort, "redis-port", "6379", "redis port")
	flags.StringVar(&opts.pgHost, "pg-host", "localhost", "postgres host")
	flags.StringVar(&opts.pgPort, "pg-port", "5432", "postgres port")
	flags.StringVar(&opts.pgDB, "pg-db", "sticky_notes", "postgres database name")
	flags.StringVar(&opts.pgUser, "pg-user", "", "postgres user")

	rootCmd.AddCommand(
		newAddCmd(a),
		newEditCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newToggleCmd(a),
		newDeleteCmd(a),
		newPurgeCmd(a),
	)

	return rootCmd
}

// applyConfig fills the storage settings from the config file. Flags set
// explicitly on the command line win.
func (o *rootOptions) applyConfig(cmd *cobra.Command) error {
	if o.configPath == "" {
		return nil
	}

	cfg, err := config.Load(o.env, o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, val string) {
		if !flags.Changed(name) && val != "" {
			*dst = val
		}
	}
	set("storage", &o.storage, cfg.StorageBackend)
	set("key", &o.key, cfg.StorageKey)
	set("file", &o.filePath, cfg.NotesFilePath)
	set("redis-host", &o.redisHost, cfg.RedisHost)
	set("redis-port", &o.redisPort, cfg.RedisPort)
	set("pg-host", &o.pgHost, cfg.PostgresHost)
	set("pg-port", &o.pgPort, cfg.PostgresPort)
	set("pg-db", &o.pgDB, cfg.PostgresDBName)
	set("pg-user", &o.pgUser, cfg.PostgresUser)

	return nil
}

func (a *app) open(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	backend, err := storage.ParseBackend(opts.storage)
	if err != nil {
		return err
	}

	params := storage.Params{
		Backend:  backend,
		Key:      opts.key,
		FilePath: opts.filePath,
	}

	switch backend {
	case storage.BackendRedis:
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(opts.redisHost, opts.redisPort),
			Password: os.Getenv("NOTES_REDIS_PASS"),
			DB:       0, // use default DB
		})
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		params.Redis = a.rdb
	case storage.BackendPostgres:
		a.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     opts.pgHost,
			DBPort:     opts.pgPort,
			DBName:     opts.pgDB,
			DBUser:     opts.pgUser,
			DBPassword: os.Getenv("NOTES_POSTGRES_PASS"),
			MaxConns:   2,
		})
		if err != nil {
			return fmt.Errorf("new db pool: %w", err)
		}
		params.DB = a.dbPool
	}

	notesStorage, err := storage.New(ctx, params)
	if err != nil {
		return err
	}
	log.Debugf("notes storage: %s", backend)

	a.store, err = notes.NewStore(ctx, notesStorage, nil)
	if err != nil {
		return err
	}
	a.editor = notes.NewEditor(a.store, nil)

	return nil
}
