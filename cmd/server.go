package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/dexview/internal/accounts"
	"github.com/ziadkadry99/dexview/internal/audit"
	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/db"
	"github.com/ziadkadry99/dexview/internal/metrics"
	"github.com/ziadkadry99/dexview/internal/server"
	"github.com/ziadkadry99/dexview/internal/session"
	"github.com/ziadkadry99/dexview/internal/web"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the catalog web server",
	Long: `Starts the dexview web server. The catalog loads in the background while
the card grid, detail overlay, account API and live session socket are
already being served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}

		lock := flock.New(cfg.LockPath())
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("another dexview server is already using %s", cfg.DataDir)
		}
		defer lock.Unlock()

		database, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		m := metrics.New()
		cache := catalog.NewCache(cfg.CollectionSize)
		loader := catalog.NewLoader(client, cache,
			catalog.WithConcurrency(cfg.FetchConcurrency),
			catalog.WithObserver(m),
		)
		resolver := catalog.NewEvolutionResolver(client, cache)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go loader.Load(ctx)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, database, m.Handler())

		if err := registerAllRoutes(srv, cache, loader, resolver, m, session.Options{
			PageSize:          cfg.PageSize,
			MinViewportHeight: cfg.MinViewportHeight,
			SearchMinChars:    cfg.SearchMinChars,
			NewsEntryIndex:    cfg.NewsEntryIndex,
		}); err != nil {
			return err
		}

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			if err := srv.Shutdown(context.Background()); err != nil {
				log.Printf("server: shutdown: %v", err)
			}
		}()

		fmt.Fprintf(os.Stderr, "dexview server %s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DatabasePath())
		fmt.Fprintf(os.Stderr, "  API: %s (%d records)\n", cfg.APIBaseURL, cfg.CollectionSize)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires up the page, account, activity and session routes.
func registerAllRoutes(srv *server.Server, cache *catalog.Cache, loader *catalog.Loader, resolver *catalog.EvolutionResolver, m *metrics.Metrics, opts session.Options) error {
	site, err := web.New(web.Config{
		Title:          "dexview",
		PageSize:       opts.PageSize,
		SearchMinChars: opts.SearchMinChars,
		NewsEntryIndex: opts.NewsEntryIndex,
	}, cache, loader)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	web.RegisterRoutes(srv.Timed(), site)

	activity := audit.NewStore(srv.Database())
	audit.RegisterRoutes(srv.Timed(), activity)

	svc := accounts.NewService(accounts.NewStore(srv.Database()), accounts.WithActivity(activity))
	accounts.RegisterRoutes(srv.Timed(), svc, cache)

	// The socket outlives any request timeout.
	session.RegisterRoutes(srv.Router(), session.Deps{
		Cache:     cache,
		Evolution: resolver,
		Accounts:  svc,
		Recorder:  m,
		Options:   opts,
	})
	return nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serverCmd)
}
