package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtext/pkg/blob"
	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/server"
)

const defaultAddr = ":8080"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
	blobDir   string
	blobTTL   time.Duration
	timeout   time.Duration
}

// serveCommand creates the serve command running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    defaultAddr,
		blobTTL: blob.DefaultTTL,
		timeout: server.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve previews and exports over HTTP",
		Long: `Serve previews and exports over HTTP.

Transient images are kept in memory, in Redis with --redis-addr so that
several instances can share them, or as files under --blob-dir. Redis and
file entries expire after --blob-ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, args); err != nil {
				return err
			}
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for shared transient images")
	cmd.Flags().StringVar(&opts.blobDir, "blob-dir", "", "directory for transient images kept across restarts")
	cmd.Flags().DurationVar(&opts.blobTTL, "blob-ttl", opts.blobTTL, "lifetime of transient images in Redis")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "request timeout")

	return cmd
}

func newStore(ctx context.Context, opts *serveOpts) (blob.Store, error) {
	logger := loggerFromContext(ctx)
	switch {
	case opts.redisAddr != "" && opts.blobDir != "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "use either --redis-addr or --blob-dir, not both")
	case opts.blobDir != "":
		logger.Debug("using file blob store", "dir", opts.blobDir, "ttl", opts.blobTTL)
		store, err := blob.NewFileStore(opts.blobDir, opts.blobTTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case opts.redisAddr == "":
		logger.Debug("using in-memory blob store")
		return blob.NewMemoryStore(), nil
	}
	logger.Debug("using redis blob store", "addr", opts.redisAddr, "ttl", opts.blobTTL)
	store, err := blob.NewRedisStore(ctx, opts.redisAddr,
		blob.WithTTL(opts.blobTTL),
		blob.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return store, nil
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)
	store, err := newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(store,
		server.WithLogger(logger),
		server.WithTimeout(opts.timeout))

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(opts.addr)))
	printDetail("transient images: %s", storeKind(opts))
	return srv.ListenAndServe(ctx, opts.addr)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// storeKind names the blob backend selected by opts.
func storeKind(opts *serveOpts) string {
	switch {
	case opts.blobDir != "":
		return "files in " + opts.blobDir
	case opts.redisAddr != "":
		return "redis at " + opts.redisAddr
	}
	return "memory"
}
