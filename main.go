package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"prism/artwork"
	"prism/common/types"
	"prism/common/utils"
	"prism/conf"
	"prism/database"
	"prism/ethclient"
	"prism/indexer"
	"prism/ipfs"
	"prism/log"
	"prism/node"
	"prism/router"
	"prism/service"
)

const shutdownTimeout = 15 * time.Second

// @title       Prism relay API
// @version     1.0
// @description Mints hex color artworks and pays royalties to the owners of the color tokens.
func main() {
	cfg, err := conf.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err = log.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer log.Sync()
	log.InitAlert(cfg.AlertToken, cfg.AlertChatId)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, cleanup, err := setup(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer cleanup()

	srv := &http.Server{Addr: cfg.ServerAddr, Handler: engine}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("listening on %s, chain %s (%d)", cfg.ServerAddr, cfg.ChainName, cfg.ChainId)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	})
	if err := g.Wait(); err != nil {
		log.Errorf("Server failed to run: %v", err)
	}
}

// setup builds every client from cfg and wires them into the router.
func setup(ctx context.Context, cfg *conf.Config) (*gin.Engine, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*gin.Engine, func(), error) {
		cleanup()
		return nil, nil, err
	}

	key, err := utils.LoadSigningKey(cfg.HexKey)
	if err != nil {
		return fail(err)
	}
	log.Infof("relayer account %s", key.Address)

	chain, err := node.Dial(ctx, cfg.ChainUrl, cfg.ReadTimeout)
	if err != nil {
		return fail(err)
	}
	backend, err := ethclient.Dial(ctx, cfg.ChainUrl)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, backend.Close)

	var locker ethclient.NonceLocker = ethclient.NewLocalLocker()
	if cfg.RedisUrl != "" {
		rl, err := ethclient.NewRedisLocker(ctx, cfg.RedisUrl, string(key.Address), cfg.NonceLockTimeout)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = rl.Close() })
		locker = rl
	}
	minter, err := ethclient.NewMinter(ctx, backend, locker, key, ethclient.MinterConfig{
		Collection:      types.Address(cfg.CollectionAddress),
		Value:           cfg.MintPrice,
		SubmitTimeout:   cfg.SubmitTimeout,
		ConfirmTimeout:  cfg.ConfirmTimeout,
		ReceiptInterval: cfg.ReceiptInterval,
	})
	if err != nil {
		return fail(err)
	}

	fallback, err := types.ParseAddress(cfg.FallbackAddress)
	if err != nil {
		return fail(err)
	}
	httpClient := &http.Client{}
	index := indexer.New(indexer.Config{
		BaseUrl:  cfg.IndexerUrl,
		ApiKey:   cfg.AlchemyApiKey,
		Contract: cfg.ColorContract,
		PageSize: cfg.IndexerPageSize,
		Timeout:  cfg.ReadTimeout,
		Backoff:  cfg.RetryBackoff,
	}, httpClient)

	orch := &service.Orchestrator{
		Sender:     chain,
		Recipients: service.NewRecipientResolver(index, fallback),
		Images:     service.NewImageFetcher(httpClient, cfg.FetchTimeout),
		Publisher:  service.NewArtifactPublisher(ipfs.New(cfg.IpfsUploadUrl, cfg.UploadTimeout, httpClient)),
		Minter:     minter,
		Gateway:    cfg.IpfsGateway,
		Explorer:   cfg.ExplorerTxUrl,
		Observer: func(from, to service.State, err error) {
			if err != nil {
				log.Debugf("relay %s -> %s: %v", from, to, err)
				return
			}
			log.Debugf("relay %s -> %s", from, to)
		},
	}

	services := router.Services{Signer: string(key.Address)}
	if cfg.MysqlDsn != "" {
		db, err := database.Open(cfg.MysqlDsn, cfg.ResetDB)
		if err != nil {
			return fail(err)
		}
		services.Journal = service.NewJournal(db)
	} else {
		log.Warnf("MYSQL_DSN not set, mints are not journaled")
	}
	// a nil *Journal must not reach the store interface
	if services.Journal != nil {
		services.Relay = service.NewRelayService(orch, services.Journal)
	} else {
		services.Relay = service.NewRelayService(orch, nil)
	}

	var model service.ImageModel
	if cfg.GenAIApiKey != "" {
		gen, err := artwork.NewGenerator(ctx, cfg.GenAIApiKey, cfg.GenAIModel, "", cfg.GenerateTimeout)
		if err != nil {
			return fail(err)
		}
		model = gen
	} else {
		log.Warnf("GENAI_API_KEY not set, artwork generation is disabled")
	}
	services.Artwork = service.NewArtworkService(model)

	gin.SetMode(gin.ReleaseMode)
	return router.New(services), cleanup, nil
}
