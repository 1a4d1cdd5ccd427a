package main

import (
	"flag"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/infotraining/quote_syncer/pkg/config"
	"github.com/infotraining/quote_syncer/pkg/market"
	"github.com/infotraining/quote_syncer/pkg/service"
	"github.com/infotraining/quote_syncer/pkg/storage"
	"github.com/infotraining/quote_syncer/pkg/utils"
	"github.com/infotraining/quote_syncer/pkg/xerror"
	"github.com/infotraining/quote_syncer/pkg/xmetrics"

	log "github.com/sirupsen/logrus"
)

var (
	configPath  string
	flags       = config.Default()
	showVersion bool
)

func init() {
	flag.BoolVar(&showVersion, "version", false, "The program's version")
	flag.StringVar(&configPath, "config", "", "config file: .yaml, .yml, .json or .toml")
	flags.RegisterFlags(flag.CommandLine)
	flag.Parse()
}

// loadConfig reads the config file if any, explicit flags take precedence
// over it.
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return flags, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	cfg.Overlay(flag.CommandLine, &flags)
	return cfg, nil
}

func newDB(cfg *config.Config) (storage.DB, error) {
	switch cfg.DbType {
	case "sqlite3":
		return storage.NewSQLiteDB(cfg.DbDir)
	case "mysql":
		return storage.NewMysqlDB(cfg.DbHost, cfg.DbPort, cfg.DbUser, cfg.DbPassword)
	case "postgresql":
		return storage.NewPostgresqlDB(cfg.DbHost, cfg.DbPort, cfg.DbUser, cfg.DbPassword)
	default:
		return nil, xerror.Errorf(xerror.Config, "unknown db_type: %s", cfg.DbType)
	}
}

func main() {
	if showVersion {
		printVersion()
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config failed: %+v", err)
	}
	if err := cfg.Valid(); err != nil {
		log.Fatalf("invalid config: %+v", err)
	}

	// Step 1: init log
	if err := utils.InitLog(utils.LogOptions{
		Level:        cfg.LogLevel,
		Filename:     cfg.LogFilename,
		AlsoToStderr: cfg.LogAlsoToStderr,
		Fields:       log.Fields{"service": "quote_syncer"},
	}); err != nil {
		log.Fatalf("init log failed: %+v", err)
	}
	log.Infof("quote syncer start, version: %s", getVersion())

	// Step 2: open quote db
	db, err := newDB(&cfg)
	if err != nil {
		log.Fatalf("new quote db error: %+v", err)
	}
	defer db.Close()

	// Step 3: init metrics
	if err := xmetrics.InitGlobal("quote-syncer"); err != nil {
		log.Fatalf("init metrics failed: %+v", err)
	}

	// Step 4: build the exchange, every listed stock gets the recorder,
	// metrics and audit observers
	auditFilename := ""
	if cfg.LogFilename != "" {
		auditFilename = cfg.LogFilename + ".audit"
	}
	auditLogger := utils.NewAuditLogger(auditFilename)
	defer auditLogger.Sync()

	recorder := market.NewQuoteRecorder(db)
	exchange := market.NewExchange()
	autowire := market.NewAutowire(recorder, market.NewMetricsObserver(), market.NewAuditLog(auditLogger))
	exchange.Subscribe(autowire.Ref())
	listingRecorder := recorder.ListingObserver()
	exchange.Subscribe(listingRecorder.Ref())

	for _, listing := range cfg.Listings {
		if _, err := exchange.List(listing.Symbol, listing.Price); err != nil {
			log.Fatalf("list stock %s failed: %+v", listing.Symbol, err)
		}
	}

	// Step 5: http service start
	httpService := service.NewHttpServer(cfg.Host, cfg.Port, db, exchange)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := httpService.Start(); err != nil {
			log.Fatalf("http service start error: %+v", err)
		}
	}()
	time.Sleep(1 * time.Second) // only for check http service start, if not, will log.Fatal

	// Step 6: start monitor
	monitor := NewMonitor(exchange)
	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Start()
	}()

	// Step 7: serve signals, SIGHUP dumps the stats
	signalMux := NewSignalMux(func(sig os.Signal) bool {
		if sig == syscall.SIGHUP {
			monitor.dump()
			return false
		}
		return true
	})
	signalMux.Serve()

	// Step 8: stop and wait for all task done
	monitor.Stop()
	if err := httpService.Stop(); err != nil {
		log.Errorf("http service stop error: %+v", err)
	}
	wg.Wait()

	autowire.Close()
	listingRecorder.Close()
	log.Info("quote syncer stopped")
}
