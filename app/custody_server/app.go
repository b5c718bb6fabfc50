package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	formatter "github.com/bluexlab/logrus-formatter"
	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/cologi/hubcustody/pkg/config"
	"github.com/cologi/hubcustody/pkg/custody_server/api"
	"github.com/cologi/hubcustody/pkg/custody_server/auth"
	"github.com/cologi/hubcustody/pkg/custody_server/connector"
	"github.com/cologi/hubcustody/pkg/custody_server/custody"
	"github.com/cologi/hubcustody/pkg/custody_server/directory"
	"github.com/cologi/hubcustody/pkg/custody_server/handoff"
	"github.com/cologi/hubcustody/pkg/custody_server/hub"
	"github.com/cologi/hubcustody/pkg/custody_server/keylock"
	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/cologi/hubcustody/pkg/custody_server/storage"
	"github.com/cologi/hubcustody/pkg/custody_server/storage/filestore"
	"github.com/cologi/hubcustody/pkg/custody_server/storage/postgres"
	"github.com/cologi/hubcustody/pkg/custody_server/trust"
	"github.com/cologi/hubcustody/pkg/util"
	"github.com/gobuffalo/pop"
	"github.com/gobuffalo/pop/logging"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const appName string = "custody-server"

type CLI struct {
	Server struct {
	} `cmd:"" help:"Run the server"`
	Migrate struct {
		Path string `short:"p" long:"path" help:"Path to the migration files" type:"existingdir" default:"migrations"`
	} `cmd:"" help:"Migrate the database"`
	APIKey struct {
		Application string `arg:"" help:"Name of the application the key is issued to"`
	} `cmd:"" name:"api-key" help:"Generate an API key and print its configuration entry"`
	Config string `short:"c" long:"config" help:"Path to the configuration file" type:"existingfile" default:"config.yaml"`
}

type Config struct {
	// Database is optional. B/L records are kept under BLDir when it is absent.
	Database *util.PostgresDatabaseConfig `yaml:"database"`
	BLDir    string                       `yaml:"bl_dir"`
	Server   struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Trust struct {
		Server string `yaml:"server"`
	} `yaml:"trust"`
	HubManagement struct {
		Server string `yaml:"server"`
	} `yaml:"hub_management"`
	Connector struct {
		Server string `yaml:"server"`
	} `yaml:"connector"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	// Redis is optional. Locks are process local when it is absent.
	Redis       *keylock.RedisConfig `yaml:"redis"`
	APIKeys     []auth.APIKey        `yaml:"api_keys"`
	RateLimit   api.RateLimitConfig  `yaml:"rate_limit"`
	SkipBLCheck bool                 `yaml:"skip_bl_check"`
	Directory   struct {
		Parties []model.Party `yaml:"parties"`
		Hubs    []model.Hub   `yaml:"hubs"`
	} `yaml:"directory"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.BLDir == "" {
		c.BLDir = "bl"
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 30 * time.Second
	}
}

type App struct{}

func (a *App) Run() {
	formatter.InitLogger()

	var cli CLI
	ctx := kong.Parse(&cli, kong.UsageOnError())
	switch ctx.Command() {
	case "server":
		a.runServer(cli)
	case "migrate":
		a.runMigrate(cli)
	case "api-key <application>":
		a.runAPIKey(cli)
	default:
	}
}

func loadConfig(path string) Config {
	var appConfig Config
	if err := config.FromFile(path, &appConfig); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		os.Exit(128)
	}
	return appConfig
}

func (a *App) runServer(cli CLI) {
	ctx := context.Background()
	appConfig := loadConfig(cli.Config)

	if endpoint := appConfig.OTLPEndpoint; endpoint != "" {
		exporter, err := otlp_util.InitExporter(
			otlp_util.WithContext(ctx),
			otlp_util.WithEndPoint(endpoint),
			otlp_util.WithServiceName(appName),
			otlp_util.WithInSecure(),
			otlp_util.WithErrorHandler(func(err error) {
				logrus.Warnf("OTLP error: %v", err)
			}),
		)
		if err != nil {
			logrus.Errorf("failed to initialize OTLP exporter: %v", err)
			os.Exit(128)
		}
		defer func() { _ = exporter.Shutdown(ctx) }()
	}

	var blStorage storage.BLRecordStorage
	if appConfig.Database != nil {
		dbStorage, err := postgres.NewStorageWithConfig(*appConfig.Database)
		if err != nil {
			logrus.Errorf("failed to create database connection: %v", err)
			os.Exit(128)
		}
		blStorage = dbStorage
	} else {
		fileStorage, err := filestore.NewFileStorage(appConfig.BLDir)
		if err != nil {
			logrus.Errorf("failed to open B/L directory: %v", err)
			os.Exit(128)
		}
		blStorage = fileStorage
	}

	var locker keylock.Locker = keylock.NewLocalLocker()
	if appConfig.Redis != nil {
		redisLocker, err := keylock.NewRedisLockerWithConfig(*appConfig.Redis)
		if err != nil {
			logrus.Errorf("failed to connect to redis: %v", err)
			os.Exit(128)
		}
		locker = redisLocker
	}

	dir := directory.NewStaticDirectory(appConfig.Directory.Parties, appConfig.Directory.Hubs)
	trustClient := trust.NewRestClient(appConfig.Trust.Server, appConfig.HTTPTimeout)
	planClient := hub.NewRestPlanClient(appConfig.HubManagement.Server, appConfig.HTTPTimeout)
	connectorClient := connector.NewRestClient(appConfig.Connector.Server, appConfig.HTTPTimeout)

	custodian := custody.NewCustodian(blStorage, trustClient, dir,
		custody.WithLocker(locker),
		custody.WithSkipBLCheck(appConfig.SkipBLCheck),
	)
	processor := handoff.NewProcessor(planClient, custodian, connectorClient, dir, handoff.WithProcessorLocker(locker))
	planner := handoff.NewRoutePlanner(planClient, locker)

	apiServer, err := api.NewAPIWithController(
		auth.NewStaticAPIKeyAuthenticator(appConfig.APIKeys),
		custodian,
		processor,
		planner,
		appConfig.RateLimit,
		net.JoinHostPort(appConfig.Server.Host, strconv.Itoa(appConfig.Server.Port)),
	)
	if err != nil {
		logrus.Errorf("failed to create API server: %v", err)
		os.Exit(128)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()

		if err := apiServer.Run(); err != nil {
			logrus.Errorf("failed to run API server: %v", err)
			os.Exit(1)
		}
	}(wg)
	logrus.Infof("%s listening on %s:%d", appName, appConfig.Server.Host, appConfig.Server.Port)

	// listen for the stop signal
	<-ctx.Done()

	// Restore default behavior on the signals we are listening to
	stop()
	logrus.Info("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Close(ctx); err != nil {
		logrus.Warnf("failed to close API server: %v", err)
		os.Exit(1)
	}

	wg.Wait()
}

func (a *App) runMigrate(cli CLI) {
	appConfig := loadConfig(cli.Config)
	if appConfig.Database == nil {
		logrus.Errorf("no database configured, nothing to migrate")
		os.Exit(128)
	}

	// set up the logger
	pop.SetLogger(func(lvl logging.Level, s string, args ...interface{}) {
		switch lvl {
		case logging.Debug:
			logrus.Debugf(s, args...)
		case logging.Info:
			logrus.Infof(s, args...)
		case logging.Warn:
			logrus.Warnf(s, args...)
		case logging.Error:
			logrus.Errorf(s, args...)
		case logging.SQL:
			// Do nothing
		}
	})

	cd := pop.ConnectionDetails{
		Dialect:  "postgres",
		Database: appConfig.Database.Database,
		Host:     appConfig.Database.Host,
		Port:     strconv.Itoa(appConfig.Database.Port),
		User:     appConfig.Database.User,
		Password: appConfig.Database.Password,
	}
	conn, err := pop.NewConnection(&cd)
	if err != nil {
		logrus.Errorf("failed to create connection: %v", err)
		os.Exit(128)
	}

	if err = conn.Dialect.CreateDB(); err != nil {
		logrus.Warnf("failed to create database: %v", err)
	}

	migrator, err := pop.NewFileMigrator(cli.Migrate.Path, conn)
	if err != nil {
		logrus.Errorf("failed to create migrator: %v", err)
		os.Exit(128)
	}
	// Remove SchemaPath to prevent migrator try to dump schema.
	migrator.SchemaPath = ""

	if err = migrator.Up(); err != nil {
		logrus.Errorf("failed to migrate: %v", err)
		os.Exit(1)
	}
}

// runAPIKey prints a new key once. Only the hashed entry goes into the configuration file.
func (a *App) runAPIKey(cli CLI) {
	key, keyString, err := auth.NewAPIKey(cli.APIKey.Application)
	if err != nil {
		logrus.Errorf("failed to generate API key: %v", err)
		os.Exit(1)
	}

	entry, err := yaml.Marshal(map[string][]auth.APIKey{"api_keys": {key}})
	if err != nil {
		logrus.Errorf("failed to encode API key: %v", err)
		os.Exit(1)
	}
	fmt.Printf("API key (give it to %s): %s\n\n%s", cli.APIKey.Application, keyString, entry)
}
