package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/mm-relief/lostfound-bot/api"
	"github.com/mm-relief/lostfound-bot/bot"
	"github.com/mm-relief/lostfound-bot/external/objectstore"
	"github.com/mm-relief/lostfound-bot/external/telegram"
	"github.com/mm-relief/lostfound-bot/schema"
	"github.com/mm-relief/lostfound-bot/store"
	"github.com/mm-relief/lostfound-bot/utils"
)

var (
	server *api.Server
	ormDB  *gorm.DB
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("lostfound")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var configFile string

	runCtx, stop := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Bot is preparing to shutdown")

		stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown ops api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	utils.InitI18NBundle()
	log.WithField("prefix", "init").Info("Initialized i18n bundle")

	// The primary store may legitimately be down at boot; reports then live
	// in the fallback tier until it returns, so a failed connection is not
	// fatal.
	fallback := store.NewFallbackStore()
	if err := utils.WithRetry("postgres", func() error {
		var err error
		ormDB, err = gorm.Open("postgres", viper.GetString("orm.conn"))
		return err
	}); err != nil {
		log.WithError(err).Warn("primary store unreachable, running on the fallback tier")
		ormDB = nil
	}

	if ormDB != nil {
		if err := schema.EnsureSchema(ormDB); err != nil {
			log.Panic(err)
		}
		log.WithField("prefix", "init").Info("Ensured reports schema")
	}

	reportStore := store.NewLostFoundStore(ormDB, fallback)

	// Object storage for photo mirroring; optional.
	var photos bot.PhotoStore
	if viper.GetString("storage.bucket") != "" {
		if err := utils.WithRetry("object storage", func() error {
			s3store, err := objectstore.NewS3Store(runCtx)
			if err == nil {
				photos = s3store
			}
			return err
		}); err != nil {
			log.WithError(err).Warn("object storage unavailable, keeping photo file handles only")
		}
	}

	transport, err := telegram.NewClient(viper.GetString("bot.token"))
	if err != nil {
		log.Panic(err)
	}

	var volunteers []bot.VolunteerTeam
	if err := viper.UnmarshalKey("volunteers", &volunteers); err != nil {
		log.WithError(err).Warn("invalid volunteer roster in config")
	}

	engine := bot.NewEngine(transport, reportStore, photos, bot.Config{
		Channel:    viper.GetString("bot.channel"),
		Volunteers: volunteers,
	})
	log.WithField("prefix", "init").Info("Initialized conversation engine")

	// Ops api server
	server = api.NewServer(reportStore)
	go func() {
		if err := server.Run(":" + viper.GetString("server.port")); err != nil {
			log.Error(err)
		}
	}()
	log.WithField("prefix", "init").Info("Initialized ops api server")

	defer reportStore.Close()
	log.Fatal(transport.Run(runCtx, engine))
}
