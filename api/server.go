package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mm-relief/lostfound-bot/logmodule"
	"github.com/mm-relief/lostfound-bot/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server is the read-only ops surface for relief coordinators. It serves
// the same persistence façade as the bot, so fallback-tier reports are
// visible here too.
type Server struct {
	server *http.Server
	store  store.LostFoundCore
}

// NewServer new instance of server
func NewServer(core store.LostFoundCore) *Server {
	return &Server{
		store: core,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(cors.Default())

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))

	apiRoute.GET("/information", s.information)

	reportRoute := apiRoute.Group("/reports")
	{
		reportRoute.GET("", s.searchReports)
		reportRoute.GET("/:reportID", s.getReport)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.store.Ping(); err != nil {
		// The bot stays useful through the fallback tier, so a dead
		// primary is degraded, not down.
		log.WithError(err).Warn("primary store ping failed")
		c.JSON(http.StatusOK, gin.H{
			"status":  "DEGRADED",
			"version": viper.GetString("server.version"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"system_version": "LostFound 0.1",
		},
	})
}
