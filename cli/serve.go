package cli

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"devfolio/admin"
	"devfolio/api"
	"devfolio/common"
	"devfolio/config"
	"devfolio/database"
	"devfolio/web"
)

var serveCmd = &cobra.Command{
	Use:       "serve {app|api}",
	Short:     "Run one server in the foreground",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"app", "api"},
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		db := openDatabase(cfg)

		switch args[0] {
		case "app":
			runApp(db, cfg)
		case "api":
			runAPI(db, cfg)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func openDatabase(cfg config.Config) *gorm.DB {
	db := common.ConnectDb(cfg.DatabaseURL)
	if db == nil {
		log.Fatal("Failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if err := database.SeedCategories(db); err != nil {
		log.Fatal("Failed to seed categories:", err)
	}
	return db
}

func runApp(db *gorm.DB, cfg config.Config) {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY environment variable not set")
	}
	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})
	router.Use(sessions.Sessions("devfolio-session", store))

	router.LoadHTMLGlob("*/views/*.html")
	router.Static("/public", "./public")

	web.NewWebModule(db, cfg).RegisterRoutes(router)
	admin.NewAdminModule(db).RegisterRoutes(router)

	log.Printf("Starting app on port %s...", cfg.AppPort)
	if err := router.Run(":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start app:", err)
	}
}

func runAPI(db *gorm.DB, cfg config.Config) {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	apiModule := api.NewAPIModule(db, cfg)
	apiModule.RegisterRoutes(router)

	log.Printf("Starting api on port %s...", cfg.APIPort)
	if err := http.ListenAndServe(":"+cfg.APIPort, apiModule.Handler(router)); err != nil {
		fmt.Fprintf(os.Stderr, "api server error: %v\n", err)
		os.Exit(1)
	}
}
