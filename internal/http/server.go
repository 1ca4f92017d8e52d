package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/expense"
	"expense-tracker-api/internal/repository"
)

type Server struct {
	cfg        *config.Config
	authSvc    *auth.Service
	expenseSvc *expense.Service
	tokens     *auth.TokenService
	validator  *gojsonschema.Schema
}

func NewServer(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))
	r.Use(logging())

	loader := gojsonschema.NewReferenceLoader("file://" + cfg.ExpenseSchemaPath)
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		panic(err)
	}

	tokens := auth.NewTokenService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	s := &Server{
		cfg:        cfg,
		authSvc:    auth.NewService(repository.NewUserRepo(db), tokens),
		expenseSvc: expense.NewService(repository.NewExpenseRepo(db)),
		tokens:     tokens,
		validator:  schema,
	}

	r.POST("/register", s.register)
	r.POST("/login", s.login)
	r.POST("/auth/refresh", s.refresh)

	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(tokens))
	{
		authorized.POST("/auth/logout", s.logout)
		authorized.POST("/expense", s.createExpense)
		authorized.GET("/expense", s.listExpenses)
		authorized.GET("/expense/summary", s.expenseSummary)
		authorized.GET("/expense/:id", s.getExpense)
		authorized.PATCH("/expense/:id", s.updateExpense)
		authorized.DELETE("/expense/:id", s.deleteExpense)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
