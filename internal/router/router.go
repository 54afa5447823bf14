package router

import (
	"github.com/dilukangelosl/Nft-launchpad/internal/handler"
	"github.com/dilukangelosl/Nft-launchpad/internal/logic"
	"github.com/gin-gonic/gin"
)

func Setup(
	collectionLogic *logic.CollectionLogic,
	roundLogic *logic.RoundLogic,
	issueLogic *logic.IssueLogic,
) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "nft-launchpad",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		collectionHandler := handler.NewCollectionHandler(collectionLogic)
		roundHandler := handler.NewRoundHandler(roundLogic)
		issueHandler := handler.NewIssueHandler(issueLogic)
		allowlistHandler := handler.NewAllowlistHandler()

		// 工厂相关路由
		factory := v1.Group("/factory")
		{
			factory.POST("/address", collectionHandler.ComputeAddress)
		}

		// 集合相关路由
		collections := v1.Group("/collections")
		{
			collections.POST("", collectionHandler.Deploy)
			collections.GET("", collectionHandler.GetCollections)
			collections.GET("/:address", collectionHandler.GetCollection)
			collections.PUT("/:address/base-uri", collectionHandler.SetBaseURI)
			collections.POST("/:address/withdraw", collectionHandler.Withdraw)

			collections.GET("/:address/rounds", roundHandler.GetRounds)
			collections.POST("/:address/rounds", roundHandler.CreateRound)
			collections.GET("/:address/rounds/:index", roundHandler.GetRound)
			collections.PUT("/:address/rounds/:index", roundHandler.UpdateRound)
			collections.PUT("/:address/rounds/:index/active", roundHandler.SetActive)

			collections.POST("/:address/issue", issueHandler.Issue)
			collections.GET("/:address/issues", issueHandler.GetIssueRecords)
			collections.GET("/:address/issues/:wallet", issueHandler.GetWalletRecords)
		}

		// 白名单工具路由
		allowlist := v1.Group("/allowlist")
		{
			allowlist.POST("/root", allowlistHandler.BuildRoot)
			allowlist.POST("/proof", allowlistHandler.BuildProof)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
