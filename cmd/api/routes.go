package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	// CORS Middleware
	trusted := app.Config.GetCORSOrigins()
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, o := range trusted {
			if o == origin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := r.Group("/api")
	api.Use(app.IdentityMiddleware())
	{
		interviews := api.Group("/interviews")
		{
			interviews.POST("", app.Handler.CreateInterview)
			interviews.GET("", app.Handler.ListInterviews)
			interviews.GET("/validate", app.Handler.ValidateInterviews)
			interviews.POST("/verify-token", app.Handler.VerifyAccess)
			interviews.GET("/link/:link", app.Handler.GetInterviewByLink)
			interviews.PATCH("/link/:link/status", app.Handler.UpdateInterviewStatus)
			interviews.POST("/link/:link/complete", app.Handler.CompleteInterview)
			interviews.GET("/:id", app.Handler.GetInterview)
			interviews.PUT("/:id", app.Handler.UpdateInterview)
			interviews.PATCH("/:id/questions", app.Handler.UpdateInterviewQuestions)
		}

		plan := api.Group("/user/plan")
		{
			plan.GET("", app.Handler.GetPlan)
			plan.PUT("", app.Handler.UpdatePlan)
		}

		banks := api.Group("/question-banks")
		{
			banks.GET("/job-titles", app.Handler.ListJobTitles)
			banks.GET("/popular", app.Handler.PopularBanks)
			banks.GET("/search", app.Handler.SearchBanks)
			banks.GET("/job-title/:jobTitle", app.Handler.GetBanksByJobTitle)
			banks.GET("/category/:category", app.Handler.GetQuestionsByCategory)
			banks.POST("/generate", app.Handler.GenerateBank)
			banks.POST("/rate/:id", app.Handler.RateBank)
		}

		records := api.Group("/interview-records")
		{
			records.POST("", app.Handler.CreateRecord)
			records.GET("", app.Handler.ListRecords)
			records.GET("/:interviewLink", app.Handler.GetRecordsByLink)
		}
	}

	return r
}
