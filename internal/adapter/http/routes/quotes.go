package routes

import (
	"sterkbouw_quotes/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes       = "/quotes"
	PathWorkRequests = "/work-requests"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("/:id/rendering", quoteHandler.RequestRendering)
		quotes.POST("/:id/approval", quoteHandler.ApproveQuote)
	}

	workRequests := rg.Group(PathWorkRequests)
	{
		workRequests.GET("/:id/quote", quoteHandler.GetQuoteByWorkRequest)
	}
}
