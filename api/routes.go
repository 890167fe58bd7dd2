package api

import (
	"net/http"
	"time"

	"github.com/checkmarble/asset-lists/usecases"
	"github.com/checkmarble/asset-lists/utils"

	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	timeout "github.com/vearne/gin-timeout"
)

const maxRequestBodySize = 64 * 1024

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.Timeout(
		timeout.WithTimeout(duration),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg("Request timeout"),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases, auth utils.Authentication) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/version", handleVersion(uc))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router := r.Group("",
		timeoutMiddleware(conf.DefaultTimeout),
		limits.RequestSizeLimiter(maxRequestBodySize),
		auth.Middleware,
	)

	router.GET("/asset-lists", handleListAssetLists(uc))
	router.POST("/asset-lists", handleCreateAssetList(uc))
	router.GET("/asset-lists/:list_id", handleGetAssetList(uc))
	router.PATCH("/asset-lists/:list_id", handleUpdateAssetList(uc))
	router.PUT("/asset-lists/:list_id/type", handleChangeListType(uc))
	router.DELETE("/asset-lists/:list_id", handleDeleteAssetList(uc))

	router.GET("/asset-lists/:list_id/members", handleListMembers(uc))
	router.POST("/asset-lists/:list_id/members", handleAddMember(uc))
	router.PATCH("/asset-lists/:list_id/members/:user_id", handleUpdateMember(uc))
	router.DELETE("/asset-lists/:list_id/members/:user_id", handleRemoveMember(uc))
	router.POST("/asset-lists/:list_id/leave", handleLeaveList(uc))

	router.GET("/asset-lists/:list_id/items", handleListItems(uc))
	router.POST("/asset-lists/:list_id/items", handleAddItem(uc))
	router.POST("/asset-lists/:list_id/items/reorder", handleReorderItem(uc))
	router.POST("/asset-lists/:list_id/backfill-positions", handleBackfillPositions(uc))
	router.PUT("/list-items/:item_id/note", handleSetItemNote(uc))
	router.PUT("/list-items/:item_id/group", handleMoveItemToGroup(uc))
	router.DELETE("/list-items/:item_id", handleRemoveItem(uc))

	router.GET("/asset-lists/:list_id/groups", handleListGroups(uc))
	router.POST("/asset-lists/:list_id/groups", handleCreateGroup(uc))
	router.POST("/asset-lists/:list_id/groups/reorder", handleReorderGroup(uc))
	router.PATCH("/list-groups/:group_id", handleUpdateGroup(uc))
	router.DELETE("/list-groups/:group_id", handleDeleteGroup(uc))

	router.POST("/asset-lists/:list_id/suggestions", handleProposeSuggestion(uc))
	router.GET("/suggestions", handleListSuggestions(uc))
	router.GET("/suggestions/:suggestion_id", handleGetSuggestion(uc))
	router.POST("/suggestions/:suggestion_id/respond", handleRespondToSuggestion(uc))
	router.DELETE("/suggestions/:suggestion_id", handleCancelSuggestion(uc))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})
}
