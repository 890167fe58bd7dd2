package api

import (
	"net/http"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/usecases"
	"github.com/gin-gonic/gin"
)

type SuggestionIdUriInput struct {
	SuggestionId string `uri:"suggestion_id" binding:"required,uuid"`
}

func handleProposeSuggestion(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.ProposeSuggestionBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListSuggestionUsecase()
		suggestion, err := usecase.ProposeSuggestion(ctx, dto.AdaptProposeSuggestionInput(uri.ListId, data))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"suggestion": dto.AdaptListSuggestionDto(suggestion)})
	}
}

func handleListSuggestions(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var query dto.ListSuggestionsQuery
		if err := c.ShouldBindQuery(&query); presentBindError(ctx, c, err) {
			return
		}

		var listId *string
		if query.ListId != "" {
			listId = &query.ListId
		}
		var status *models.SuggestionStatus
		if query.Status != "" {
			s := models.SuggestionStatusFrom(query.Status)
			status = &s
		}

		usecase := usecasesWithCreds(ctx, uc).NewListSuggestionUsecase()
		suggestions, err := usecase.ListSuggestions(ctx, listId, status)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptUserSuggestionsDto(suggestions))
	}
}

func handleGetSuggestion(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri SuggestionIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListSuggestionUsecase()
		suggestion, err := usecase.GetSuggestion(ctx, uri.SuggestionId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"suggestion": dto.AdaptListSuggestionDto(suggestion)})
	}
}

func handleRespondToSuggestion(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri SuggestionIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.RespondToSuggestionBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListSuggestionUsecase()
		suggestion, err := usecase.RespondToSuggestion(ctx,
			dto.AdaptRespondToSuggestionInput(uri.SuggestionId, data))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"suggestion": dto.AdaptListSuggestionDto(suggestion)})
	}
}

func handleCancelSuggestion(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri SuggestionIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListSuggestionUsecase()
		err := usecase.CancelSuggestion(ctx, uri.SuggestionId)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
