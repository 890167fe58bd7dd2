package api

import (
	"net/http"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/pure_utils"
	"github.com/checkmarble/asset-lists/usecases"
	"github.com/gin-gonic/gin"
)

type ItemIdUriInput struct {
	ItemId string `uri:"item_id" binding:"required,uuid"`
}

func handleListItems(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListItemUsecase()
		items, err := usecase.ListItems(ctx, uri.ListId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": pure_utils.Map(items, dto.AdaptListItemDto)})
	}
}

func handleAddItem(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.AddListItemBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListItemUsecase()
		item, err := usecase.AddItem(ctx, dto.AdaptAddListItemInput(uri.ListId, data))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"item": dto.AdaptListItemDto(item)})
	}
}

func handleRemoveItem(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ItemIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListItemUsecase()
		err := usecase.RemoveItem(ctx, uri.ItemId)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleSetItemNote(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ItemIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.SetItemNoteBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListItemUsecase()
		item, err := usecase.SetItemNote(ctx, uri.ItemId, data.Note)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"item": dto.AdaptListItemDto(item)})
	}
}

func handleMoveItemToGroup(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ItemIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.MoveItemBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListItemUsecase()
		item, err := usecase.MoveItemToGroup(ctx, uri.ItemId, data.GroupId.Ptr())
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"item": dto.AdaptListItemDto(item)})
	}
}

// handleReorderItem answers with the items whose position key was written, so that clients can
// patch their local copy without refetching the whole partition.
func handleReorderItem(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.ReorderItemBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListItemUsecase()
		items, err := usecase.ReorderItem(ctx, dto.AdaptReorderItemInput(uri.ListId, data))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": pure_utils.Map(items, dto.AdaptListItemDto)})
	}
}

func handleBackfillPositions(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListItemUsecase()
		count, err := usecase.BackfillPositions(ctx, uri.ListId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.BackfillPositionsResponse{UpdatedCount: count})
	}
}
