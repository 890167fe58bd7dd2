package api

import (
	"net/http"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/pure_utils"
	"github.com/checkmarble/asset-lists/usecases"
	"github.com/gin-gonic/gin"
)

type ListIdUriInput struct {
	ListId string `uri:"list_id" binding:"required,uuid"`
}

func handleListAssetLists(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		lists, err := usecase.ListAssetLists(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"asset_lists": pure_utils.Map(lists, dto.AdaptAssetListDto)})
	}
}

func handleCreateAssetList(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var data dto.CreateAssetListBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		list, err := usecase.CreateAssetList(ctx, dto.AdaptCreateAssetListInput(data))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"asset_list": dto.AdaptAssetListWithCapabilitiesDto(list)})
	}
}

func handleGetAssetList(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		list, err := usecase.GetAssetList(ctx, uri.ListId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"asset_list": dto.AdaptAssetListWithCapabilitiesDto(list)})
	}
}

func handleUpdateAssetList(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.UpdateAssetListBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		list, err := usecase.UpdateAssetList(ctx, dto.AdaptUpdateAssetListInput(uri.ListId, data))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"asset_list": dto.AdaptAssetListDto(list)})
	}
}

func handleChangeListType(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.ChangeListTypeBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		list, err := usecase.ChangeListType(ctx, uri.ListId, models.ListTypeFrom(data.Type))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"asset_list": dto.AdaptAssetListDto(list)})
	}
}

func handleDeleteAssetList(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		err := usecase.DeleteAssetList(ctx, uri.ListId)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
