package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	models "github.com/phillip/campaign-hub-go/models"
	store "github.com/phillip/campaign-hub-go/store"
)

// ---------------- LIST ----------------
func ListCampaigns(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := env.dbContext(c)
		defer cancel()

		campaigns, err := env.Campaigns.List(ctx)
		if err != nil {
			env.fail(c, "list campaigns", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, campaigns)
	}
}

// ---------------- GET ----------------
func GetCampaign(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := env.dbContext(c)
		defer cancel()

		campaign, err := env.Campaigns.Get(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "campaign not found"})
			return
		}
		if err != nil {
			env.fail(c, "get campaign", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, campaign)
	}
}

// ---------------- CREATE ----------------
func CreateCampaign(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CampaignInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "failed to save campaign", "error": err.Error()})
			return
		}

		ctx, cancel := env.dbContext(c)
		defer cancel()

		campaign, err := env.Campaigns.Create(ctx, models.NewCampaign(input, env.now()))
		if err != nil {
			env.fail(c, "create campaign", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "failed to save campaign", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, campaign)
	}
}

// ---------------- UPDATE ----------------

// UpdateCampaign replaces the fields present in the body. An id that matches
// nothing answers 200 with a null body.
func UpdateCampaign(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.CampaignPatch
		if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
			env.fail(c, "decode campaign patch", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update campaign"})
			return
		}

		ctx, cancel := env.dbContext(c)
		defer cancel()

		updated, err := env.Campaigns.Update(ctx, c.Param("id"), patch)
		if err != nil {
			env.fail(c, "update campaign", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update campaign"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- DELETE ----------------
func DeleteCampaign(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := env.dbContext(c)
		defer cancel()

		removed, err := env.Campaigns.Delete(ctx, c.Param("id"))
		if err != nil {
			env.fail(c, "delete campaign", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete campaign"})
			return
		}

		if removed != nil {
			env.releaseImage(ctx, c, removed)
		}

		c.JSON(http.StatusOK, gin.H{"message": "campaign deleted"})
	}
}

// releaseImage destroys the hosted copy of a deleted campaign's image once no
// other campaign points at it. Failures are logged and never reach the client.
func (e *Env) releaseImage(ctx context.Context, c *gin.Context, removed *models.Campaign) {
	if removed.Image == "" || e.Images == nil || !e.Images.Owns(removed.Image) {
		return
	}

	fields := []zap.Field{
		zap.String("campaign_id", removed.ID.Hex()),
		zap.String("image", removed.Image),
	}

	remaining, err := e.Campaigns.CountByImage(ctx, removed.Image)
	if err != nil {
		e.Log.Warn("hosted image kept, reference count failed", append(fields, zap.Error(err))...)
		return
	}
	if remaining > 0 {
		e.Log.Info("hosted image still referenced", append(fields, zap.Int64("remaining", remaining))...)
		return
	}

	if err := e.Images.Delete(c.Request.Context(), removed.Image); err != nil {
		e.Log.Warn("hosted image not removed", append(fields, zap.Error(err))...)
	}
}
