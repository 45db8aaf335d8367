package controllers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	models "github.com/phillip/campaign-hub-go/models"
)

type CampaignRepository interface {
	List(ctx context.Context) ([]models.Campaign, error)
	Get(ctx context.Context, id string) (*models.Campaign, error)
	Create(ctx context.Context, c models.Campaign) (models.Campaign, error)
	Update(ctx context.Context, id string, patch models.CampaignPatch) (*models.Campaign, error)
	Delete(ctx context.Context, id string) (*models.Campaign, error)
	CountByImage(ctx context.Context, imageURL string) (int64, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ImageHost interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
	Owns(imageURL string) bool
	Delete(ctx context.Context, imageURL string) error
}

// Env carries the dependencies every handler closes over.
type Env struct {
	Campaigns CampaignRepository
	Users     UserRepository
	Images    ImageHost // nil when image hosting is not configured
	Log       *zap.Logger
	DBTimeout time.Duration
	Now       func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// dbContext bounds a database call by the request lifetime and DBTimeout.
func (e *Env) dbContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if e.DBTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), e.DBTimeout)
}

// fail logs err against the request and attaches it for the access log.
func (e *Env) fail(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	e.Log.Error(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
}
