package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultOrganizer = "Benefactor"
	DefaultDaysLeft  = 30
)

// DefaultLocation is [lat, lon] of Baghdad.
var DefaultLocation = []float64{33.3152, 44.3661}

type Campaign struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Goal        float64            `bson:"goal" json:"goal"`
	Raised      float64            `bson:"raised" json:"raised"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Organizer   string             `bson:"organizer" json:"organizer"`
	DaysLeft    int                `bson:"daysLeft" json:"daysLeft"`
	Location    []float64          `bson:"location" json:"location"` // [lat, lon]
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CampaignInput is the create payload. Fields outside it are never taken
// from the request body.
type CampaignInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Goal        *float64  `json:"goal" binding:"required"`
	Image       string    `json:"image"`
	Location    []float64 `json:"location"`
}

// CampaignPatch holds the fields a PUT may replace. Nil means untouched.
type CampaignPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Goal        *float64   `json:"goal"`
	Raised      *float64   `json:"raised"`
	Image       *string    `json:"image"`
	Organizer   *string    `json:"organizer"`
	DaysLeft    *int       `json:"daysLeft"`
	Location    *[]float64 `json:"location"`
}

// NewCampaign builds a fully populated campaign from a create payload.
func NewCampaign(in CampaignInput, now time.Time) Campaign {
	c := Campaign{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Organizer:   DefaultOrganizer,
		DaysLeft:    DefaultDaysLeft,
		Location:    append([]float64(nil), DefaultLocation...),
		CreatedAt:   now,
	}
	if in.Goal != nil {
		c.Goal = *in.Goal
	}
	if len(in.Location) > 0 {
		c.Location = append([]float64(nil), in.Location...)
	}
	return c
}

// Fields returns the patch as a $set document keyed by stored field names.
func (p CampaignPatch) Fields() map[string]interface{} {
	set := map[string]interface{}{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Goal != nil {
		set["goal"] = *p.Goal
	}
	if p.Raised != nil {
		set["raised"] = *p.Raised
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Organizer != nil {
		set["organizer"] = *p.Organizer
	}
	if p.DaysLeft != nil {
		set["daysLeft"] = *p.DaysLeft
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	return set
}

// Apply returns c with the patch merged in.
func (p CampaignPatch) Apply(c Campaign) Campaign {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Goal != nil {
		c.Goal = *p.Goal
	}
	if p.Raised != nil {
		c.Raised = *p.Raised
	}
	if p.Image != nil {
		c.Image = *p.Image
	}
	if p.Organizer != nil {
		c.Organizer = *p.Organizer
	}
	if p.DaysLeft != nil {
		c.DaysLeft = *p.DaysLeft
	}
	if p.Location != nil {
		c.Location = append([]float64(nil), (*p.Location)...)
	}
	return c
}
