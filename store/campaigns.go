package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/phillip/campaign-hub-go/models"
)

type CampaignStore struct {
	c *mongo.Collection
}

func NewCampaignStore(db *mongo.Database) *CampaignStore {
	return &CampaignStore{c: db.Collection(CampaignsCollection)}
}

func campaignListOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// List returns every campaign, newest first.
func (s *CampaignStore) List(ctx context.Context) ([]models.Campaign, error) {
	cursor, err := s.c.Find(ctx, bson.M{}, campaignListOptions())
	if err != nil {
		return nil, err
	}

	campaigns := []models.Campaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Get loads one campaign. Returns ErrNotFound when nothing matches.
func (s *CampaignStore) Get(ctx context.Context, id string) (*models.Campaign, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var c models.Campaign
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts c, assigning an ID when it has none.
func (s *CampaignStore) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Campaign{}, fmt.Errorf("insert campaign: %w", err)
	}
	return c, nil
}

// Update sets the patched fields and returns the document after the update.
// A nil campaign with a nil error means the id matched nothing.
func (s *CampaignStore) Update(ctx context.Context, id string, patch models.CampaignPatch) (*models.Campaign, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := patch.Fields()

	var updated models.Campaign
	if len(set) == 0 {
		err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(set)}, opts).Decode(&updated)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a campaign and returns what was removed, or nil when the id
// matched nothing.
func (s *CampaignStore) Delete(ctx context.Context, id string) (*models.Campaign, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var removed models.Campaign
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&removed); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &removed, nil
}

// CountByImage reports how many campaigns still reference imageURL.
func (s *CampaignStore) CountByImage(ctx context.Context, imageURL string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"image": imageURL})
}
