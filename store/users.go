package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/phillip/campaign-hub-go/models"
)

type UserStore struct {
	c *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{c: db.Collection(UsersCollection)}
}

func userListOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
}

// List returns every user, most recently added first.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.c.Find(ctx, bson.M{}, userListOptions())
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Delete removes the user if present. It reports whether a document was removed.
func (s *UserStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
