package store

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureIndexes is called at startup. Creating an index that already exists with
the same keys and name is a no-op on the server, so this is safe to repeat.
Problems are aggregated so a single failure does not hide the others.
*/
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	if err := ensure(ctx, db.Collection(CampaignsCollection), log, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_campaigns_createdAt_desc"),
	}); err != nil {
		problems = append(problems, CampaignsCollection+": "+err.Error())
	}

	if err := ensure(ctx, db.Collection(UsersCollection), log, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: -1}},
		Options: options.Index().SetName("idx_users_date_desc"),
	}); err != nil {
		problems = append(problems, UsersCollection+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensure(ctx context.Context, coll *mongo.Collection, log *zap.Logger, models ...mongo.IndexModel) error {
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		log.Warn("ensure indexes failed", zap.String("collection", coll.Name()), zap.Error(err))
		return err
	}
	log.Info("indexes ensured", zap.String("collection", coll.Name()), zap.Strings("names", names))
	return nil
}
