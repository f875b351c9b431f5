// Package mongo connects mongo-driver/v2 clients for the MongoDB tenant directory.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	client, coll, err := mongo.Collection(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
//	dir := directory.NewMongo(coll)
package mongo
