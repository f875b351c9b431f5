// Package redis connects go-redis clients used by the Redis tenant directory.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Connect retries until the server answers PING or the connect timeout
// expires. Healthcheck adapts any redis.UniversalClient to a readiness probe.
package redis
