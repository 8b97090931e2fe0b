// Package redis provides the Redis plumbing of the delivery gateway.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - EnableKeyspaceEvents, which applies notify-keyspace-events so history
//     writes ("set") and tracking key expiry ("expired") are published.
//   - Storage, a small key-value view (Get/TTL) that works both on a client
//     and on a transaction inside WATCH.
//   - Healthcheck for readiness probes.
//
// Configuration is described by Config whose fields are populated from
// environment variables via github.com/caarlos0/env.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // terminate
//	}
//	defer client.Close()
//
//	if err := redis.EnableKeyspaceEvents(ctx, client, cfg.KeyspaceEvents); err != nil {
//	    log.Warn("keyspace events not applied", logger.Error(err))
//	}
package redis
