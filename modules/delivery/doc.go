// Package delivery exposes the queue service over HTTP.
//
//	GET  /history_key?sender_id=N   fresh history key
//	GET  /queue/limit?uid=N         daily counter state
//	PUT  /queue                     enqueue, 200 when immediate, 202 when scheduled
//	POST /track                     wait for courier progress
//
// Router also mounts /healthz, /readyz and /metrics when the matching
// RouterOptions are set.
package delivery
