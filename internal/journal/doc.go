// Package journal persists planner decisions to Redis so they can be inspected
// and watched from outside the running simulation.
//
// # Overview
//
// Every planning pass produces a goap.Record. The journal stores each record as
// a Redis hash, indexes it on a per-agent timeline, and publishes it for live
// subscribers such as `goap watch`.
//
// # Multi-Instance Support
//
// All Redis keys and Pub/Sub channels are namespaced by instance name so several
// simulations can share one Redis server without seeing each other's decisions.
//
// # Redis Schema
//
// Records: goap:{instance_name}:record:{record_id}
// Timelines: goap:{instance_name}:agent:{agent_id}:timeline (ZSET, score = tick)
// Agent index: goap:{instance_name}:agents (SET)
//
// Pub/Sub channel: goap:{instance_name}:decision_events
//
// # Usage Example
//
//	client, err := journal.NewClient(&redis.Options{Addr: "localhost:6379"}, "demo")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.Write(ctx, record); err != nil {
//		log.Printf("[Journal] %v", err)
//	}
//
//	history, err := client.History(ctx, record.Agent, 20)
package journal
