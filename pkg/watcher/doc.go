// Package watcher is a typed binding for the Watcher alerting API.
//
// Inputs, transforms, conditions, schedules and actions are modeled as
// containers that hold at most one variant. A container serializes as a JSON
// object with the single key of the variant it holds, and decoding an object
// that carries more than one known key fails with a MALFORMED_VARIANT error.
//
// Values are assembled with builders:
//
//	req := watcher.NewPutWatchBuilder("cluster_health").
//		Schedule(func(s *watcher.ScheduleBuilder) { s.Interval("10s") }).
//		InputWith(func(i *watcher.InputBuilder) {
//			i.HTTP(func(h *watcher.HTTPInputBuilder) {
//				h.RequestWith(func(r *watcher.WatcherHTTPRequestBuilder) {
//					r.Host("localhost").Port(9200).Path("/_cluster/health")
//				})
//			})
//		}).
//		Action("log", func(a *watcher.ActionBuilder) {
//			a.Logging("cluster is {{ctx.payload.status}}", watcher.LevelInfo)
//		}).
//		Build()
package watcher
