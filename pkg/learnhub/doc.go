// Package learnhub embeds the learnhub screen data in another Go program.
//
// The list filter and the chart normalizer are available as plain functions:
//
//	hits := learnhub.Filter(items, "deep")
//	bars := learnhub.Normalize(days, 120)
//
// The Client serves the same courses, notes and analytics the HTTP API does,
// from the built-in content or a YAML seed file:
//
//	client, _ := learnhub.New(
//	    learnhub.WithContent("content.yaml"),
//	    learnhub.WithLogger(slog.Default()),
//	    learnhub.WithPrometheus(prometheus.DefaultRegisterer),
//	)
//	courses, _ := client.Courses(ctx, "learning")
//	dash, _ := client.Dashboard(ctx, 0) // 0 = default scale
package learnhub
