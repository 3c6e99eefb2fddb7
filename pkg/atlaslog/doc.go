// Package atlaslog is the structured, asynchronous logging facade used by
// every DocAtlas component. Emitting a message never blocks on I/O: events
// are queued and a single background consumer fans them out to a
// human-readable console sink and a rotating NDJSON file sink, each with its
// own minimum severity.
//
// Quick start:
//
//	reg := atlaslog.NewRegistry()
//	logger := reg.GetOrCreate(atlaslog.DefaultConfig())
//	if err := logger.Setup("ingest"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Stop(5 * time.Second)
//
//	logger.AddContext("doc_id", docID)
//	logger.Info("document parsed", atlaslog.WithExtra(map[string]any{"pages": 12}))
//
// Handles are memoized by configuration fingerprint: two GetOrCreate calls
// with structurally equal configs return the same handle. Handles are safe
// for concurrent use.
package atlaslog
