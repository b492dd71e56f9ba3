// Package compute is the HTTP client of the algorithm-execution service.
//
// The service speaks JSON over HTTP:
//
//	GET  /api/algorithms        {"algorithms": [...]}
//	POST /api/run               {"algorithm", "data"} -> result document
//	POST /api/benchmark         {"algorithms", "data"} -> {"results": {...}}
//	GET  /api/search?q=&k=      {"results": [...]}
//	GET  /api/logs              server-sent events
//	GET  /api/results[/{id}]    run history
//
// Every request carries an X-Request-ID header. Responses outside 2xx are
// returned as *ServiceError. Run and Benchmark return the response body
// untouched so callers can keep it byte-exact.
//
// The client sets no timeout unless WithTimeout is given; cancel through
// the context instead.
package compute
