// Package api hosts the HTTP server, middleware, and REST handlers for
// operator access. Notable routes:
//   - GET /healthz and /readyz for Kubernetes probes.
//   - GET /metrics for Prometheus scraping.
//   - POST /v1/crawl to start a crawl job.
//   - GET /v1/jobs/{job_id}/status and POST /v1/jobs/{job_id}/cancel for
//     job control.
package api
