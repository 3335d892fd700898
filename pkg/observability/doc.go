/*
Package observability exposes Prometheus metrics for the authoring helper.

All recording methods are safe on a nil *Metrics, so components can be built
without metrics and callers never need to check.
*/
package observability
