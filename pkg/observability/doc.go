/*
Package observability provides prometheus instrumentation for catalogue builds.

Metrics wraps the counters and histograms a serving deployment wants and plugs
into a build through domain.BuildHooks, so the traversal core itself stays free
of any metrics dependency.
*/
package observability
