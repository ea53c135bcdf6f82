/*
Package observability provides tools for monitoring transition dispatch.

It builds on domain.LifecycleHooks: hooks can be merged, turned into
structured logs, or exported as Prometheus metrics, and the dispatcher stays
unaware of any of it.
*/
package observability
