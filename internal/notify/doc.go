// Package notify delivers finished report summaries to an outbound
// channel. Delivery runs strictly after report finalization and its
// failure is surfaced to the caller without touching the report.
package notify
