// Package cache provides a file-based store for reviewer feedback with TTL
// expiry. Keys are content-addressed, so editing a file or switching the
// backend or model invalidates its entry naturally.
package cache
