// Package storage provides the S3/MinIO client used for feed snapshot
// archiving.
//
// When archiving is enabled, each successful feed fetch stores the raw XML
// document in the configured bucket before extraction. Snapshots are an
// audit trail and a replay source; archive failures are logged and never
// fail a sync.
package storage
