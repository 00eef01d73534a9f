// Package services implements the core pipeline: ingestion, retrieval,
// answer composition and the feature modules layered on top of them.
// Services depend only on domain types and ports.
package services
