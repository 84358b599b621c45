// Package ledger records what a generation run did (or would do) to the target
// repository: an append-only, ordered list of create and modify operations
// plus the issues and fatal errors collected along the way. The same ledger
// drives both on-disk application reports and preview rendering.
package ledger
