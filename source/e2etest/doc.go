// Package e2etest is a fault-injection source for exercising a replication
// client's resume logic. The exception_after_n driver emits a state message
// before every block of 5 records, then fails with ErrScheduledFailure after
// the configured number of records. Restarting with the last state continues
// the value sequence while the record threshold counts from zero again.
package e2etest
