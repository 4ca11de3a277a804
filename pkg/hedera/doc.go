// Package hedera contains the value types shared by every request the SDK
// builds: entity identifiers (shard.realm.num triples), transaction
// identifiers, the Hbar currency type, network status codes, and the typed
// errors surfaced by the execution engine.
package hedera
