// Package ports defines the interfaces between the teller core and the
// outside world: checkpoint persistence, the intent catalog, tool execution,
// response rendering, distributed locking and lifecycle observation.
//
// The engine and coordinator depend only on these interfaces, never on a
// concrete adapter, so hosts can swap storage and transports freely.
package ports
