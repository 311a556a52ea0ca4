// Package attendanceservice implements the time clock inside the workforce
// context: recording clock events against an append-only log and serving
// attendance reports.
//
// Layering:
// - domain: event entity, break policy, errors
// - application: commands/queries/workers using explicit ports
// - ports: stable boundaries for the event log, directory, clock, ids
// - adapters: concrete HTTP, memory, postgres, and Google Sheets implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the workforce context.
// - The directory context is reached only through the EmployeeDirectory port.
// - The event log is external and append-only: no update, no delete, no
//   same-user mutual exclusion. Two concurrent break_end calls can both pass
//   validation; that race belongs to the log's contract.
package attendanceservice
