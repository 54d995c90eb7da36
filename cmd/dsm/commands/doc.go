// Package commands defines the dsm CLI.
//
// Commands
//
//   - validate   Load a matrix document and report whether it is valid
//   - grid       Render the grid projection of a matrix as a table
//   - propagate  Run propagation analysis from one item
//   - cluster    Cluster a symmetric matrix and optionally apply the result
//   - sequence   Partition a matrix into coupled blocks in dependency order
//   - generate   Write a generated fixture matrix
//
// Documents are YAML renderings of matrix.Document. A path of "-" reads
// standard input.
//
// # Implementation
//
// The root command loads the configuration (file, then DSM_* environment)
// and installs the configured slog logger before any subcommand runs. With
// --telemetry it also installs OpenTelemetry providers exporting to stderr,
// flushed once the subcommand returns.
package commands
