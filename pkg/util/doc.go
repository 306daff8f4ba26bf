// Package util provides small helpers shared by the writer and config
// packages.
//
//   - SafeFilePath / SafeFilePathAllowAbsolute: reject path-traversal attempts
//     in configured log file locations
//   - Truncate: cap stored log messages
package util
