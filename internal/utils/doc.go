// Package utils provides small helpers shared by the worldstats packages:
// generic pointers, lenient string parsing for configuration values and
// override files, atomic file replacement, string truncation for log output,
// a wall-clock timer and a close helper that logs instead of failing.
package utils
