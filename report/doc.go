// Package report renders the outcome of parsing a command line against a
// [getopt.Signature] as text, JSON or YAML.
package report
