// Package cmd implements the ckv command line interface: a cobra command
// tree for issuing key-value commands against the execution core, with
// configuration from flags and environment variables.
package cmd
