// Package cli provides command-line interface setup for the quickdict
// application. It handles flag parsing and command creation using
// cobra; configuration lives in the config package.
package cli
