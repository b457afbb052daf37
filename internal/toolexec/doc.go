// Package toolexec invokes external static-analysis binaries and captures
// their raw text output. Tool selection and argument policy live in
// configuration; this package only runs what it is given.
package toolexec
