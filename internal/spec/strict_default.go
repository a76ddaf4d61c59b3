//go:build !argbind_nocheck

package spec

const strictChecks = true
