// Package profile records runtime profiles of shopt with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//	shopt --pprof-mode cpu --pprof-dir /tmp/shopt parse -s sig.yaml -- -fbz
//
// Without the tag, [Start] returns a no-op [Stopper] and [Modes] is empty.
package profile
