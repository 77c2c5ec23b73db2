// Package runprof adds Go runtime (pprof) profiling to CLI applications, so
// a binary instrumented with the scope profiler can also emit pprof data for
// deeper digging.
//
// Typical usage creates a [Config], registers flags, then brackets command
// execution with a [Session]:
//
//	cfg := runprof.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	session := cfg.NewSession()
//
//	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
//	    return session.Start()
//	}
//	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
//	    return session.Stop()
//	}
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof.
package runprof
