// Copyright 2011 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/google/dirwatch/internal/dirwatch"
	"github.com/google/dirwatch/internal/listener"
	"github.com/google/dirwatch/internal/waker"
	"go.opencensus.io/trace"
)

var (
	dir     = flag.String("dir", "", "Directory to watch.  If empty, the directory is read from standard input.")
	port    = flag.String("port", "", "HTTP port to listen on for status and metrics.  If empty, no HTTP server is started.")
	address = flag.String("address", "", "Host or IP address on which to bind HTTP listener")

	version = flag.Bool("version", false, "Print dirwatch version information.")
	oneShot = flag.Bool("one_shot", false, "Check the directory for changes once after the poll interval, then exit.")

	logChanges = flag.Bool("log_changes", false, "Also write each change to the info log.")

	pollInterval = flag.Duration("poll_interval", dirwatch.DefaultPollInterval, "Set the interval between checks of the directory for changes; zero selects the default.")

	httpDebugEndpoints = flag.Bool("http_debugging_endpoint", true, "Enable debugging endpoints (/debug/*).")
	httpInfoEndpoints  = flag.Bool("http_info_endpoint", true, "Enable info endpoints (/tracez).")

	// Tracing.
	jaegerEndpoint    = flag.String("jaeger_endpoint", "", "If set, collector endpoint URL of jaeger thrift service")
	traceSamplePeriod = flag.Int("trace_sample_period", 0, "Sample period for traces.  If non-zero, every nth trace will be sampled.")
)

var (
	// Branch as well as Version and Revision identifies where in the git
	// history the build came from, as supplied by the linker when compiled
	// with `make'.  The defaults here indicate that the user did not use
	// `make' as instructed.
	Branch   = "invalid:-use-make-to-build"
	Version  = "invalid:-use-make-to-build"
	Revision = "invalid:-use-make-to-build"
)

func main() {
	buildInfo := dirwatch.BuildInfo{
		Branch:   Branch,
		Version:  Version,
		Revision: Revision,
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", buildInfo.String())
		fmt.Fprintf(os.Stderr, "\nUsage:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *version {
		fmt.Println(buildInfo.String())
		os.Exit(0)
	}
	glog.Info(buildInfo.String())
	glog.Infof("Commandline: %q", os.Args)
	if len(flag.Args()) > 0 {
		glog.Exitf("Too many extra arguments specified: %q\n(use --dir to name the directory to watch)", flag.Args())
	}
	if *traceSamplePeriod > 0 {
		trace.ApplyConfig(trace.Config{DefaultSampler: trace.ProbabilitySampler(1 / float64(*traceSamplePeriod))})
	}
	if *pollInterval <= 0 {
		glog.Infof("no poll interval specified; defaulting to %s poll", dirwatch.DefaultPollInterval)
		*pollInterval = dirwatch.DefaultPollInterval
	}

	path := *dir
	if path == "" {
		var err error
		path, err = promptDirectory(os.Stdin, os.Stdout)
		if err != nil {
			glog.Exitf("Couldn't read the directory to watch: %s", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigint
		glog.Infof("Received %+v, exiting...", sig)
		cancel()
	}()

	opts := []dirwatch.Option{
		dirwatch.DirectoryPath(path),
		dirwatch.SetBuildInfo(buildInfo),
		dirwatch.Listeners(listener.NewConsole(os.Stdout)),
		dirwatch.PollWaker(waker.NewTimed(ctx, *pollInterval)),
	}
	if *logChanges {
		opts = append(opts, dirwatch.Listeners(listener.Log{}))
	}
	if *port != "" {
		opts = append(opts, dirwatch.BindAddress(*address, *port))
	}
	if *httpDebugEndpoints {
		opts = append(opts, dirwatch.HTTPDebugEndpoints)
	}
	if *httpInfoEndpoints {
		opts = append(opts, dirwatch.HTTPInfoEndpoints)
	}
	if *jaegerEndpoint != "" {
		opts = append(opts, dirwatch.JaegerReporter(*jaegerEndpoint))
	}
	if *oneShot {
		opts = append(opts, dirwatch.OneShot)
	}
	m, err := dirwatch.New(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		glog.Error(err)
		cancel()
		os.Exit(1) //nolint:gocritic // false positive
	}
	if *oneShot {
		// Give the directory one interval to change.
		time.Sleep(*pollInterval)
	} else {
		fmt.Println("Watching for changes... (press Ctrl+C to exit)")
	}
	if err := m.Run(); err != nil {
		glog.Error(err)
		cancel()
		os.Exit(1) //nolint:gocritic // false positive
	}
}
