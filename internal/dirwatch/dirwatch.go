// Copyright 2011 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package dirwatch runs a watcher.DirWatcher on a schedule, and serves its
// status and metrics over HTTP.
package dirwatch

import (
	"context"
	"expvar"
	"net"
	"net/http"
	"net/http/pprof"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/dirwatch/internal/waker"
	"github.com/google/dirwatch/internal/watcher"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"go.opencensus.io/zpages"
)

// DefaultPollInterval is the time between checks when no PollWaker is given.
const DefaultPollInterval = 5 * time.Second

// Server contains the state of the main dirwatch program.
type Server struct {
	ctx    context.Context
	cancel context.CancelFunc

	w *watcher.DirWatcher

	reg *prometheus.Registry

	h        *http.Server
	listener net.Listener

	closeOnce sync.Once // Ensure shutdown happens only once

	dir         string             // directory to watch
	listeners   []watcher.Listener // subscribed to the watcher at construction
	pollWaker   waker.Waker        // Wake to check for changes
	bindAddress string             // address to bind HTTP server
	buildInfo   BuildInfo          // go build information

	oneShot            bool // if set, Run checks once then exits
	httpDebugEndpoints bool // if set, serve /debug/ endpoints
	httpInfoEndpoints  bool // if set, serve zpages
}

// New creates a Server from the supplied Options.  It fails if the
// directory to watch does not exist.
func New(ctx context.Context, options ...Option) (*Server, error) {
	m := &Server{
		h: &http.Server{},
		// Using a non-pedantic registry means we can be looser with metrics that
		// are not fully specified at startup.
		reg: prometheus.NewRegistry(),
	}
	m.ctx, m.cancel = context.WithCancel(ctx)

	expvarDescs := map[string]*prometheus.Desc{
		// internal/snapshot/snapshot.go
		"snapshot_reads_total":            prometheus.NewDesc("snapshot_reads_total", "number of directory snapshots taken", nil, nil),
		"snapshot_vanished_entries_total": prometheus.NewDesc("snapshot_vanished_entries_total", "number of directory entries removed while a snapshot was taken", nil, nil),
		// internal/watcher/dir_watcher.go
		"checks_total":       prometheus.NewDesc("checks_total", "number of checks for changes", nil, nil),
		"check_errors_total": prometheus.NewDesc("check_errors_total", "number of checks for changes that failed", nil, nil),
		"events_total":       prometheus.NewDesc("events_total", "number of changes detected by type", []string{"op"}, nil),
	}
	m.reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	// Prefix all expvar metrics with 'dirwatch_'
	prometheus.WrapRegistererWithPrefix("dirwatch_", m.reg).MustRegister(
		prometheus.NewExpvarCollector(expvarDescs))
	if err := m.SetOption(options...); err != nil {
		_ = m.Close()
		return nil, err
	}
	if err := m.initWatcher(); err != nil {
		_ = m.Close()
		return nil, err
	}

	// Create dirwatch_build_info metric.
	version.Branch = m.buildInfo.Branch
	version.Version = m.buildInfo.Version
	version.Revision = m.buildInfo.Revision
	m.reg.MustRegister(version.NewCollector("dirwatch"))

	if m.pollWaker == nil {
		glog.Infof("No poll waker specified; defaulting to %s poll", DefaultPollInterval)
		m.pollWaker = waker.NewTimed(m.ctx, DefaultPollInterval)
	}
	return m, nil
}

// initWatcher takes the initial snapshot of the directory.
func (m *Server) initWatcher() (err error) {
	if m.dir == "" {
		return errors.New("no directory to watch; use the DirectoryPath option")
	}
	m.w, err = watcher.New(m.dir, watcher.Listeners(m.listeners...))
	return
}

// SetOption takes one or more option functions and applies them in order to Server.
func (m *Server) SetOption(options ...Option) error {
	for _, option := range options {
		if err := option.apply(m); err != nil {
			return err
		}
	}
	return nil
}

// Watcher returns the Server's DirWatcher.
func (m *Server) Watcher() *watcher.DirWatcher {
	return m.w
}

// check runs one check for changes, logging any error.  A missing directory
// or a failed listener only affects this check.
func (m *Server) check() error {
	err := m.w.CheckForChanges(m.ctx)
	switch {
	case err == nil:
	case errors.Is(err, watcher.ErrDirectoryUnavailable):
		glog.Warningf("%s; will try again at next poll", err)
	default:
		glog.Error(err)
	}
	return err
}

// poll checks for changes each time the poll waker fires, until the context
// is cancelled.  Cancellation is only noticed between checks.
func (m *Server) poll() {
	for {
		select {
		case <-m.ctx.Done():
			glog.Info("Poll loop exiting")
			return
		case <-m.pollWaker.Wake():
			glog.V(2).Info("Wake received")
		}
		_ = m.check()
	}
}

// Serve starts the HTTP server in the background, returning a channel that
// receives the result of serving once it has stopped.
func (m *Server) Serve() (<-chan error, error) {
	if m.listener == nil {
		return nil, errors.New("no bind address provided")
	}
	mux := http.NewServeMux()
	mux.Handle("/", m)
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	if m.httpDebugEndpoints {
		mux.Handle("/debug/vars", expvar.Handler())
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	if m.httpInfoEndpoints {
		zpages.Handle(mux, "/")
	}
	m.h.Handler = mux

	errc := make(chan error, 1)
	go func() {
		glog.Infof("Listening on %s", m.listener.Addr())
		err := m.h.Serve(m.listener)
		if err == http.ErrServerClosed {
			err = nil
		}
		errc <- err
	}()
	return errc, nil
}

// Close handles the graceful shutdown of this dirwatch instance, ensuring
// that it only occurs once.
func (m *Server) Close() error {
	var err error
	m.closeOnce.Do(func() {
		glog.Info("Shutdown requested.")
		m.cancel()
		if m.listener == nil {
			return
		}
		glog.Info("Shutting down http server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if m.h.Handler == nil {
			// Never served; release the listening socket ourselves.
			err = m.listener.Close()
			return
		}
		err = m.h.Shutdown(ctx)
	})
	return err
}

// Run starts the Server's primary function, checking the directory for
// changes each time the poll waker fires until the context is cancelled.  If
// OneShot mode is enabled, it checks once and returns that check's error.
func (m *Server) Run() error {
	if m.oneShot {
		err := m.check()
		if cerr := m.Close(); cerr != nil {
			glog.Warning(cerr)
		}
		return err
	}
	var errc <-chan error
	if m.listener != nil {
		var err error
		if errc, err = m.Serve(); err != nil {
			return err
		}
	}
	m.poll()
	if err := m.Close(); err != nil {
		glog.Warning(err)
	}
	if errc != nil {
		return <-errc
	}
	return nil
}

// Addr returns the address the HTTP server listens on, or "none".
func (m *Server) Addr() string {
	if m.listener == nil {
		return "none"
	}
	return m.listener.Addr().String()
}
