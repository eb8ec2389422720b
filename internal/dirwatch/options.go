// Copyright 2011 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package dirwatch

import (
	"net"

	"contrib.go.opencensus.io/exporter/jaeger"
	"github.com/google/dirwatch/internal/waker"
	"github.com/google/dirwatch/internal/watcher"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

// Option configures dirwatch.Server
type Option interface {
	apply(*Server) error
}

// DirectoryPath sets the directory watched by the Server.
type DirectoryPath string

func (opt DirectoryPath) apply(m *Server) error {
	m.dir = string(opt)
	return nil
}

// PollWaker sets the Waker that triggers each check for changes.
func PollWaker(w waker.Waker) Option {
	return &pollWaker{w}
}

type pollWaker struct {
	waker.Waker
}

func (opt pollWaker) apply(m *Server) error {
	m.pollWaker = opt.Waker
	return nil
}

// Listeners subscribes listeners to the Server's watcher.
func Listeners(ls ...watcher.Listener) Option {
	return listeners(ls)
}

type listeners []watcher.Listener

func (opt listeners) apply(m *Server) error {
	m.listeners = append(m.listeners, opt...)
	return nil
}

// BindAddress sets the HTTP server address in Server.
func BindAddress(address, port string) Option {
	return &bindAddress{address, port}
}

type bindAddress struct {
	address, port string
}

func (opt bindAddress) apply(m *Server) error {
	if m.listener != nil {
		return errors.New("HTTP server bind address already supplied")
	}
	m.bindAddress = net.JoinHostPort(opt.address, opt.port)
	var err error
	m.listener, err = net.Listen("tcp", m.bindAddress)
	return errors.Wrapf(err, "failed to listen on %s", m.bindAddress)
}

// SetBuildInfo sets the dirwatch program build information in the Server.
type SetBuildInfo BuildInfo

func (opt SetBuildInfo) apply(m *Server) error {
	m.buildInfo = BuildInfo(opt)
	return nil
}

// JaegerReporter creates a new jaeger reporter that sends to the given Jaeger endpoint address.
type JaegerReporter string

func (opt JaegerReporter) apply(m *Server) error {
	je, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: string(opt),
		Process: jaeger.Process{
			ServiceName: "dirwatch",
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create jaeger exporter")
	}
	trace.RegisterExporter(je)
	return nil
}

type niladicOption struct {
	applyfunc func(m *Server) error
}

func (n *niladicOption) apply(m *Server) error {
	return n.applyfunc(m)
}

// OneShot makes Run check for changes once and return.
var OneShot = &niladicOption{
	func(m *Server) error {
		m.oneShot = true
		return nil
	}}

// HTTPDebugEndpoints enables the /debug/ endpoints.
var HTTPDebugEndpoints = &niladicOption{
	func(m *Server) error {
		m.httpDebugEndpoints = true
		return nil
	}}

// HTTPInfoEndpoints enables the /tracez and /rpcz endpoints.
var HTTPInfoEndpoints = &niladicOption{
	func(m *Server) error {
		m.httpInfoEndpoints = true
		return nil
	}}
