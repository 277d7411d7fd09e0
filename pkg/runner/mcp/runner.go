package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/timebox/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

const (
	defaultListenAddr = "127.0.0.1:8080"
	defaultPath       = "/mcp"
	shutdownTimeout   = 5 * time.Second
)

const instructions = `Plan one day in 48 half-hour slots. add_note creates an unscheduled task,
schedule places it in a slot (HH:MM, on the hour or half hour), move and unschedule
rearrange it, complete and toggle_tag change it. show_day returns the open day and
open_date switches days. Every change is saved as soon as it is made.`

// Runner serves the open day over MCP.
type Runner struct {
	Service *app.Service
	Name    string
	Version string
	Log     *zap.Logger

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do serves until ctx is done or the transport closes.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a service")
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	srv := r.newServer(log)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, log)
	case TransportStdio:
		stdio := server.NewStdioServer(srv)
		stdio.SetErrorLogger(zap.NewStdLog(log))
		return stdio.Listen(ctx, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

func (r Runner) newServer(log *zap.Logger) *server.MCPServer {
	name := r.Name
	if name == "" {
		name = "timebox"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	hooks := &server.Hooks{}
	hooks.AddOnError(func(_ context.Context, id any, method mcp.MCPMethod, _ any, err error) {
		log.Warn("mcp request failed", zap.Any("id", id), zap.String("method", string(method)), zap.Error(err))
	})

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithHooks(hooks),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	register(srv, NewService(r.Service))
	return srv
}

func register(srv *server.MCPServer, svc *Service) {
	registerResources(srv, svc)
	registerTools(srv, svc)
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, log *zap.Logger) error {
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}

	path := r.HTTPEndpointPath
	if path == "" {
		path = defaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(log),
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	log.Info("mcp listening", zap.Stringer("addr", ln.Addr()), zap.String("path", path))
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.HTTPServerCert != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
