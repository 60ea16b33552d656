package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/pvigilev/zipper/httputil"
	"github.com/pvigilev/zipper/stop"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "HTTP listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/decode", httputil.DecodeHandler{})

	srv := &http.Server{
		Addr:    *addr,
		Handler: &httputil.LoggingMiddleware{Next: mux},
	}

	sg := stop.NewGroup()
	sg.AddFunc(func() <-chan struct{} {
		done := make(chan struct{})
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
			close(done)
		}()
		return done
	})

	errc := make(chan error, 1)
	go func() {
		plog.Infof("listening on %s", *addr)
		if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
			plog.Warningf("systemd readiness notification failed: %v", err)
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case <-sigc:
		plog.Infof("shutting down")
		<-sg.Stop()
		return nil
	}
}
