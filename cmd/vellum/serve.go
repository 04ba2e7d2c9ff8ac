package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vellum-dev/vellum/internal/dev"
	"github.com/vellum-dev/vellum/pkg/component"
	"github.com/vellum-dev/vellum/pkg/dom"
	"github.com/vellum-dev/vellum/pkg/formbind"
	"github.com/vellum-dev/vellum/pkg/host"
	"github.com/vellum-dev/vellum/pkg/observe"
	"github.com/vellum-dev/vellum/pkg/registry"
	"github.com/vellum-dev/vellum/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo components",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := host.DefaultConfig()
			if configPath != "" {
				loaded, err := host.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	return cmd
}

func serve(ctx context.Context, cfg host.Config) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	metrics := observe.NewMetrics()
	tracing := observe.NewTracing()

	reg := registry.New(registry.WithLogger(log))
	if _, err := reg.Define("contact-form", contactFormDef(cfg, metrics, tracing)); err != nil {
		return err
	}

	var opts []host.Option
	opts = append(opts, host.WithLogger(log))

	var watcher *dev.Watcher
	if cfg.Dev {
		reload := dev.NewBroadcaster(log)
		opts = append(opts, host.WithReload(reload))
		w, err := dev.NewWatcher(reload, log)
		if err != nil {
			return err
		}
		for _, dir := range cfg.WatchDirs {
			if err := w.Add(dir); err != nil {
				log.Warn("watch failed", "dir", dir, "err", err)
			}
		}
		watcher = w
		defer watcher.Close()
	}

	h := host.New(cfg, reg, opts...)
	h.HandlePage("/", host.Page{Title: "Contact", Tag: "contact-form"})

	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	router.Mount("/", h.Router())

	srv := &http.Server{Addr: cfg.Addr, Handler: router}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "dev", cfg.Dev)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// contactFormDef builds the demo component: a contact form whose
// control changes are mirrored into the binder's data map.
func contactFormDef(cfg host.Config, metrics *observe.Metrics, tracing *observe.Tracing) *registry.Definition {
	return &registry.Definition{
		New: func(el *dom.Element) *component.Component {
			var c *component.Component
			c = component.New(el, component.Hooks{
				Template: func(*component.Component) *vdom.VNode {
					return vdom.Form(
						vdom.H1(vdom.Text("Contact")),
						vdom.Label(vdom.Text("Title")),
						vdom.Input(vdom.Name("title"), vdom.Type("text")),
						vdom.Label(vdom.Text("Message")),
						vdom.Textarea(vdom.Name("message")),
						vdom.Label(
							vdom.Input(vdom.Name("agree"), vdom.Type("checkbox")),
							vdom.Text("I agree"),
						),
						vdom.Button(vdom.Type("submit"), vdom.Text("Send")),
					)
				},
				Init: func(context.Context) error {
					formbind.Attach(c,
						formbind.WithDebounce(cfg.Debounce()),
						formbind.WithObserver(metrics),
					)
					return nil
				},
			},
				component.WithObserver(metrics),
				component.WithObserver(tracing),
			)
			return c
		},
	}
}
