package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"ariatravel/app/api"
	"ariatravel/app/client/fastapi"
	"ariatravel/app/client/llm"
	"ariatravel/app/client/supabase"
	"ariatravel/app/config"
	"ariatravel/app/service/agent"
	"ariatravel/app/service/catalog"
	"ariatravel/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, fastapi.NewClient)
	do.Provide(di, supabase.NewClient)
	do.Provide(di, llm.NewClient)
	do.Provide(di, catalog.New)
	do.Provide(di, agent.New)
	do.Provide(di, api.New)
	do.Provide(di, api.NewToolServer)

	agentSvc := do.MustInvoke[*agent.Service](di)

	slog.Info("Service started",
		"providers", agentSvc.ProviderNames(),
		"sources", do.MustInvoke[*catalog.Service](di).SourceNames(),
	)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	loops := []func(context.Context) error{
		func(ctx context.Context) error {
			agentSvc.RunCleanupLoop(ctx)
			return nil
		},
		do.MustInvoke[*api.Server](di).Run,
	}
	if cfg.MCP.Enabled {
		loops = append(loops, do.MustInvoke[*api.ToolServer](di).Run)
	}

	if err = runAll(appCtx, loops...); err != nil {
		slog.Error("Service stopped", "error", err)
	}
}

// runAll runs every loop until ctx is done or one of them fails, and returns
// only after all of them have finished.
func runAll(ctx context.Context, loops ...func(context.Context) error) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, loop := range loops {
		group.Go(func() error {
			return loop(groupCtx)
		})
	}

	return group.Wait()
}
