package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/tmheller/tmheller.dev/app"
	"github.com/tmheller/tmheller.dev/content"
	"github.com/tmheller/tmheller.dev/internal/build"
	"github.com/tmheller/tmheller.dev/internal/devserver"
	"github.com/tmheller/tmheller.dev/kit/colorlog"
)

var CLI struct {
	Config string `short:"c" help:"Site config file path" default:"site.config.json"`

	Build struct {
		Output string `short:"o" help:"Output directory for the generated site" default:"./dist"`
	} `cmd:"" help:"Build the site into a static output directory"`

	Serve struct {
		Port int `short:"p" help:"Port to listen on (overrides PORT)"`
	} `cmd:"" help:"Run the dev server with live reload"`

	New struct {
		Title string `arg:"" help:"Title of the new post"`
	} `cmd:"" help:"Scaffold a new blog post folder"`
}

func main() {
	godotenv.Load()

	kctx := kong.Parse(&CLI)
	log := colorlog.New("site")

	cfg, err := loadConfig(CLI.Config)
	if err != nil {
		log.Error("could not load config", "error", err)
		os.Exit(1)
	}

	switch kctx.Command() {
	case "build":
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		store := content.NewStore(cfg, os.DirFS(cfg.ContentDir))
		builder := build.New(cfg, store, os.DirFS(cfg.PagesDir), staticFS(cfg))
		if err := builder.Build(ctx, CLI.Build.Output); err != nil {
			log.Error("build failed", "error", err)
			os.Exit(1)
		}
		log.Info("site written", "dir", CLI.Build.Output)

	case "serve":
		app.SetModeToDev()
		if CLI.Serve.Port > 0 {
			app.SetPort(CLI.Serve.Port)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		srv, err := devserver.New(cfg)
		if err != nil {
			log.Error("could not start dev server", "error", err)
			os.Exit(1)
		}
		if err := srv.Run(ctx); err != nil {
			log.Error("dev server exited", "error", err)
			os.Exit(1)
		}

	case "new <title>":
		dir, err := scaffoldPost(cfg, CLI.New.Title)
		if err != nil {
			log.Error("could not scaffold post", "error", err)
			os.Exit(1)
		}
		log.Info("post scaffolded", "dir", dir)
	}
}

func loadConfig(path string) (*app.Config, error) {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return app.DefaultConfig(), nil
		}
		return nil, err
	}
	return app.LoadConfig(configBytes)
}

func staticFS(cfg *app.Config) fs.FS {
	if _, err := os.Stat(cfg.StaticDir); err != nil {
		return nil
	}
	return os.DirFS(cfg.StaticDir)
}
