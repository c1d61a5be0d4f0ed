package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mixaill76/geminikit"
	"github.com/mixaill76/geminikit/internal/config"
	"github.com/mixaill76/geminikit/internal/httputil"
	"github.com/mixaill76/geminikit/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var log *slog.Logger
	if cfg.Logging.Format == "json" {
		log = logger.NewJSON(cfg.Logging.Level)
	} else {
		log = logger.New(cfg.Logging.Level)
	}

	log.Info("Starting genchat",
		"backend", cfg.Backend.Type,
		"model", cfg.Chat.Model,
		"stream", cfg.Chat.Stream,
	)

	clientCfg := geminikit.ClientConfig{
		APIKey:          cfg.Backend.APIKey,
		Project:         cfg.Backend.Project,
		Location:        cfg.Backend.Location,
		CredentialsFile: cfg.Backend.CredentialsFile,
		BaseURL:         cfg.Backend.BaseURL,
		HTTPClient:      httputil.NewClient(&httputil.ClientConfig{HeaderTimeout: cfg.HTTP.HeaderTimeout}),
		Logger:          log,
	}
	if cfg.Backend.Type == "vertex" {
		clientCfg.Backend = geminikit.BackendVertexAI
	}

	client, err := geminikit.NewClient(clientCfg)
	if err != nil {
		log.Error("Failed to create client", "error", err)
		os.Exit(1)
	}

	var genConfig *geminikit.GenerateContentConfig
	if cfg.Chat.SystemInstruction != "" || cfg.Chat.Temperature != nil {
		genConfig = &geminikit.GenerateContentConfig{Temperature: cfg.Chat.Temperature}
		if cfg.Chat.SystemInstruction != "" {
			genConfig.SystemInstruction = &geminikit.Content{
				Parts: []*geminikit.Part{geminikit.Text(cfg.Chat.SystemInstruction)},
			}
		}
	}

	chat, err := client.Chats.Create(cfg.Chat.Model, genConfig, nil)
	if err != nil {
		log.Error("Failed to create chat", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Chatting with %s (empty line or Ctrl-D to quit)\n", cfg.Chat.Model)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		if cfg.Chat.Stream {
			if err := streamTurn(ctx, chat, line); err != nil {
				log.Error("Send failed", "error", err)
			}
			continue
		}

		resp, err := chat.Send(ctx, geminikit.Text(line))
		if err != nil {
			log.Error("Send failed", "error", err)
			continue
		}
		fmt.Println(resp.Text())
	}

	if err := scanner.Err(); err != nil {
		log.Error("Input error", "error", err)
		os.Exit(1)
	}
	log.Info("Session finished", "turns", len(chat.History())/2)
}

func streamTurn(ctx context.Context, chat *geminikit.Chat, line string) error {
	for resp, err := range chat.SendStream(ctx, geminikit.Text(line)) {
		if err != nil {
			fmt.Println()
			return err
		}
		fmt.Print(resp.Text())
	}
	fmt.Println()
	return nil
}
