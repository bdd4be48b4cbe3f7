package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/offerchat/agent"
	"github.com/sonnes/offerchat/chat"
	"github.com/sonnes/offerchat/client"
	"github.com/sonnes/offerchat/config"
	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/redact"
	"github.com/sonnes/offerchat/render"
	jsonrender "github.com/sonnes/offerchat/render/json"
	"github.com/sonnes/offerchat/render/terminal"
)

// app holds the renderer registry used by CLI commands.
type app struct {
	renderers map[string]func(width int) render.Renderer
}

func newApp() *app {
	return &app{
		renderers: map[string]func(int) render.Renderer{
			"terminal": func(width int) render.Renderer { return &terminal.Renderer{Width: width} },
			"json":     func(int) render.Renderer { return jsonrender.New() },
		},
	}
}

func (a *app) renderer(name string, width int) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(width), nil
}

func endpointFlag(cfg *config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "endpoint",
		Aliases: []string{"e"},
		Usage:   "Agent query endpoint",
		Value:   cfg.EndpointOrDefault(),
		Sources: cli.EnvVars(config.EnvEndpoint),
	}
}

func timeoutFlag(cfg *config.Config) *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:    "timeout",
		Usage:   "Per-query timeout; 0 waits for the agent indefinitely",
		Value:   cfg.Timeout,
		Sources: cli.EnvVars(config.EnvTimeout),
	}
}

func catalogFlag(cfg *config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "catalog",
		Usage:   "YAML offer catalog for the demo agent (default: built-in offers)",
		Value:   cfg.Catalog,
		Sources: cli.EnvVars(config.EnvCatalog),
	}
}

func portFlag(cfg *config.Config) *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "port",
		Usage:   "Port to listen on",
		Value:   cfg.Port,
		Sources: cli.EnvVars(config.EnvPort),
	}
}

// announce logs the address a command listens on at every log level.
func announce(msg, addr string) {
	log.Print(msg, "addr", addr)
}

// newRedactor builds a Redactor from CLI flags. Returns nil when --no-redact is set.
func newRedactor(cmd *cli.Command) (*redact.Redactor, error) {
	if cmd.Bool("no-redact") {
		return nil, nil
	}

	cfg := redact.Config{}
	rules := cmd.StringSlice("redact")

	if len(rules) == 0 {
		cfg.Secrets = true
		cfg.PII = true
	} else {
		for _, r := range rules {
			switch r {
			case "secrets":
				cfg.Secrets = true
			case "pii":
				cfg.PII = true
			default:
				return nil, fmt.Errorf("unknown redaction rule %q", r)
			}
		}
	}

	return redact.New(cfg), nil
}

// timeoutQuerier bounds every query by a fixed timeout.
type timeoutQuerier struct {
	q       chat.Querier
	timeout time.Duration
}

func (t timeoutQuerier) Query(ctx context.Context, req core.QueryRequest) (*core.QueryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.q.Query(ctx, req)
}

// newQuerier returns an HTTP client for endpoint, bounded by timeout when it
// is positive.
func newQuerier(endpoint string, timeout time.Duration) chat.Querier {
	var q chat.Querier = client.New(endpoint)
	if timeout > 0 {
		q = timeoutQuerier{q: q, timeout: timeout}
	}
	return q
}

func agentFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		catalogFlag(cfg),
		&cli.StringFlag{
			Name:    "mode",
			Usage:   "Agent mode: auto (model when GEMINI_API_KEY is set), fake (rules only), real (model only)",
			Value:   string(cfg.AgentMode),
			Sources: cli.EnvVars(config.EnvMode),
		},
		&cli.StringFlag{
			Name:    "model",
			Usage:   "Model used for criteria parsing and decisions",
			Value:   cfg.Model,
			Sources: cli.EnvVars(config.EnvModel),
		},
	}
}

// newAgent builds the demo agent from the catalog, mode and model flags.
func newAgent(ctx context.Context, cmd *cli.Command, cfg *config.Config) (*agent.Agent, error) {
	catalog := agent.DefaultCatalog()
	if path := cmd.String("catalog"); path != "" {
		c, err := agent.LoadCatalog(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		catalog = c
	}
	if log.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	mode, err := config.ParseAgentMode(cmd.String("mode"))
	if err != nil {
		return nil, err
	}
	useModel, err := config.UseModel(mode, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	logger := log.Default().WithPrefix("agent")
	if !useModel {
		logger.Info("using rules", "mode", mode)
		return agent.New(catalog, logger), nil
	}

	gen, err := agent.NewGenAI(ctx, cfg.APIKey, cmd.String("model"))
	if err != nil {
		return nil, err
	}
	m := agent.NewModel(gen)
	logger.Info("using model", "mode", mode, "model", cmd.String("model"))
	return agent.New(catalog, logger, agent.WithParser(m), agent.WithDecider(m)), nil
}
