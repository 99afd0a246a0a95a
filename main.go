package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/richardcertto/n2-bot/auth"
	config "github.com/richardcertto/n2-bot/configs"
	"github.com/richardcertto/n2-bot/cpe"
	"github.com/richardcertto/n2-bot/inventory"
	"github.com/richardcertto/n2-bot/isp"
	"github.com/richardcertto/n2-bot/oncall"
	"github.com/richardcertto/n2-bot/pkg/httpclient"
	"github.com/richardcertto/n2-bot/resolver"
	"github.com/richardcertto/n2-bot/server"
	"github.com/richardcertto/n2-bot/worker"
)

const usage = `Usage:
  n2-bot [-config path] serve
  n2-bot [-config path] cto <id|box-name> [service-id]
  n2-bot [-config path] box <box-id>
  n2-bot [-config path] cliente <client-id>
  n2-bot [-config path] ont <client-id>
  n2-bot [-config path] sobreaviso
`

func main() {
	configPath := flag.String("config", "configs/config.ini", "path to the ini configuration file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Agent.LogLevel)

	hc := httpclient.New(cfg.HTTP)
	inv := inventory.NewService(cfg.Inventory, hc)
	engine := resolver.NewEngine(inv)
	cpeService := cpe.NewService(cfg.CPE, hc)
	ispService := isp.NewService(cfg.ISP, hc)
	oncallService := oncall.NewService(cfg.OnCall)

	authService, err := auth.NewService(cfg.AuthDB)
	if err != nil {
		log.Fatalf("Failed to open auth database: %v", err)
	}
	defer authService.Close()

	w := worker.New(cfg, inv, engine, cpeService, ispService, oncallService, authService)
	ctx := context.Background()

	switch args[0] {
	case "serve":
		addr := cfg.Agent.MetricsAddr
		if addr == "" {
			addr = ":8080"
		}
		logrus.Info("N2 bot starting...")
		if err := server.New(w).ListenAndServe(addr); err != nil {
			log.Fatalf("HTTP server stopped: %v", err)
		}
	case "cto":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		query := args[1]
		if worker.CTONamePattern.MatchString(strings.ToUpper(query)) {
			fmt.Println(w.BoxReportByName(ctx, strings.ToUpper(query)))
			return
		}
		serviceID := ""
		if len(args) > 2 {
			serviceID = args[2]
		}
		fmt.Println(w.CheckAttachment(ctx, query, serviceID).Message)
	case "box":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Println(w.BoxReportByID(ctx, args[1]))
	case "cliente":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Println(w.ClientStatus(ctx, args[1]))
	case "ont":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Println(w.CPEStatus(ctx, args[1]))
	case "sobreaviso":
		fmt.Println(w.OnCallStatus(ctx))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	switch level {
	case "DEBUG":
		logrus.SetLevel(logrus.DebugLevel)
	case "INFO":
		logrus.SetLevel(logrus.InfoLevel)
	case "WARN":
		logrus.SetLevel(logrus.WarnLevel)
	case "ERROR":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}
