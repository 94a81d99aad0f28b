package main

import (
	"context"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"mcphub/cmd/mcphub/cmds"
	"mcphub/internal/adapter"
	"mcphub/internal/api"
	"mcphub/internal/config"
	"mcphub/internal/store"
)

var version = "dev"

func main() {
	// Load environment variables
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Info("The .env file not found.")
	}

	app := kingpin.New("mcphub", "Multi-client MCP adapter services")

	serveCmd := app.Command("serve", "Run the MCP adapter server for the bound client")
	servePort := serveCmd.Flag("port", "HTTP port to listen on").Default("8080").Int()
	serveServices := serveCmd.Flag("services", "Comma-separated adapters to enable; defaults to all known").String()
	serveClient := serveCmd.Flag("client", "Client ID; defaults to MCP_CLIENT_ID").String()

	clientsCmd := app.Command("clients", "List configured client IDs")

	initCmd := app.Command("init", "Provision a new client: template document plus credential directories")
	initClientID := initCmd.Arg("client-id", "Client identifier").Required().String()

	putCmd := app.Command("put", "Store a client document from a YAML file (file stem is the client ID)")
	putFile := putCmd.Flag("file", "Path to the YAML document").Required().String()

	getCmd := app.Command("get", "Print a client document as YAML")
	getClientID := getCmd.Arg("client-id", "Client identifier").Required().String()

	deleteCmd := app.Command("delete", "Delete a client document")
	deleteClientID := deleteCmd.Arg("client-id", "Client identifier").Required().String()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	ctx := context.Background()
	st, err := store.FromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize client store: %v", err)
	}

	switch command {
	case serveCmd.FullCommand():
		runServe(ctx, st, *servePort, *serveServices, *serveClient)
	case clientsCmd.FullCommand():
		if err := cmds.ListClients(ctx, st); err != nil {
			log.Fatalf("Failed to list clients: %v", err)
		}
	case initCmd.FullCommand():
		if err := config.Provision(ctx, st, *initClientID); err != nil {
			log.Fatalf("Failed to provision client %s: %v", *initClientID, err)
		}
		log.Infof("Provisioned client %s", *initClientID)
	case putCmd.FullCommand():
		if err := cmds.PutDocument(ctx, st, *putFile); err != nil {
			log.Fatalf("Failed to store document: %v", err)
		}
	case getCmd.FullCommand():
		if err := cmds.GetDocument(ctx, st, *getClientID); err != nil {
			log.Fatalf("Failed to read document: %v", err)
		}
	case deleteCmd.FullCommand():
		if err := st.DeleteClientDocument(ctx, *deleteClientID); err != nil {
			log.Fatalf("Failed to delete document: %v", err)
		}
	}
}

func runServe(ctx context.Context, st store.ClientStore, port int, services, client string) {
	res := config.New(st, config.Options{Client: client})

	names := adapter.Known()
	if services != "" {
		names = names[:0]
		for _, name := range strings.Split(services, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	// Adapter construction resolves every required setting; a client with
	// partial credentials aborts here instead of serving broken tools.
	adapters, err := adapter.Build(ctx, res, names)
	if err != nil {
		log.Fatalf("Failed to initialize adapters: %v", err)
	}

	log.WithFields(log.Fields{
		"client":   res.ClientID(),
		"services": names,
	}).Info("starting MCP adapter server")

	h := api.NewHandler(res.ClientID(), version, adapters)
	api.RunServer(port, h.Router())
}
