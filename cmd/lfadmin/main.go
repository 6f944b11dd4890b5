package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/api/handlers"
	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/databases"
	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/logging"
	"github.com/linesmerrill/lostfound-api/registry"
)

const usage = `Usage: lfadmin <command> [args]

Commands:
  flagged                 list reported items, most reported first
  remove-user <user_id>   delete a user account
  remove-item <item_id>   delete an item and its conversation`

var errUsage = errors.New("invalid usage")

func main() {
	log := logging.New()
	defer log.Sync()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	conf := config.New()
	if conf.AdminEmail == "" {
		log.Fatal("ADMIN_EMAIL must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := databases.NewClient(conf)
	if err != nil {
		log.Fatalw("failed to create database client", "error", err)
	}
	if err := client.Connect(ctx); err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer client.Disconnect(context.Background())

	opts := []registry.Option{registry.WithLogger(log)}
	remover, err := handlers.NewImageRemover(*conf)
	if err != nil {
		log.Fatalw("failed to create cloudinary client", "error", err)
	}
	if remover != nil {
		opts = append(opts, registry.WithImageRemover(remover))
	}
	store := databases.NewRegistryStore(databases.NewDatabase(conf, client))
	reg := registry.New(store, identity.NewGate(conf.InstitutionDomain, conf.AdminEmail), opts...)

	err = run(ctx, reg, identity.UserID(conf.AdminEmail), os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		fmt.Println(usage)
		os.Exit(1)
	}
	if err != nil {
		log.Errorw("command failed", "command", os.Args[1], zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, reg *registry.Registry, adminID string, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "flagged":
		items, err := reg.FlaggedItems(ctx, adminID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "No flagged items.")
			return nil
		}
		for _, item := range items {
			fmt.Fprintf(out, "%s\t%d report(s)\t%s\t%s\t%s\n", item.ID, len(item.Reports), item.Status, item.Type, item.Title)
		}
	case "remove-user":
		if len(args) != 2 {
			return errUsage
		}
		if err := reg.RemoveUser(ctx, args[1], adminID); err != nil {
			return err
		}
		fmt.Fprintf(out, "User %s has been removed.\n", args[1])
	case "remove-item":
		if len(args) != 2 {
			return errUsage
		}
		if err := reg.RemoveItem(ctx, args[1], adminID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Item %s has been removed.\n", args[1])
	default:
		return errUsage
	}
	return nil
}
