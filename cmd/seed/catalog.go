package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	reqdto "gin-booking-engine/internal/handler/dto/request"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/commands"

	"gopkg.in/yaml.v3"
)

// catalogFile reuses the request shapes of the HTTP API.
type catalogFile struct {
	Resources []reqdto.RegisterResourceRequest `yaml:"resources"`
	Services  []reqdto.RegisterServiceRequest  `yaml:"services"`
	Customers []reqdto.RegisterCustomerRequest `yaml:"customers"`
}

type seedResult struct {
	Created int
	Skipped int
}

func loadCatalog(path string) (*catalogFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) (*catalogFile, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

func apply(ctx context.Context, logger *slog.Logger, cmds commands.CatalogCommands, f *catalogFile) (seedResult, error) {
	var res seedResult
	record := func(kind, name string, err error) error {
		switch {
		case err == nil:
			res.Created++
			logger.Info("registered", "kind", kind, "name", name)
			return nil
		case errs.Is(err, commands.ErrAlreadyRegistered):
			res.Skipped++
			logger.Debug("already registered", "kind", kind, "name", name)
			return nil
		default:
			return fmt.Errorf("register %s %q: %w", kind, name, err)
		}
	}

	for _, r := range f.Resources {
		_, err := cmds.RegisterResource(ctx, r.ToInput())
		if err := record("resource", r.Name, err); err != nil {
			return res, err
		}
	}
	for _, s := range f.Services {
		_, err := cmds.RegisterService(ctx, s.ToInput())
		if err := record("service", s.Name, err); err != nil {
			return res, err
		}
	}
	for _, c := range f.Customers {
		_, err := cmds.RegisterCustomer(ctx, c.ToInput())
		if err := record("customer", c.Email, err); err != nil {
			return res, err
		}
	}
	return res, nil
}
