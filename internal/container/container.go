// Package container wires application dependencies and manages their
// lifecycle.
package container

import (
	"fmt"

	"epilag/adapters/epidata"
	"epilag/adapters/metadata"
	"epilag/app"
	"epilag/internal/config"
	"epilag/internal/session"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config

	// Adapters
	Epidata  *epidata.Client
	Metadata *metadata.Repository
	Sessions *session.Store

	// Services
	Analysis *app.AnalysisService
	Catalog  *app.MetadataService
}

// New builds the full dependency graph from configuration. The metadata
// catalog is loaded eagerly so a bad catalog fails startup rather than the
// first request.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	repo, err := metadata.LoadFile(cfg.Metadata.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata catalog: %w", err)
	}

	client := epidata.NewClient(cfg.Epidata.BaseURL, cfg.Epidata.Timeout)
	sessions := session.NewStore(cfg.Session.TTL)

	return &Container{
		Config:   cfg,
		Epidata:  client,
		Metadata: repo,
		Sessions: sessions,
		Analysis: app.NewAnalysisService(client, repo, sessions),
		Catalog:  app.NewMetadataService(repo),
	}, nil
}
