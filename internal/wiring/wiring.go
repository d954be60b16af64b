// Package wiring builds the add-restaurant pipeline from configuration.
package wiring

import (
	"fmt"

	"gastropath/internal/adapters/apiclient"
	"gastropath/internal/adapters/cloudinary"
	"gastropath/internal/adapters/google"
	"gastropath/internal/adapters/notion"
	"gastropath/internal/adapters/shortlink"
	"gastropath/internal/adapters/yelp"
	"gastropath/internal/app"
	"gastropath/internal/shared"
)

// Pipeline wires every external adapter onto one shared HTTP client.
func Pipeline(cfg shared.Config) (*app.Pipeline, error) {
	hc := apiclient.NewClient(cfg.HTTPClientTimeout)

	places, err := google.New(cfg.GoogleBase, cfg.GoogleAPIKey, hc)
	if err != nil {
		return nil, fmt.Errorf("google places: %w", err)
	}
	images, err := cloudinary.New(cfg.CloudinaryBase, cloudinary.Credentials{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	}, hc)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	dir, err := yelp.New(cfg.YelpBase, cfg.YelpAPIKey, hc)
	if err != nil {
		return nil, fmt.Errorf("yelp: %w", err)
	}
	store, err := notion.New(cfg.NotionBase, cfg.NotionAPIKey, cfg.NotionDatabaseID, cfg.NotionVersion, hc)
	if err != nil {
		return nil, fmt.Errorf("notion: %w", err)
	}

	return app.NewPipeline(
		shortlink.New(hc),
		app.NewResolver(places),
		app.NewEnricher(places, images, dir),
		app.NewUpserter(store),
	), nil
}
