// Package catalog looks up resource classifications in the data catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/httpclient"
	"github.com/heartmarshall/domainshare-backend/internal/config"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// Client fetches classification metadata over HTTP.
type Client struct {
	http *httpclient.Client
	log  *slog.Logger
}

// New creates a catalog Client from its service configuration.
func New(cfg config.ServiceConfig, logger *slog.Logger, opts ...httpclient.Option) *Client {
	log := logger.With("adapter", "catalog")
	return &Client{
		http: httpclient.New(cfg.BaseURL, cfg.Token, cfg.Timeout, log, opts...),
		log:  log,
	}
}

type tagDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type classificationResponse struct {
	OwnerDomainID string   `json:"ownerDomainId"`
	PII           bool     `json:"pii"`
	Tags          []tagDTO `json:"tags"`
}

// GetClassification returns the classification of one table, or of a whole
// database for the wildcard table. An unknown resource returns
// domain.ErrNotFound; any other failure wraps domain.ErrClassificationLookup.
func (c *Client) GetClassification(ctx context.Context, ownerDomainID string, res domain.ResourceSelector) (*domain.Classification, error) {
	path := fmt.Sprintf("/domains/%s/resources/%s/%s/classification",
		url.PathEscape(ownerDomainID), url.PathEscape(res.Database), url.PathEscape(res.Table))

	var resp classificationResponse
	err := c.http.Do(ctx, http.MethodGet, path, nil, &resp)

	var se *httpclient.StatusError
	switch {
	case err == nil:
	case errors.As(err, &se) && se.Status == http.StatusNotFound:
		return nil, fmt.Errorf("resource %s of %s: %w", res.ResourceKey(), ownerDomainID, domain.ErrNotFound)
	default:
		c.log.ErrorContext(ctx, "classification lookup failed",
			slog.String("owner", ownerDomainID),
			slog.String("resource", res.ResourceKey()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrClassificationLookup, res.ResourceKey(), err)
	}

	cl := &domain.Classification{
		OwnerDomainID: resp.OwnerDomainID,
		PII:           resp.PII,
		Tags:          make([]domain.Tag, 0, len(resp.Tags)),
	}
	for _, t := range resp.Tags {
		cl.Tags = append(cl.Tags, domain.Tag{Key: t.Key, Value: t.Value})
	}
	if cl.OwnerDomainID == "" {
		cl.OwnerDomainID = ownerDomainID
	}

	c.log.DebugContext(ctx, "classification fetched",
		slog.String("owner", cl.OwnerDomainID),
		slog.String("resource", res.ResourceKey()),
		slog.Int("tags", len(cl.Tags)),
	)
	return cl, nil
}
