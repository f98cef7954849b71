// Package grant calls the authorization-grant service of the data lake.
package grant

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/httpclient"
	"github.com/heartmarshall/domainshare-backend/internal/config"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// Client grants permissions through the grant service HTTP API.
type Client struct {
	http *httpclient.Client
	log  *slog.Logger
}

// New creates a grant Client from its service configuration.
func New(cfg config.ServiceConfig, logger *slog.Logger, opts ...httpclient.Option) *Client {
	log := logger.With("adapter", "grant")
	return &Client{
		http: httpclient.New(cfg.BaseURL, cfg.Token, cfg.Timeout, log, opts...),
		log:  log,
	}
}

type tagDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type resourceDTO struct {
	Database string `json:"database"`
	Table    string `json:"table,omitempty"`
	// AllTables grants on every table of Database.
	AllTables bool `json:"allTables,omitempty"`
}

type grantBody struct {
	Principal     string       `json:"principal"`
	Resource      *resourceDTO `json:"resource,omitempty"`
	Tag           *tagDTO      `json:"tag,omitempty"`
	TagExpression []tagDTO     `json:"tagExpression,omitempty"`
	Permissions   []string     `json:"permissions"`
}

// GrantAccess submits one grant. Any failure wraps domain.ErrGrantFailure.
func (c *Client) GrantAccess(ctx context.Context, req domain.GrantRequest) error {
	body, err := toBody(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGrantFailure, err)
	}

	if err := c.http.Do(ctx, http.MethodPost, "/grants", body, nil); err != nil {
		c.log.ErrorContext(ctx, "grant failed",
			slog.String("principal", req.Principal),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %v", domain.ErrGrantFailure, err)
	}

	c.log.InfoContext(ctx, "grant applied",
		slog.String("principal", req.Principal),
		slog.Any("permissions", body.Permissions),
	)
	return nil
}

func toBody(req domain.GrantRequest) (grantBody, error) {
	b := grantBody{Principal: req.Principal, Permissions: make([]string, len(req.Permissions))}
	for i, p := range req.Permissions {
		b.Permissions[i] = string(p)
	}

	targets := 0
	if req.Resource != nil {
		targets++
		r := &resourceDTO{Database: req.Resource.Database}
		if req.Resource.IsWildcard() {
			r.AllTables = true
		} else {
			r.Table = req.Resource.Table
		}
		b.Resource = r
	}
	if req.Tag != nil {
		targets++
		b.Tag = &tagDTO{Key: req.Tag.Key, Value: req.Tag.Value}
	}
	if len(req.TagExpression) > 0 {
		targets++
		for _, t := range req.TagExpression {
			b.TagExpression = append(b.TagExpression, tagDTO{Key: t.Key, Value: t.Value})
		}
	}

	if targets != 1 {
		return grantBody{}, fmt.Errorf("grant needs exactly one target, got %d", targets)
	}
	if req.Principal == "" || len(req.Permissions) == 0 {
		return grantBody{}, fmt.Errorf("grant needs a principal and permissions")
	}
	return b, nil
}
