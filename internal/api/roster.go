package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fantasy-cricket/internal/config"

	"github.com/valyala/fasthttp"
)

// RosterClient reads squads and fixtures from the league's roster feed.
type RosterClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
}

func NewRosterClient(cfg *config.Config) *RosterClient {
	return &RosterClient{
		baseURL: strings.TrimRight(cfg.RosterURL, "/"),
		apiKey:  cfg.RosterAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Enabled reports whether a feed URL was configured.
func (c *RosterClient) Enabled() bool {
	return c.baseURL != ""
}

func (c *RosterClient) GetSquads(ctx context.Context) (*SquadsResponse, error) {
	return doRequest[SquadsResponse](ctx, c, c.baseURL+"/squads")
}

func (c *RosterClient) GetFixtures(ctx context.Context) (*FixturesResponse, error) {
	return doRequest[FixturesResponse](ctx, c, c.baseURL+"/fixtures")
}

func doRequest[T any](ctx context.Context, client *RosterClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if client.apiKey != "" {
		req.Header.Set("Authorization", client.apiKey)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("roster API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type SquadsResponse struct {
	Data []SquadData `json:"data"`
}

type SquadData struct {
	Name    string `json:"name"`
	Players []struct {
		Name  string `json:"name"`
		Price int    `json:"price"`
	} `json:"players"`
}

type FixturesResponse struct {
	Data []FixtureData `json:"data"`
}

type FixtureData struct {
	MatchID string   `json:"match_id"`
	MatchNo int      `json:"match_no"`
	Teams   []string `json:"teams"`
	Time    string   `json:"time"`
	Day     string   `json:"day"`
	Status  string   `json:"status"`
}
