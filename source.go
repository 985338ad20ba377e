package constellation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIConfig describes the optional remote data source.
type APIConfig struct {
	// URL is fetched once with a GET request expecting JSON.
	URL string

	// Transform maps the raw payload to a Dataset. When nil the payload
	// must already have "skills" and "relationships" arrays.
	Transform func(payload json.RawMessage) (Dataset, error)

	// Client performs the request. Defaults to a client with a 10s timeout.
	Client *http.Client
}

// Source tells which dataset the graph ended up using.
type Source uint8

const (
	// SourceFallback means the static fallback dataset was used.
	SourceFallback Source = iota
	// SourceRemote means the skills came from the API.
	SourceRemote
)

func (s Source) String() string {
	if s == SourceRemote {
		return "remote"
	}
	return "fallback"
}

// LoadResult is the outcome of resolving the graph's data: the dataset
// actually used, where it came from and, for the fallback path, why.
type LoadResult struct {
	Dataset Dataset
	Source  Source
	// Reason is nil for SourceRemote. For SourceFallback it explains why
	// the API was not used (ErrNoAPI when none was configured).
	Reason error
}

// Errors reported through LoadResult.Reason. None of them is returned
// from New: fetch failures always degrade to the fallback dataset.
var (
	ErrNoAPI        = errors.New("constellation: no API configured")
	ErrEmptyPayload = errors.New("constellation: API returned no skills")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("constellation: HTTP %d: %s", e.StatusCode, e.Status)
}

// PayloadError reports a payload carrying an "error" field.
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string {
	if e.Message == "" {
		return "constellation: API error"
	}
	return "constellation: API error: " + e.Message
}

const maxPayloadBytes = 8 << 20

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// LoadDataset resolves the graph data: the API when configured and
// successful, otherwise the fallback. It never fails; the reason for a
// fallback is recorded in the result.
//
// Skills and relationships fall back independently, so an API returning
// skills but no relationships is paired with the fallback relationships.
func LoadDataset(ctx context.Context, api *APIConfig, fallback Dataset) LoadResult {
	remote, err := fetchDataset(ctx, api)
	if err == nil && len(remote.Skills) == 0 {
		err = ErrEmptyPayload
	}
	if err != nil {
		if !errors.Is(err, ErrNoAPI) {
			Logger().Warn("constellation: using fallback dataset", "error", err)
		}
		return LoadResult{Dataset: fallback, Source: SourceFallback, Reason: err}
	}

	out := Dataset{Skills: remote.Skills, Relationships: remote.Relationships}
	if len(out.Relationships) == 0 {
		out.Relationships = fallback.Relationships
	}
	Logger().Info("constellation: loaded remote dataset",
		"url", api.URL, "skills", len(out.Skills), "relationships", len(out.Relationships))
	return LoadResult{Dataset: out, Source: SourceRemote}
}

func fetchDataset(ctx context.Context, api *APIConfig) (Dataset, error) {
	if api == nil || api.URL == "" {
		return Dataset{}, ErrNoAPI
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.URL, http.NoBody)
	if err != nil {
		return Dataset{}, fmt.Errorf("constellation: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	client := api.Client
	if client == nil {
		client = defaultHTTPClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Dataset{}, fmt.Errorf("constellation: fetch %s: %w", api.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Dataset{}, &StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return Dataset{}, fmt.Errorf("constellation: read body: %w", err)
	}
	if err := checkPayloadError(body); err != nil {
		return Dataset{}, err
	}

	if api.Transform != nil {
		d, err := api.Transform(json.RawMessage(body))
		if err != nil {
			return Dataset{}, fmt.Errorf("constellation: transform payload: %w", err)
		}
		return d, nil
	}

	var d Dataset
	if err := json.Unmarshal(body, &d); err != nil {
		return Dataset{}, fmt.Errorf("constellation: decode payload: %w", err)
	}
	return d, nil
}

// checkPayloadError rejects payloads that are not JSON objects or whose
// "error" field is truthy.
func checkPayloadError(body []byte) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("constellation: decode payload: %w", err)
	}
	raw, ok := envelope["error"]
	if !ok || !truthy(raw) {
		return nil
	}
	var msg string
	if m, ok := envelope["message"]; ok {
		_ = json.Unmarshal(m, &msg)
	}
	if msg == "" {
		_ = json.Unmarshal(raw, &msg)
	}
	return &PayloadError{Message: msg}
}

func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

// PortfolioTransform decodes a payload of the shape
// {"skills": [...], "relationships": [...]} and fills in missing fields:
// the group defaults to "tools", the description to a generic sentence
// and the size to DefaultSize of the level.
func PortfolioTransform(payload json.RawMessage) (Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(payload, &d); err != nil {
		return Dataset{}, err
	}
	for i := range d.Skills {
		s := &d.Skills[i]
		if s.Group == "" {
			s.Group = "tools"
		}
		s.Description = s.DescriptionOrDefault()
		if s.Size <= 0 {
			s.Size = DefaultSize(s.Level)
		}
	}
	return d, nil
}
