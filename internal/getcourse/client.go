// Package getcourse verifies bot users against the GetCourse account export API.
package getcourse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/ozodbekAI/uznetix-bot/internal/config"
	"github.com/ozodbekAI/uznetix-bot/pkg/logger"
	"github.com/ozodbekAI/uznetix-bot/pkg/metrics"
)

// Verifier checks whether an email belongs to a paying GetCourse client.
type Verifier interface {
	Verify(ctx context.Context, email string) (bool, error)
}

// Client talks to the GetCourse HTTP API. Verification is a two-step
// dance: request a user export by email, wait for GetCourse to build
// it, then fetch the export once and inspect the rows.
type Client struct {
	http     *resty.Client
	baseURL  string
	key      string
	pollWait time.Duration
	log      *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) *Client {
	httpc := resty.New().
		SetTimeout(cfg.GetCourseTimeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     httpc,
		baseURL:  strings.TrimRight(cfg.GetCourseAPIURL, "/"),
		key:      cfg.GetCourseKey,
		pollWait: cfg.GetCoursePollWait,
		log:      log.With("component", "getcourse"),
	}
}

// flexInt tolerates export ids arriving as either a JSON number or string.
type flexInt string

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*f = flexInt(s)
	return nil
}

type envelope struct {
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message"`
	Info         json.RawMessage `json:"info"`
}

type exportInfo struct {
	ExportID flexInt `json:"export_id"`
}

type exportResult struct {
	Fields []string            `json:"fields"`
	Items  [][]json.RawMessage `json:"items"`
}

// Verify reports whether email belongs to a real GetCourse client.
// Any API failure, timeout, or ambiguous response counts as not
// verified; the method never errors a user into access.
func (c *Client) Verify(ctx context.Context, email string) (bool, error) {
	corrID := uuid.NewString()
	log := c.log.With("correlation_id", corrID, "email", email)

	ok, err := c.verify(ctx, log, email)
	metrics.RecordVerification(ok)
	if err != nil {
		log.Warn("verification failed closed", "error", err)
		return false, err
	}
	log.Info("verification finished", "verified", ok)
	return ok, nil
}

func (c *Client) verify(ctx context.Context, log *logger.Logger, email string) (bool, error) {
	exportID, err := c.requestExport(ctx, email)
	if err != nil {
		return false, err
	}
	if exportID == "" || exportID == "0" {
		log.Info("no export id returned")
		return false, nil
	}

	// GetCourse builds exports asynchronously; a short fixed wait is
	// enough for single-user lookups.
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(c.pollWait):
	}

	res, err := c.fetchExport(ctx, exportID)
	if err != nil {
		return false, err
	}
	return inspectRows(res), nil
}

func (c *Client) requestExport(ctx context.Context, email string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":   c.key,
			"email": email,
		}).
		Get(c.baseURL + "/account/users")
	if err != nil {
		return "", fmt.Errorf("getcourse lookup: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("getcourse lookup: status %d", resp.StatusCode())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return "", fmt.Errorf("getcourse lookup: decode: %w", err)
	}
	if !env.Success {
		c.log.Info("getcourse lookup not successful", "message", env.ErrorMessage)
		return "", nil
	}

	var info exportInfo
	if len(env.Info) > 0 {
		if err := json.Unmarshal(env.Info, &info); err != nil {
			return "", fmt.Errorf("getcourse lookup: decode info: %w", err)
		}
	}
	return string(info.ExportID), nil
}

func (c *Client) fetchExport(ctx context.Context, exportID string) (*exportResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.key).
		Get(fmt.Sprintf("%s/account/exports/%s", c.baseURL, exportID))
	if err != nil {
		return nil, fmt.Errorf("getcourse export: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("getcourse export: status %d", resp.StatusCode())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("getcourse export: decode: %w", err)
	}
	if !env.Success {
		return &exportResult{}, nil
	}

	var res exportResult
	if len(env.Info) > 0 {
		if err := json.Unmarshal(env.Info, &res); err != nil {
			return nil, fmt.Errorf("getcourse export: decode info: %w", err)
		}
	}
	return &res, nil
}

// inspectRows decides membership from the first export row. GetCourse
// signals "user not found" in-band rather than with an error: either a
// "-1" id in the first column or a localized not-found message in the
// second. A row that carries an id but no actual profile data also
// means the account does not exist.
func inspectRows(res *exportResult) bool {
	if len(res.Items) == 0 {
		return false
	}
	row := res.Items[0]
	if len(row) == 0 {
		return false
	}

	first := cellString(row[0])
	if first == "-1" {
		return false
	}
	if len(row) > 1 {
		second := strings.ToLower(cellString(row[1]))
		if strings.Contains(second, "не найден") || strings.Contains(second, "not found") {
			return false
		}
	}

	for i := 2; i < len(row) && i < 5; i++ {
		if v := cellString(row[i]); v != "" && v != "-1" {
			return true
		}
	}
	return false
}

func cellString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}
