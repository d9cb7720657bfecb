package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sms-tagger/internal/database"
	"sms-tagger/internal/handlers"
	"sms-tagger/internal/sms"
)

// Client represents an HTTP client for the sms-tagger API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 30*time.Second)
}

// NewClientWithTimeout creates a new API client with a custom request timeout
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError represents an error from the API
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// doRequest performs an HTTP request and handles errors
func (c *Client) doRequest(method, path string, body interface{}) (*http.Response, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	// Handle API errors. The server responds with plain text messages.
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()

		apiErr := APIError{Code: resp.StatusCode, Message: resp.Status}
		if text, err := io.ReadAll(resp.Body); err == nil && len(text) > 0 {
			apiErr.Message = strings.TrimSpace(string(text))
		}
		return nil, &apiErr
	}

	return resp, nil
}

// HealthCheck checks if the API server is healthy
func (c *Client) HealthCheck() error {
	resp, err := c.doRequest("GET", "/api/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// GetMessages returns stored messages, optionally filtered by category
func (c *Client) GetMessages(category string) ([]database.TaggedMessage, error) {
	path := "/api/messages"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	resp, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var messages []database.TaggedMessage
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return messages, nil
}

// ImportMessages sends a batch of messages to the archive
func (c *Client) ImportMessages(messages []sms.Message) (int, error) {
	resp, err := c.doRequest("POST", "/api/messages/import", handlers.ImportRequest{Messages: messages})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var result handlers.ImportResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Imported, nil
}

// Classify asks the server to categorize a content string
func (c *Client) Classify(content string) (sms.Category, error) {
	resp, err := c.doRequest("POST", "/api/classify", handlers.ClassifyRequest{Content: content})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result handlers.ClassifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Category, nil
}

// Score asks the server for the pickup filter verdict on a message
func (c *Client) Score(sender, content string) (*handlers.ScoreResponse, error) {
	resp, err := c.doRequest("POST", "/api/score", handlers.ScoreRequest{Sender: sender, Content: content})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result handlers.ScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// GetExpressRecords returns the extracted pickup records
func (c *Client) GetExpressRecords() ([]sms.ExpressRecord, error) {
	resp, err := c.doRequest("GET", "/api/express", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var records []sms.ExpressRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return records, nil
}

// GetExpressGrouped returns pickup records grouped by date
func (c *Client) GetExpressGrouped() ([]sms.DateGroup, error) {
	resp, err := c.doRequest("GET", "/api/express/grouped", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var groups []sms.DateGroup
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return groups, nil
}

// RefreshExpress drops the server's snapshot so the next read re-extracts
func (c *Client) RefreshExpress() error {
	resp, err := c.doRequest("POST", "/api/express/refresh", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// MarkPicked marks a pickup code as collected
func (c *Client) MarkPicked(code string) error {
	resp, err := c.doRequest("POST", "/api/express/"+url.PathEscape(code)+"/pick", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// UnmarkPicked clears the collected mark on a pickup code
func (c *Client) UnmarkPicked(code string) error {
	resp, err := c.doRequest("DELETE", "/api/express/"+url.PathEscape(code)+"/pick", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// GetRules returns the stored tag rules
func (c *Client) GetRules() ([]sms.Rule, error) {
	resp, err := c.doRequest("GET", "/api/rules", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rules []sms.Rule
	if err := json.NewDecoder(resp.Body).Decode(&rules); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return rules, nil
}

// CreateRule stores a new tag rule
func (c *Client) CreateRule(rule *sms.Rule) (*sms.Rule, error) {
	resp, err := c.doRequest("POST", "/api/rules", rule)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created sms.Rule
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &created, nil
}

// DeleteRule removes a tag rule
func (c *Client) DeleteRule(id int64) error {
	resp, err := c.doRequest("DELETE", fmt.Sprintf("/api/rules/%d", id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// SetRuleEnabled toggles a tag rule
func (c *Client) SetRuleEnabled(id int64, enabled bool) error {
	action := "disable"
	if enabled {
		action = "enable"
	}

	resp, err := c.doRequest("POST", fmt.Sprintf("/api/rules/%d/%s", id, action), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// TestRules runs the stored rules against a sample message
func (c *Client) TestRules(sender, content string) ([]sms.RuleResult, error) {
	resp, err := c.doRequest("POST", "/api/rules/test", handlers.TestRulesRequest{Sender: sender, Content: content})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var results []sms.RuleResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return results, nil
}
