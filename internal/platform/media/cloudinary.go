package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const cloudinaryBaseURL = "https://api.cloudinary.com/v1_1"

// Usage reports blob storage consumption at the media host.
type Usage struct {
	UsedBytes  int64
	LimitBytes int64
}

type UsageClient interface {
	Usage(ctx context.Context) (*Usage, error)
}

// CloudinaryClient reads the admin usage API with Basic auth.
type CloudinaryClient struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	client    *http.Client
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret string) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   cloudinaryBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at a different endpoint. Used in tests.
func (c *CloudinaryClient) WithBaseURL(url string) *CloudinaryClient {
	c.baseURL = url
	return c
}

type cloudinaryUsageResp struct {
	Storage struct {
		Usage int64 `json:"usage"`
		Limit int64 `json:"limit"`
	} `json:"storage"`
}

func (c *CloudinaryClient) Usage(ctx context.Context) (*Usage, error) {
	if c.cloudName == "" || c.apiKey == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}

	url := fmt.Sprintf("%s/%s/usage", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cloudinary usage returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed cloudinaryUsageResp
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode usage response: %w", err)
	}

	return &Usage{
		UsedBytes:  parsed.Storage.Usage,
		LimitBytes: parsed.Storage.Limit,
	}, nil
}
