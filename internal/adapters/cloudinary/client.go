// Package cloudinary uploads remote images through the signed upload API.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"gastropath/internal/adapters/apiclient"
)

// DefaultBase is the upload API root the SDK addresses.
const DefaultBase = "https://api.cloudinary.com/v1_1"

type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

type Client struct {
	sdk *cld.Cloudinary
}

// New builds the SDK client on hc. A base other than DefaultBase redirects
// every API call under it.
func New(base string, creds Credentials, hc *http.Client) (*Client, error) {
	if creds.CloudName == "" || creds.APIKey == "" || creds.APISecret == "" {
		return nil, errors.New("cloudinary: cloud name, API key and secret are required")
	}
	sdk, err := cld.NewFromParams(creds.CloudName, creds.APIKey, creds.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	hc, err = apiclient.Rebase(hc, DefaultBase, base)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	sdk.Upload.Client = *apiclient.Instrument(hc, "cloudinary", "upload")
	return &Client{sdk: sdk}, nil
}

// Upload asks the host to fetch sourceImageURL and returns the secure URL of
// the stored copy.
func (c *Client) Upload(ctx context.Context, sourceImageURL string) (string, error) {
	res, err := c.sdk.Upload.Upload(ctx, sourceImageURL, uploader.UploadParams{})
	if err != nil {
		return "", fmt.Errorf("cloudinary: upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: failed to upload image: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary: failed to upload image: no secure_url in reply")
	}
	return res.SecureURL, nil
}
