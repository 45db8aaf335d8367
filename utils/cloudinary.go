package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	config "github.com/phillip/campaign-hub-go/config"
)

// ErrImagesDisabled is returned by NewCloudinary when no credentials are configured.
var ErrImagesDisabled = errors.New("image hosting is not configured")

var versionSegment = regexp.MustCompile(`^v\d+$`)

// Cloudinary hosts campaign images.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cfg *config.Config) (*Cloudinary, error) {
	if !cfg.CloudinaryEnabled() {
		return nil, ErrImagesDisabled
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}

	return &Cloudinary{cld: cld, folder: cfg.CloudinaryFolder}, nil
}

// Upload stores the image under the configured folder and returns its https URL.
func (c *Cloudinary) Upload(ctx context.Context, file io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: c.folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}

	return resp.SecureURL, nil
}

// Owns reports whether imageURL points at this account's delivery host.
func (c *Cloudinary) Owns(imageURL string) bool {
	u, err := url.Parse(imageURL)
	if err != nil || u.Host != "res.cloudinary.com" {
		return false
	}
	return strings.HasPrefix(u.Path, "/"+c.cld.Config.Cloud.CloudName+"/")
}

// Delete removes a hosted image given its delivery URL.
func (c *Cloudinary) Delete(ctx context.Context, imageURL string) error {
	publicID, err := PublicIDFromURL(imageURL)
	if err != nil {
		return fmt.Errorf("could not extract public ID: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}

// PublicIDFromURL extracts the public ID from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1234567890/campaigns/abc123.jpg
// which yields "campaigns/abc123".
func PublicIDFromURL(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", err
	}

	_, rest, ok := strings.Cut(u.Path, "/upload/")
	if !ok || rest == "" {
		return "", fmt.Errorf("invalid cloudinary URL format")
	}

	parts := strings.Split(rest, "/")
	if len(parts) > 1 && versionSegment.MatchString(parts[0]) {
		parts = parts[1:]
	}

	last := parts[len(parts)-1]
	parts[len(parts)-1] = strings.TrimSuffix(last, path.Ext(last))

	publicID := strings.Join(parts, "/")
	if publicID == "" {
		return "", fmt.Errorf("invalid cloudinary URL format")
	}
	return publicID, nil
}
