package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aureliajewels/storefront-api/pkg/config"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

const uploadEndpoint = "https://api.cloudinary.com/v1_1/%s/image/upload"

var (
	errCloudNameRequired = errors.New("cloudinary cloud name is required")
	errCredsRequired     = errors.New("cloudinary api key and secret are required")

	// ErrNotAnImage is returned when the upload is not an image content type.
	ErrNotAnImage = errors.New("only image uploads are accepted")
	// ErrTooLarge is returned when the upload exceeds the configured size cap.
	ErrTooLarge = errors.New("image exceeds the maximum upload size")
)

// Client uploads product images to Cloudinary using signed uploads. Signing
// happens server side so the API secret never leaves this process.
type Client struct {
	httpClient *http.Client
	cloudName  string
	apiKey     string
	apiSecret  string
	maxBytes   int64
	logger     *logger.Logger
	now        func() time.Time
}

// Upload is the result of a successful image upload.
type Upload struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

func NewClient(cfg config.CloudinaryConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.CloudName) == "" {
		return nil, errCloudNameRequired
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errCredsRequired
	}
	maxMB := cfg.MaxMB
	if maxMB <= 0 {
		maxMB = 10
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		maxBytes:   int64(maxMB) << 20,
		logger:     logg,
		now:        time.Now,
	}, nil
}

// UploadImage validates and uploads a single image, returning its hosted URL.
// The size check runs against the declared size before any bytes are read so
// oversized uploads are rejected without buffering them.
func (c *Client) UploadImage(ctx context.Context, file io.Reader, size int64, contentType, publicID string) (*Upload, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if size > c.maxBytes {
		return nil, ErrTooLarge
	}

	timestamp := strconv.FormatInt(c.now().UTC().Unix(), 10)
	params := map[string]string{"timestamp": timestamp}
	if publicID != "" {
		params["public_id"] = publicID
	}
	signature := Sign(params, c.apiSecret)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload")
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	written, err := io.Copy(part, io.LimitReader(file, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if written > c.maxBytes {
		return nil, ErrTooLarge
	}

	fields := map[string]string{
		"api_key":   c.apiKey,
		"timestamp": timestamp,
		"signature": signature,
	}
	if publicID != "" {
		fields["public_id"] = publicID
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("building upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	endpoint := fmt.Sprintf(uploadEndpoint, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			ctx := c.logger.WithField(ctx, "status", strconv.Itoa(resp.StatusCode))
			c.logger.Warn(ctx, "cloudinary upload rejected")
		}
		return nil, fmt.Errorf("cloudinary upload failed: status %d", resp.StatusCode)
	}

	var upload Upload
	if err := json.Unmarshal(raw, &upload); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	return &upload, nil
}

// Sign produces the signature Cloudinary expects for signed uploads: the
// hex SHA-1 of the sorted key=value parameters joined by "&", with the API
// secret appended. Empty values are excluded from the signed string.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
