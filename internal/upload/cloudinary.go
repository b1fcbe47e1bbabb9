package upload

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/school-attendance/internal/config"
	"github.com/Spok95/school-attendance/internal/metrics"
	"github.com/google/uuid"
)

// Uploader — коллаборатор хостинга изображений: принимает файл, отдаёт
// публичный URL. Удаления нет — осиротевшие фотографии допустимы.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Cloudinary — подписанная загрузка в Cloudinary.
type Cloudinary struct {
	cfg    config.CloudinaryConfig
	client *http.Client
}

func NewCloudinary(cfg config.CloudinaryConfig) *Cloudinary {
	return &Cloudinary{
		cfg:    cfg,
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Cloudinary) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	start := time.Now()
	url, err := c.upload(ctx, filename, r)
	metrics.ObserveUpload(time.Since(start), err)
	return url, err
}

func (c *Cloudinary) upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	publicID := uuid.NewString()
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	params := map[string]string{
		"folder":    c.cfg.Folder,
		"public_id": publicID,
		"timestamp": ts,
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer func() { _ = pw.Close() }()
		for k, v := range params {
			if err := mw.WriteField(k, v); err != nil {
				_ = pw.CloseWithError(err)
				return
			}
		}
		if err := mw.WriteField("api_key", c.cfg.APIKey); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("signature", sign(params, c.cfg.APISecret)); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(fw, r); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("cloudinary: декодирование ответа: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("cloudinary: http %d: %s", resp.StatusCode, out.Error.Message)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("cloudinary: пустой secure_url")
	}
	return out.SecureURL, nil
}

// sign — SHA-1 от отсортированных параметров плюс api_secret
// (схема подписи Cloudinary; api_key и file в подпись не входят).
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
