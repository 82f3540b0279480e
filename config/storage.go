package config

import (
	"fmt"
	"os"

	"github.com/fucina/flexhibition-api/storage"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetR2Config() *R2Config {
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("CLOUDFLARE_BUCKET_NAME"),
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

// NewDisk builds the storage backend selected with STORAGE_DRIVER
// ("local" or "s3", local by default).
func NewDisk() (storage.Disk, error) {
	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "local"
	}

	switch driver {
	case "local":
		root := os.Getenv("STORAGE_PATH")
		if root == "" {
			root = "storage/public"
		}
		baseURL := os.Getenv("STORAGE_BASE_URL")
		if baseURL == "" {
			baseURL = "/storage"
		}
		return storage.NewLocalDisk(root, baseURL)
	case "s3":
		cfg := GetR2Config()
		endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
		return storage.NewS3Disk(endpoint, cfg.Region, cfg.AccessKeyID, cfg.SecretAccessKey, cfg.BucketName, cfg.PublicURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
