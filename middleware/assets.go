package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	cssVersion        string
	landingJSVersion  string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		cssVersion = computeFileHash("static/css/style.css")
		if cssVersion == "" {
			cssVersion = "1"
		}

		landingJSVersion = computeFileHash("static/js/landing.js")
		if landingJSVersion == "" {
			landingJSVersion = "1"
		}

		zap.L().Info("Asset versions initialized",
			zap.String("css", cssVersion),
			zap.String("landing_js", landingJSVersion),
		)
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		zap.L().Warn("Failed to open file for hashing", zap.String("path", path), zap.Error(err))
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		zap.L().Warn("Failed to hash file", zap.String("path", path), zap.Error(err))
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetCSSVersion returns the stylesheet version hash for cache busting
func GetCSSVersion(ctx context.Context) string {
	if cssVersion == "" {
		return "1"
	}
	return cssVersion
}

// GetLandingJSVersion returns the landing.js version hash for cache busting
func GetLandingJSVersion(ctx context.Context) string {
	if landingJSVersion == "" {
		return "1"
	}
	return landingJSVersion
}
