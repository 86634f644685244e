package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaKey 生成素材对象键：media/{userId}/{yyyy}/{mm}/{dd}/{timestamp}-{rand}{ext}
func MediaKey(userID uint, filename string, now time.Time) string {
	return objectKey("media", userID, filename, now)
}

// MerchantKey 生成商家资料对象键：merchant/{userId}/{yyyy}/{mm}/{dd}/{timestamp}-{rand}{ext}
func MerchantKey(userID uint, filename string, now time.Time) string {
	return objectKey("merchant", userID, filename, now)
}

func objectKey(prefix string, userID uint, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s/%d/%04d/%02d/%02d/%d-%s%s",
		prefix, userID,
		now.Year(), int(now.Month()), now.Day(),
		now.UnixMilli(), suffix, ext,
	)
}
