package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DownloadImage 下载网络图片并返回字节切片与 Content-Type
func DownloadImage(ctx context.Context, url string) ([]byte, string, error) {
	client := resty.New().SetTimeout(30 * time.Second)

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("http get failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, "", fmt.Errorf("download failed with status: %d", resp.StatusCode())
	}

	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
