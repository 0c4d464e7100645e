package validator

import (
	"io"
	"net/http"
)

// allowedImageMimeTypes 投稿允许的截图类型
var allowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// extensionByMime 存储对象键使用的扩展名
var extensionByMime = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// SniffImage 检测文件内容是否为允许的图片类型，返回 MIME 类型
func SniffImage(file io.ReadSeeker) (bool, string, error) {
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return false, "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return false, "", err
	}

	mimeType := http.DetectContentType(buffer[:n])
	return allowedImageMimeTypes[mimeType], mimeType, nil
}

// ExtensionForMime 返回 MIME 类型对应的文件扩展名
func ExtensionForMime(mimeType string) string {
	if ext, ok := extensionByMime[mimeType]; ok {
		return ext
	}
	return "bin"
}
