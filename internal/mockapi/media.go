package mockapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaPrefix 是上傳檔案的網址前綴
const MediaPrefix = "/media/"

// maxUpload 是單一上傳檔案的大小上限
const maxUpload = 10 << 20

// Media 保存上傳的檔案
type Media struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMedia() *Media {
	return &Media{files: make(map[string][]byte)}
}

// Save 保存檔案並回傳網址路徑
func (m *Media) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUpload {
		return "", fmt.Errorf("file %s is larger than %d bytes", fh.Filename, maxUpload)
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUpload+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	name := uuid.New().String() + "-" + sanitize(fh.Filename)
	m.mu.Lock()
	m.files[name] = data
	m.mu.Unlock()
	return MediaPrefix + name, nil
}

func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." {
		return "file"
	}
	return name
}

// Get 取得檔案內容
func (m *Media) Get(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	return data, ok
}

func (m *Media) serve(c *gin.Context) {
	data, ok := m.Get(c.Param("name"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
