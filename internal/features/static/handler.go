package static

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/premium-video-server/pkg/apperrors"
	"github.com/mo-amir99/premium-video-server/pkg/response"
)

const (
	landingPage = "index.html"
	adminPage   = "admin/index.html"
)

// Handler serves the bundled web pages and assets.
type Handler struct {
	dir string
	fs  http.FileSystem
}

// NewHandler serves files rooted at dir. Directory listings are disabled.
func NewHandler(dir string) *Handler {
	return &Handler{dir: dir, fs: gin.Dir(dir, false)}
}

// Landing serves the public landing page.
func (h *Handler) Landing(c *gin.Context) {
	h.page(c, landingPage)
}

// Admin serves the administration page.
func (h *Handler) Admin(c *gin.Context) {
	h.page(c, adminPage)
}

// Fallback serves any other GET or HEAD request from the static directory.
func (h *Handler) Fallback(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		response.Error(c, http.StatusNotFound, "Not found")
		return
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		response.Error(c, http.StatusNotFound, "Not found")
		return
	}

	name := path.Clean("/" + c.Request.URL.Path)
	if !h.exists(name) {
		response.Error(c, http.StatusNotFound, "Not found")
		return
	}

	c.FileFromFS(name, h.fs)
}

func (h *Handler) page(c *gin.Context, name string) {
	full := filepath.Join(h.dir, filepath.FromSlash(name))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			_ = c.Error(apperrors.NotFound("Page not found", err))
			return
		}
		_ = c.Error(err)
		return
	}
	c.File(full)
}

// exists reports whether name is a file, or a directory holding an index page.
func (h *Handler) exists(name string) bool {
	f, err := h.fs.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}

	index, err := h.fs.Open(path.Join(name, landingPage))
	if err != nil {
		return false
	}
	_ = index.Close()
	return true
}
