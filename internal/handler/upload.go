package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wishlist/internal/imaging"
)

// UploadHandler stores present images for the admin dashboard.  Files are
// decoded and downscaled through the imaging pipeline before touching
// disk, so only real images of bounded size end up under the uploads
// directory.  The route sits behind AdminAuth.
type UploadHandler struct {
	Dir string // destination directory, created on first use
}

// NewUploadHandler constructs an UploadHandler for the given directory.
func NewUploadHandler(dir string) *UploadHandler {
	if dir == "" {
		panic("empty upload dir passed to NewUploadHandler")
	}
	return &UploadHandler{Dir: dir}
}

// Upload handles POST /api/upload.  The request must be multipart with a
// "file" field.  The stored file gets a random name; the response returns
// the public URL path used in a present's images list.
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	defer src.Close()

	res, err := imaging.Process(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file must be a JPEG or PNG image"})
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		c.Logger().Errorf("create upload dir: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store file"})
	}

	// Pipeline output is always JPEG regardless of the input format.
	name := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(h.Dir, name), res.Data, 0o644); err != nil {
		c.Logger().Errorf("write upload: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store file"})
	}

	return c.JSON(http.StatusOK, echo.Map{"url": "/uploads/" + name})
}
