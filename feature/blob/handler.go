package blob

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"blob-manager/core/logger"
	"blob-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for containers and blobs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the container and blob routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/containers/:container")
	group.Put("/", h.HandleCreateContainer)
	group.Delete("/", h.HandleDeleteContainer)
	group.Get("/blobs", h.HandleListBlobs)
	// Head goes first: Get also registers a HEAD route for the same path.
	group.Head("/blobs/*", h.HandleBlobExists)
	group.Get("/blobs/*", h.HandleDownloadBlob)
	group.Put("/blobs/*", h.HandleUploadBlob)
	group.Delete("/blobs/*", h.HandleDeleteBlob)
	group.Get("/properties/*", h.HandleBlobProperties)
}

// HandleCreateContainer creates a container, returning the existing one if present.
func (h *Handler) HandleCreateContainer(c *fiber.Ctx) error {
	container, err := h.service.CreateContainer(c.Context(), containerName(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(container)
}

// HandleDeleteContainer deletes a container with all of its blobs.
func (h *Handler) HandleDeleteContainer(c *fiber.Ctx) error {
	if err := h.service.DeleteContainer(c.Context(), containerName(c)); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListBlobs lists the blob names of a container.
func (h *Handler) HandleListBlobs(c *fiber.Ctx) error {
	container := containerName(c)
	names, err := h.service.ListBlobs(c.Context(), container)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"container": container,
		"blobs":     names,
		"count":     len(names),
	})
}

// HandleUploadBlob stores the request body as a blob.
func (h *Handler) HandleUploadBlob(c *fiber.Ctx) error {
	name, err := blobName(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	body := append([]byte(nil), c.Body()...)
	blob, err := h.service.UploadBlob(c.Context(), containerName(c), name, body,
		WithOverwrite(c.QueryBool("overwrite", true)))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(blob)
}

// HandleDownloadBlob returns blob content, decoded to UTF-8 text when an
// encoding query parameter is given.
func (h *Handler) HandleDownloadBlob(c *fiber.Ctx) error {
	name, err := blobName(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	container := containerName(c)

	if encoding := c.Query("encoding"); encoding != "" {
		text, err := h.service.GetBlobAsText(c.Context(), container, name, encoding)
		if err != nil {
			return h.fail(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(text)
	}

	data, err := h.service.DownloadBlob(c.Context(), container, name)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}

// HandleBlobExists answers 200 when the blob exists and 404 otherwise.
func (h *Handler) HandleBlobExists(c *fiber.Ctx) error {
	name, err := blobName(c)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	ok, err := h.service.BlobExists(c.Context(), containerName(c), name)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Blob existence check failed", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleDeleteBlob deletes a blob.
func (h *Handler) HandleDeleteBlob(c *fiber.Ctx) error {
	name, err := blobName(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.DeleteBlob(c.Context(), containerName(c), name); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleBlobProperties returns blob metadata.
func (h *Handler) HandleBlobProperties(c *fiber.Ctx) error {
	name, err := blobName(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	info, err := h.service.BlobProperties(c.Context(), containerName(c), name)
	if err != nil {
		return h.fail(c, err)
	}
	if info.ETag != "" {
		c.Set(fiber.HeaderETag, info.ETag)
	}
	c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
	c.Set("X-Blob-Size", strconv.FormatInt(info.Size, 10))
	return c.JSON(info)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status == fiber.StatusInternalServerError {
		l.Error("Storage operation failed", zap.String("path", c.Path()), zap.Error(err))
	} else {
		l.Debug("Storage operation rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case storage.IsNotFound(err):
		return fiber.StatusNotFound
	case storage.IsConflict(err):
		return fiber.StatusConflict
	case errors.Is(err, storage.ErrDecoding):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

var errEmptyName = errors.New("blob name is required")

// containerName copies the route param; params alias the request buffer.
func containerName(c *fiber.Ctx) string {
	return strings.Clone(c.Params("container"))
}

// blobName returns a copy of the unescaped wildcard segment.
func blobName(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return "", err
	}
	name = strings.Clone(name)
	if name == "" {
		return "", errEmptyName
	}
	return name, nil
}
