package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pethealth/internal/config"
	"pethealth/internal/middleware"
	"pethealth/internal/models"
	"pethealth/internal/observability"
	"pethealth/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultUploadDir       = "/tmp/pethealth/uploads/photos"
	DefaultMaxUploadSizeMB = 10
	MasterMaxSize          = 2048
	JPEGQuality            = 82
	WebPQuality            = 70
)

// variantSizes is the ladder of longest-edge pixel sizes the worker renders.
var variantSizes = []int{256, 640, 1080}

type UploadPhotoInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

type PhotoService struct {
	photoRepo          repository.PhotoRepository
	uploadDir          string
	maxUploadSizeBytes int64
	workerOnce         sync.Once
}

func NewPhotoService(photoRepo repository.PhotoRepository, cfg *config.Config) *PhotoService {
	uploadDir := DefaultUploadDir
	maxUploadSizeMB := DefaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MaxUploadSizeMB
		}
	}

	return &PhotoService{
		photoRepo:          photoRepo,
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// StartBackgroundWorker launches the variant-rendering loop. It runs until
// ctx is cancelled and is started at most once.
func (s *PhotoService) StartBackgroundWorker(ctx context.Context) {
	if s.photoRepo == nil {
		return
	}
	s.workerOnce.Do(func() {
		go s.workerLoop(ctx)
	})
}

// Upload validates and stores a photo, returning the existing record when an
// identical upload from the same user already exists. Variants are rendered
// asynchronously; the returned photo starts in the queued state.
func (s *PhotoService) Upload(ctx context.Context, in UploadPhotoInput) (*models.Photo, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedPhotoMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") &&
		!isMatchingContentType(provided, decodedFormatToMime(format)) {
		return nil, models.NewValidationError("Image content type mismatch")
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	encodedMaster, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	hash := buildPhotoHash(in.UserID, encodedMaster)
	if existing, getErr := s.photoRepo.GetByHash(ctx, hash); getErr == nil {
		return existing, nil
	} else if appErr, ok := getErr.(*models.AppError); !ok || appErr.Code != "NOT_FOUND" {
		return nil, getErr
	}

	masterRel := filepath.ToSlash(filepath.Join(hash, "master.jpg"))
	masterAbs := filepath.Join(s.uploadDir, masterRel)
	if err := writeBytesToFile(masterAbs, encodedMaster); err != nil {
		return nil, models.NewInternalError(err)
	}

	bounds := master.Bounds()
	photo := &models.Photo{
		Hash:       hash,
		UserID:     in.UserID,
		MimeType:   "image/jpeg",
		SizeBytes:  int64(len(encodedMaster)),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		MasterPath: masterRel,
		Status:     models.PhotoStatusQueued,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		_ = os.Remove(masterAbs)
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) GetByHash(ctx context.Context, hash string) (*models.Photo, error) {
	if !isValidPhotoHash(hash) {
		return nil, models.NewValidationError("Invalid photo hash")
	}
	return s.photoRepo.GetByHash(ctx, hash)
}

// ResolveForServing maps a hash and size name to a file on disk, falling back
// to the master when the requested variant has not been rendered yet.
func (s *PhotoService) ResolveForServing(ctx context.Context, hash string, size int) (*models.Photo, string, error) {
	photo, err := s.GetByHash(ctx, hash)
	if err != nil {
		return nil, "", err
	}

	rel := photo.MasterPath
	if size > 0 {
		for _, v := range photo.Variants {
			if v.Size == size && v.Format == "webp" {
				rel = v.Path
				break
			}
		}
	}

	fullPath := filepath.Join(s.uploadDir, rel)
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil, "", &models.AppError{Code: "NOT_FOUND", Message: "Photo not found"}
		}
		return nil, "", models.NewInternalError(err)
	}
	return photo, fullPath, nil
}

// PhotoURL returns the canonical serving path for a photo hash.
func (s *PhotoService) PhotoURL(hash string) string {
	return fmt.Sprintf("/api/photos/%s", hash)
}

func (s *PhotoService) workerLoop(ctx context.Context) {
	const idleSleep = 750 * time.Millisecond

	for {
		if ctx.Err() != nil {
			return
		}

		photo, err := s.photoRepo.NextQueued(ctx)
		if err != nil {
			if !sleepContext(ctx, time.Second) {
				return
			}
			continue
		}
		if photo == nil {
			if !sleepContext(ctx, idleSleep) {
				return
			}
			continue
		}

		if err := s.renderVariants(ctx, photo); err != nil {
			slog.Error("photo processing failed", "hash", photo.Hash, "error", err)
			photo.Status = models.PhotoStatusFailed
			photo.Attempts++
			_ = s.photoRepo.Update(ctx, photo)
			middleware.PhotoJobsProcessed.WithLabelValues("failed").Inc()
			continue
		}
		middleware.PhotoJobsProcessed.WithLabelValues("ready").Inc()
	}
}

func (s *PhotoService) renderVariants(ctx context.Context, photo *models.Photo) error {
	ctx, span := observability.TraceServiceMethod(ctx, "PhotoService", "renderVariants")
	defer span.End()

	masterPath := filepath.Join(s.uploadDir, photo.MasterPath)
	// #nosec G304: masterPath is built from a validated hash
	f, err := os.Open(masterPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	master, _, err := image.Decode(f)
	if err != nil {
		return err
	}
	b := master.Bounds()

	for _, size := range variantSizes {
		if b.Dx() < size && b.Dy() < size {
			continue
		}
		resized := resizeToFit(master, size, size)
		rb := resized.Bounds()

		webpBytes, err := encodeWebP(resized, WebPQuality)
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(filepath.Join(photo.Hash, fmt.Sprintf("%d.webp", size)))
		if err := writeBytesToFile(filepath.Join(s.uploadDir, rel), webpBytes); err != nil {
			return err
		}
		if err := s.photoRepo.AddVariant(ctx, &models.PhotoVariant{
			PhotoID: photo.ID,
			Size:    size,
			Format:  "webp",
			Path:    rel,
			Width:   rb.Dx(),
			Height:  rb.Dy(),
			Bytes:   int64(len(webpBytes)),
		}); err != nil {
			return err
		}
	}

	photo.Status = models.PhotoStatusReady
	photo.Attempts++
	return s.photoRepo.Update(ctx, photo)
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedPhotoMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func decodedFormatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}

// isValidPhotoHash checks that the hash is strictly lowercase hex, which also
// blocks path traversal via crafted hash parameters.
func isValidPhotoHash(hash string) bool {
	if len(hash) == 0 || len(hash) > 128 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func buildPhotoHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
